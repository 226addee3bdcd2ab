package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. Email and phone each carry a
// unique constraint; duplicate detection relies on the database, not on
// read-then-write checks.
type AccountModel struct {
	ID                          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Email                       string    `gorm:"type:varchar(255);unique;not null"`
	Phone                       string    `gorm:"type:varchar(20);unique;not null"`
	FirstName                   string    `gorm:"type:varchar(100);not null"`
	LastName                    string    `gorm:"type:varchar(100);not null"`
	PasswordHash                string    `gorm:"type:varchar(255);not null"`
	Role                        string    `gorm:"type:varchar(20);not null;default:'USER'"`
	EmailVerified               bool      `gorm:"not null;default:false"`
	VerificationToken           *string   `gorm:"type:varchar(255);index"`
	VerificationTokenExpiresAt  *time.Time
	ResetPasswordToken          *string `gorm:"type:varchar(255);index"`
	ResetPasswordTokenExpiresAt *time.Time
	CreatedAt                   time.Time
	UpdatedAt                   time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}
