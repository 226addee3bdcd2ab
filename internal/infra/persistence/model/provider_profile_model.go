package model

import (
	"time"

	"github.com/google/uuid"
)

// ProviderProfileModel mirrors the 'provider_profiles' table. AccountID
// references accounts.id; one profile per provider account.
type ProviderProfileModel struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	AccountID           uuid.UUID `gorm:"type:uuid;unique;not null"`
	BusinessName        string    `gorm:"type:varchar(255);not null"`
	BusinessDescription string    `gorm:"type:text"`
	BusinessAddress     string    `gorm:"type:varchar(255)"`
	BusinessPhone       string    `gorm:"type:varchar(20)"`
	BusinessEmail       string    `gorm:"type:varchar(255)"`
	BusinessWebsite     string    `gorm:"type:varchar(255)"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProviderProfileModel) TableName() string {
	return "provider_profiles"
}
