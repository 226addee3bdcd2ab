// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the identity record at the heart of the system. It carries the
// login credential (email + password hash), the contact phone, the single
// assigned role and the state of the two single-use token flows.
type Account struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the account.
	Email        string    // Unique login identifier, stored lowercased and trimmed.
	Phone        string    // Unique contact phone, stored trimmed.
	FirstName    string    // The account holder's first name.
	LastName     string    // The account holder's last name.
	PasswordHash string    // bcrypt hash of the password. Never the plaintext, never logged.
	Role         Role      // Exactly one of USER, PROVIDER, ADMIN.

	// Email verification state. The token pair is set at registration and
	// cleared exactly once by a successful verification.
	EmailVerified              bool
	VerificationToken          *string
	VerificationTokenExpiresAt *time.Time

	// Password reset state. The token pair is set by a reset request and
	// cleared exactly once by a successful reset.
	ResetPasswordToken          *string
	ResetPasswordTokenExpiresAt *time.Time

	CreatedAt time.Time // Timestamp of when this account was created.
	UpdatedAt time.Time // Timestamp of the last modification to this account.
}

// FullName returns the display name composed from first and last name.
func (a *Account) FullName() string {
	if a.FirstName == "" {
		return a.LastName
	}
	if a.LastName == "" {
		return a.FirstName
	}

	return a.FirstName + " " + a.LastName
}
