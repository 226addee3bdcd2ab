// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for account persistence.
// This allows the application layer to handle specific outcomes without depending on database-specific errors.
var (
	// ErrAccountNotFound is returned when an account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrTokenNotConsumed is returned when a single-use token could not be
	// consumed: it does not exist, has expired, or was already used.
	ErrTokenNotConsumed = errors.New("single-use token not found or expired")
)

// AccountRepository defines the standard operations for account persistence.
type AccountRepository interface {
	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves a single account by its normalized email address.
	// Phone lookups are intentionally absent: phone uniqueness is enforced by
	// the database constraint alone.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// Create persists a new account entity to the storage.
	Create(ctx context.Context, account *entity.Account) error

	// Update modifies an existing account entity in the storage.
	Update(ctx context.Context, account *entity.Account) error

	// UpdateRole changes the role of an account. Used by admin promotion only.
	UpdateRole(ctx context.Context, id uuid.UUID, role entity.Role) error

	// SetResetPasswordToken stores a reset token and its expiry on the account,
	// replacing any previous one.
	SetResetPasswordToken(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) error

	// ConsumeVerificationToken atomically marks the matching account as
	// verified and clears the token pair, but only when the stored token
	// equals the input and has not expired at 'now'. The guarded update
	// ensures a token is consumed exactly once even under concurrent calls.
	// Returns ErrTokenNotConsumed when no row matched.
	ConsumeVerificationToken(ctx context.Context, token string, now time.Time) error

	// ConsumeResetPasswordToken atomically replaces the password hash and
	// clears the reset token pair under the same guarded-update semantics as
	// ConsumeVerificationToken. Returns ErrTokenNotConsumed when no row matched.
	ConsumeResetPasswordToken(ctx context.Context, token, newPasswordHash string, now time.Time) error
}
