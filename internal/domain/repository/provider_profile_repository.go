package repository

import (
	"context"
	"errors"

	"marketplace/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProviderProfileNotFound is returned when a provider profile is not found.
var ErrProviderProfileNotFound = errors.New("provider profile not found")

// ProviderProfileRepository defines the standard operations for provider profile persistence.
type ProviderProfileRepository interface {
	// Create persists a new provider profile.
	Create(ctx context.Context, profile *entity.ProviderProfile) error

	// FindByID retrieves a profile by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ProviderProfile, error)

	// FindByAccountID retrieves the profile belonging to an account.
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*entity.ProviderProfile, error)

	// Update modifies an existing provider profile.
	Update(ctx context.Context, profile *entity.ProviderProfile) error

	// Delete removes a provider profile by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
