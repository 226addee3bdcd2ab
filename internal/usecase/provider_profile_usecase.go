package usecase

import (
	"context"

	"github.com/google/uuid"

	"marketplace/internal/domain/entity"
)

// UpsertProviderProfileInput defines the data for creating or updating a
// provider's business profile.
type UpsertProviderProfileInput struct {
	AccountID           uuid.UUID
	BusinessName        string
	BusinessDescription string
	BusinessAddress     string
	BusinessPhone       string
	BusinessEmail       string
	BusinessWebsite     string
}

// ProviderProfileUsecase defines the business operations on provider profiles.
type ProviderProfileUsecase interface {
	CreateProfile(ctx context.Context, input UpsertProviderProfileInput) (*entity.ProviderProfile, error)
	GetProfileByAccount(ctx context.Context, accountID uuid.UUID) (*entity.ProviderProfile, error)
	UpdateProfile(ctx context.Context, input UpsertProviderProfileInput) (*entity.ProviderProfile, error)
	DeleteProfile(ctx context.Context, accountID uuid.UUID) error
}
