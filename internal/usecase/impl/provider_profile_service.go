package impl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "marketplace/internal/delivery/context"
	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/usecase"
)

// providerProfileService implements the ProviderProfileUsecase interface.
type providerProfileService struct {
	profileRepo repository.ProviderProfileRepository
	logger      *slog.Logger
}

// ProviderProfileServiceParams holds dependencies for providerProfileService, injected by Fx.
type ProviderProfileServiceParams struct {
	fx.In

	ProfileRepo repository.ProviderProfileRepository
	Logger      *slog.Logger
}

// NewProviderProfileService is the constructor for providerProfileService.
func NewProviderProfileService(params ProviderProfileServiceParams) usecase.ProviderProfileUsecase {
	return &providerProfileService{
		profileRepo: params.ProfileRepo,
		logger:      params.Logger,
	}
}

func (srv *providerProfileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateProfile creates the business profile for a provider account.
func (srv *providerProfileService) CreateProfile(ctx context.Context, input usecase.UpsertProviderProfileInput) (*entity.ProviderProfile, error) {
	if strings.TrimSpace(input.BusinessName) == "" {
		return nil, domainerrors.NewValidationError("Business name is required")
	}

	profile := profileFromInput(input)
	if err := srv.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Provider profile created",
		slog.String("profileID", profile.ID.String()),
		slog.String("accountID", profile.AccountID.String()))

	return profile, nil
}

// GetProfileByAccount returns the profile owned by the given account.
func (srv *providerProfileService) GetProfileByAccount(ctx context.Context, accountID uuid.UUID) (*entity.ProviderProfile, error) {
	profile, err := srv.profileRepo.FindByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrProviderProfileNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("provider profile not found")
		}

		return nil, errors.Wrap(err, "failed to find provider profile")
	}

	return profile, nil
}

// UpdateProfile replaces the mutable business fields of the caller's profile.
func (srv *providerProfileService) UpdateProfile(ctx context.Context, input usecase.UpsertProviderProfileInput) (*entity.ProviderProfile, error) {
	existing, err := srv.profileRepo.FindByAccountID(ctx, input.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrProviderProfileNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("provider profile not found")
		}

		return nil, errors.Wrap(err, "failed to find provider profile")
	}

	existing.BusinessName = input.BusinessName
	existing.BusinessDescription = input.BusinessDescription
	existing.BusinessAddress = input.BusinessAddress
	existing.BusinessPhone = input.BusinessPhone
	existing.BusinessEmail = normalizeEmail(input.BusinessEmail)
	existing.BusinessWebsite = input.BusinessWebsite

	if err := srv.profileRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

// DeleteProfile removes the caller's provider profile.
func (srv *providerProfileService) DeleteProfile(ctx context.Context, accountID uuid.UUID) error {
	profile, err := srv.profileRepo.FindByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrProviderProfileNotFound) {
			return domainerrors.ErrNotFound.WrapMessage("provider profile not found")
		}

		return errors.Wrap(err, "failed to find provider profile")
	}

	if err := srv.profileRepo.Delete(ctx, profile.ID); err != nil {
		return errors.Wrap(err, "failed to delete provider profile")
	}

	srv.log(ctx).Info("Provider profile deleted", slog.String("profileID", profile.ID.String()))

	return nil
}

func profileFromInput(input usecase.UpsertProviderProfileInput) *entity.ProviderProfile {
	return &entity.ProviderProfile{
		AccountID:           input.AccountID,
		BusinessName:        strings.TrimSpace(input.BusinessName),
		BusinessDescription: input.BusinessDescription,
		BusinessAddress:     input.BusinessAddress,
		BusinessPhone:       input.BusinessPhone,
		BusinessEmail:       normalizeEmail(input.BusinessEmail),
		BusinessWebsite:     input.BusinessWebsite,
	}
}
