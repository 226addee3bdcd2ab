package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infra/persistence/model"
)

// providerProfileRepository implements the domain.ProviderProfileRepository interface using GORM.
type providerProfileRepository struct {
	db *gorm.DB
}

// NewProviderProfileRepository is the constructor for providerProfileRepository.
func NewProviderProfileRepository(db *gorm.DB) repository.ProviderProfileRepository {
	return &providerProfileRepository{db: db}
}

// Create persists a new provider profile. The unique constraint on account_id
// guarantees at most one profile per account.
func (repo *providerProfileRepository) Create(ctx context.Context, profile *entity.ProviderProfile) error {
	profileM := fromProviderProfileDomain(profile)

	if err := repo.db.WithContext(ctx).Create(profileM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("provider profile already exists for account")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrNotFound.WrapMessage("account does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create provider profile")
	}

	profile.ID = profileM.ID
	profile.CreatedAt = profileM.CreatedAt
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

// FindByID retrieves a profile by its unique ID.
func (repo *providerProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ProviderProfile, error) {
	var profileM model.ProviderProfileModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&profileM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProviderProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find provider profile by id")
	}

	return toProviderProfileDomain(&profileM), nil
}

// FindByAccountID retrieves the profile belonging to an account.
func (repo *providerProfileRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*entity.ProviderProfile, error) {
	var profileM model.ProviderProfileModel
	if err := repo.db.WithContext(ctx).Where("account_id = ?", accountID).First(&profileM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProviderProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find provider profile by account id")
	}

	return toProviderProfileDomain(&profileM), nil
}

// Update modifies an existing provider profile.
func (repo *providerProfileRepository) Update(ctx context.Context, profile *entity.ProviderProfile) error {
	profileM := fromProviderProfileDomain(profile)

	if err := repo.db.WithContext(ctx).Save(profileM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("provider profile already exists for account")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update provider profile")
	}

	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

// Delete removes a provider profile by its ID.
func (repo *providerProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ProviderProfileModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete provider profile")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProviderProfileNotFound
	}

	return nil
}

// toProviderProfileDomain converts a GORM ProviderProfileModel to a domain entity.
func toProviderProfileDomain(data *model.ProviderProfileModel) *entity.ProviderProfile {
	if data == nil {
		return nil
	}

	return &entity.ProviderProfile{
		ID:                  data.ID,
		AccountID:           data.AccountID,
		BusinessName:        data.BusinessName,
		BusinessDescription: data.BusinessDescription,
		BusinessAddress:     data.BusinessAddress,
		BusinessPhone:       data.BusinessPhone,
		BusinessEmail:       data.BusinessEmail,
		BusinessWebsite:     data.BusinessWebsite,
		CreatedAt:           data.CreatedAt,
		UpdatedAt:           data.UpdatedAt,
	}
}

// fromProviderProfileDomain converts a domain entity to a GORM ProviderProfileModel.
func fromProviderProfileDomain(data *entity.ProviderProfile) *model.ProviderProfileModel {
	if data == nil {
		return nil
	}

	return &model.ProviderProfileModel{
		ID:                  data.ID,
		AccountID:           data.AccountID,
		BusinessName:        data.BusinessName,
		BusinessDescription: data.BusinessDescription,
		BusinessAddress:     data.BusinessAddress,
		BusinessPhone:       data.BusinessPhone,
		BusinessEmail:       data.BusinessEmail,
		BusinessWebsite:     data.BusinessWebsite,
		CreatedAt:           data.CreatedAt,
		UpdatedAt:           data.UpdatedAt,
	}
}
