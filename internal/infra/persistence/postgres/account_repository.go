package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infra/persistence/model"
)

// accountRepository implements the domain.AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
// It returns the repository as a domain.AccountRepository interface, adhering to dependency inversion.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// FindByID retrieves a single account by its unique ID.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountM model.AccountModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&accountM).Error; err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toAccountDomain(&accountM), nil
}

// FindByEmail retrieves a single account by its email address.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var accountM model.AccountModel
	if err := repo.db.WithContext(ctx).Where("email = ?", email).First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return toAccountDomain(&accountM), nil
}

// Create persists a new account entity to the database. Uniqueness of email
// and phone is enforced by the database constraints, not by prior reads.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateAccount.WrapMessage("email or phone already registered")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrAccountCreationFailed.WrapMessage("missing required account information")
		}
		// For other database errors, return a generic database error
		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	// Update the account entity with the generated ID and timestamps
	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// Update modifies an existing account entity in the database.
func (repo *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Save(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateAccount.WrapMessage("email or phone already registered")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrAccountUpdateFailed.WrapMessage("missing required account information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update account")
	}

	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// UpdateRole changes the role of an account.
func (repo *accountRepository) UpdateRole(ctx context.Context, id uuid.UUID, role entity.Role) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", id).
		Update("role", string(role))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update account role")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// SetResetPasswordToken stores a reset token and its expiry, replacing any previous one.
func (repo *accountRepository) SetResetPasswordToken(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"reset_password_token":            token,
			"reset_password_token_expires_at": expiresAt,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to set reset password token")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// ConsumeVerificationToken marks the matching account verified and clears the
// token pair in one guarded UPDATE. The WHERE clause matches only a live,
// unexpired token, so concurrent calls with the same token succeed at most once.
func (repo *accountRepository) ConsumeVerificationToken(ctx context.Context, token string, now time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("verification_token = ? AND verification_token_expires_at > ?", token, now).
		Updates(map[string]any{
			"email_verified":                true,
			"verification_token":            nil,
			"verification_token_expires_at": nil,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to consume verification token")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTokenNotConsumed
	}

	return nil
}

// ConsumeResetPasswordToken replaces the password hash and clears the reset
// token pair under the same guarded-update semantics as ConsumeVerificationToken.
func (repo *accountRepository) ConsumeResetPasswordToken(ctx context.Context, token, newPasswordHash string, now time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("reset_password_token = ? AND reset_password_token_expires_at > ?", token, now).
		Updates(map[string]any{
			"password_hash":                   newPasswordHash,
			"reset_password_token":            nil,
			"reset_password_token_expires_at": nil,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to consume reset password token")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTokenNotConsumed
	}

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toAccountDomain converts a GORM AccountModel to a domain Account entity.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	return &entity.Account{
		ID:                          data.ID,
		Email:                       data.Email,
		Phone:                       data.Phone,
		FirstName:                   data.FirstName,
		LastName:                    data.LastName,
		PasswordHash:                data.PasswordHash,
		Role:                        entity.Role(data.Role),
		EmailVerified:               data.EmailVerified,
		VerificationToken:           data.VerificationToken,
		VerificationTokenExpiresAt:  data.VerificationTokenExpiresAt,
		ResetPasswordToken:          data.ResetPasswordToken,
		ResetPasswordTokenExpiresAt: data.ResetPasswordTokenExpiresAt,
		CreatedAt:                   data.CreatedAt,
		UpdatedAt:                   data.UpdatedAt,
	}
}

// fromAccountDomain converts a domain Account entity to a GORM AccountModel for persistence.
func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	return &model.AccountModel{
		ID:                          data.ID,
		Email:                       data.Email,
		Phone:                       data.Phone,
		FirstName:                   data.FirstName,
		LastName:                    data.LastName,
		PasswordHash:                data.PasswordHash,
		Role:                        string(data.Role),
		EmailVerified:               data.EmailVerified,
		VerificationToken:           data.VerificationToken,
		VerificationTokenExpiresAt:  data.VerificationTokenExpiresAt,
		ResetPasswordToken:          data.ResetPasswordToken,
		ResetPasswordTokenExpiresAt: data.ResetPasswordTokenExpiresAt,
		CreatedAt:                   data.CreatedAt,
		UpdatedAt:                   data.UpdatedAt,
	}
}
