// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "marketplace/internal/delivery/context"
	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/domain/service"
	"marketplace/internal/usecase"
)

const (
	// verificationTokenTTL bounds how long an email-verification link stays valid.
	verificationTokenTTL = 30 * time.Minute
	// resetTokenTTL bounds how long a password-reset link stays valid.
	resetTokenTTL = 15 * time.Minute

	// minResetPasswordLength is the only policy applied to a reset password.
	minResetPasswordLength = 8

	registerMessage       = "Account created. Please check your email to activate your account."
	forgotPasswordMessage = "If your email is registered, you will receive reset instructions"
	verifyEmailMessage    = "Email successfully verified"
	resetPasswordMessage  = "Password successfully updated"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager      repository.TransactionManager
	accountRepo    repository.AccountRepository
	hasher         service.PasswordHasher
	tokenService   service.TokenService
	tokenGenerator service.SecureTokenGenerator
	mailer         service.Mailer
	logger         *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	AccountRepo    repository.AccountRepository
	Hasher         service.PasswordHasher
	TokenService   service.TokenService
	TokenGenerator service.SecureTokenGenerator
	Mailer         service.Mailer
	Logger         *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:      params.TxManager,
		accountRepo:    params.AccountRepo,
		hasher:         params.Hasher,
		tokenService:   params.TokenService,
		tokenGenerator: params.TokenGenerator,
		mailer:         params.Mailer,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new unverified account and dispatches the verification
// email. Duplicate email or phone surfaces as the same generic registration
// error the validation layer produces, so existence cannot be probed.
func (srv *accountService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	email := normalizeEmail(input.Email)

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		return nil, err
	}

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed
	}

	verificationToken, err := srv.tokenGenerator.Generate()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate verification token")
	}
	expiresAt := time.Now().Add(verificationTokenTTL)

	account := &entity.Account{
		Email:                      email,
		Phone:                      strings.TrimSpace(input.Phone),
		FirstName:                  strings.TrimSpace(input.FirstName),
		LastName:                   strings.TrimSpace(input.LastName),
		PasswordHash:               passwordHash,
		Role:                       entity.ResolveRequestedRole(input.Role),
		EmailVerified:              false,
		VerificationToken:          &verificationToken,
		VerificationTokenExpiresAt: &expiresAt,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.AccountRepo().Create(ctx, account)
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}

	// Mail is dispatched after the commit. A delivery failure keeps the
	// account; the user can request a fresh link via the reset flow.
	if mailErr := srv.mailer.SendVerificationEmail(ctx, email, verificationToken); mailErr != nil {
		srv.log(ctx).Error("Failed to send verification email",
			slog.String("accountID", account.ID.String()),
			slog.Any("error", mailErr))
	}

	srv.log(ctx).Info("Account registered",
		slog.String("accountID", account.ID.String()),
		slog.String("role", string(account.Role)))

	return &usecase.RegisterOutput{Message: registerMessage, Account: account}, nil
}

// Login authenticates an account by email and password and issues a session
// token. Unknown email and wrong password produce the identical error. The
// verification gate comes before the password check, so an unverified account
// always fails with EmailNotVerified regardless of the password supplied.
func (srv *accountService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := normalizeEmail(input.Email)

	account, err := srv.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	if !account.EmailVerified {
		return nil, domainerrors.ErrEmailNotVerified
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := srv.tokenService.Sign(account.ID, account.Role, account.Email)
	if err != nil {
		srv.log(ctx).Error("Failed to sign session token", slog.Any("error", err))

		return nil, domainerrors.ErrInternal
	}

	srv.log(ctx).Debug("Login succeeded", slog.String("accountID", account.ID.String()))

	return &usecase.LoginOutput{Token: token, Account: account}, nil
}

// VerifyEmail consumes a verification token. The guarded update in the
// repository guarantees at most one caller succeeds per token.
func (srv *accountService) VerifyEmail(ctx context.Context, input usecase.VerifyEmailInput) (*usecase.MessageOutput, error) {
	if input.Token == "" {
		return nil, domainerrors.NewValidationError("Invalid token format")
	}

	err := srv.accountRepo.ConsumeVerificationToken(ctx, input.Token, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotConsumed) {
			return nil, domainerrors.ErrInvalidOrExpiredToken
		}

		return nil, errors.Wrap(err, "failed to consume verification token")
	}

	return &usecase.MessageOutput{Message: verifyEmailMessage}, nil
}

// ForgotPassword stores a reset token for a known email and mails the link.
// The response is identical whether or not the email exists.
func (srv *accountService) ForgotPassword(ctx context.Context, input usecase.ForgotPasswordInput) (*usecase.MessageOutput, error) {
	email := normalizeEmail(input.Email)
	output := &usecase.MessageOutput{Message: forgotPasswordMessage}

	account, err := srv.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			// Deliberately indistinguishable from the success path.
			return output, nil
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	resetToken, err := srv.tokenGenerator.Generate()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate reset token")
	}

	if err := srv.accountRepo.SetResetPasswordToken(ctx, account.ID, resetToken, time.Now().Add(resetTokenTTL)); err != nil {
		return nil, errors.Wrap(err, "failed to store reset token")
	}

	if mailErr := srv.mailer.SendResetPasswordEmail(ctx, account.Email, resetToken); mailErr != nil {
		srv.log(ctx).Error("Failed to send reset password email",
			slog.String("accountID", account.ID.String()),
			slog.Any("error", mailErr))
	}

	return output, nil
}

// ResetPassword consumes a reset token and replaces the password in one
// guarded update, so a token can never be redeemed twice. Only the minimum
// length is enforced here; the full complexity policy applies at registration.
func (srv *accountService) ResetPassword(ctx context.Context, input usecase.ResetPasswordInput) (*usecase.MessageOutput, error) {
	if input.Token == "" {
		return nil, domainerrors.NewValidationError("Invalid token format")
	}

	if len(input.NewPassword) < minResetPasswordLength {
		return nil, domainerrors.NewValidationError("Password must be at least 8 characters long")
	}

	passwordHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed
	}

	err = srv.accountRepo.ConsumeResetPasswordToken(ctx, input.Token, passwordHash, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotConsumed) {
			return nil, domainerrors.ErrInvalidOrExpiredToken
		}

		srv.log(ctx).Error("Failed to persist password reset", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordResetFailed
	}

	return &usecase.MessageOutput{Message: resetPasswordMessage}, nil
}

// PromoteAccount moves an existing account between the customer and provider
// roles. Admin only; the authority check happens in the delivery layer.
func (srv *accountService) PromoteAccount(ctx context.Context, input usecase.PromoteAccountInput) (*entity.Account, error) {
	if input.Role != entity.RoleProvider && input.Role != entity.RoleUser {
		return nil, domainerrors.NewValidationError("Role must be PROVIDER or USER")
	}

	var promoted *entity.Account

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByID(ctx, input.AccountID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("account not found")
			}

			return errors.Wrap(err, "failed to find account")
		}

		if err := accountRepo.UpdateRole(ctx, account.ID, input.Role); err != nil {
			return errors.Wrap(err, "failed to update account role")
		}

		account.Role = input.Role
		promoted = account

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Account role changed",
		slog.String("accountID", promoted.ID.String()),
		slog.String("role", string(promoted.Role)))

	return promoted, nil
}

// normalizeEmail lowercases and trims the address so lookups and uniqueness
// behave case-insensitively.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
