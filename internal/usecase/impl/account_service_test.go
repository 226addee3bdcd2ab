package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/errors"
	"marketplace/internal/usecase"
)

func validRegisterInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Email:     "jane@example.com",
		Phone:     "+12025550147",
		FirstName: "Jane",
		LastName:  "Doe",
		Password:  "StrongPass123!",
	}
}

func TestAccountService_Register(t *testing.T) {
	svc, repo, mailer := newTestAccountService()

	output, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)
	assert.Equal(t, "Account created. Please check your email to activate your account.", output.Message)
	require.NotNil(t, output.Account)
	assert.Equal(t, entity.RoleUser, output.Account.Role)
	assert.False(t, output.Account.EmailVerified)

	stored, err := repo.FindByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.VerificationToken)
	require.NotNil(t, stored.VerificationTokenExpiresAt)
	assert.True(t, stored.VerificationTokenExpiresAt.After(time.Now()))

	require.Len(t, mailer.verificationMails, 1)
	assert.Equal(t, "jane@example.com", mailer.verificationMails[0].To)
	assert.Equal(t, *stored.VerificationToken, mailer.verificationMails[0].Token)
}

func TestAccountService_Register_NormalizesEmail(t *testing.T) {
	svc, repo, _ := newTestAccountService()

	input := validRegisterInput()
	input.Email = "  Jane@Example.COM "

	_, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = repo.FindByEmail(context.Background(), "jane@example.com")
	assert.NoError(t, err)
}

func TestAccountService_Register_RoleResolution(t *testing.T) {
	tests := []struct {
		name      string
		requested string
		want      entity.Role
	}{
		{name: "default", requested: "", want: entity.RoleUser},
		{name: "explicit admin", requested: "ADMIN", want: entity.RoleAdmin},
		{name: "provider request is ignored", requested: "PROVIDER", want: entity.RoleUser},
		{name: "unknown value", requested: "SUPERUSER", want: entity.RoleUser},
		{name: "lowercase admin is not admin", requested: "admin", want: entity.RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestAccountService()

			input := validRegisterInput()
			input.Role = tt.requested

			output, err := svc.Register(context.Background(), input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, output.Account.Role)
		})
	}
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAccountService()

	_, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	input := validRegisterInput()
	input.Phone = "+12025550199"

	_, err = svc.Register(context.Background(), input)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Invalid registration data", appErr.Message())
}

func TestAccountService_Register_WeakPassword(t *testing.T) {
	svc, repo, _ := newTestAccountService()

	input := validRegisterInput()
	input.Password = "short"

	_, err := svc.Register(context.Background(), input)
	assert.Error(t, err)

	_, err = repo.FindByEmail(context.Background(), "jane@example.com")
	assert.Error(t, err, "no account should be created for a rejected password")
}

func TestAccountService_Register_MailFailureKeepsAccount(t *testing.T) {
	svc, repo, mailer := newTestAccountService()
	mailer.failVerification = true

	output, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err, "mail failure must not fail registration")
	assert.NotNil(t, output.Account)

	_, err = repo.FindByEmail(context.Background(), "jane@example.com")
	assert.NoError(t, err)
}

func registerVerifiedAccount(t *testing.T, svc usecase.AccountUsecase, repo *fakeAccountRepo) *entity.Account {
	t.Helper()

	output, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	stored, err := repo.FindByEmail(context.Background(), output.Account.Email)
	require.NoError(t, err)
	require.NotNil(t, stored.VerificationToken)

	_, err = svc.VerifyEmail(context.Background(), usecase.VerifyEmailInput{Token: *stored.VerificationToken})
	require.NoError(t, err)

	verified, err := repo.FindByEmail(context.Background(), output.Account.Email)
	require.NoError(t, err)

	return verified
}

func TestAccountService_Login(t *testing.T) {
	svc, repo, _ := newTestAccountService()
	account := registerVerifiedAccount(t, svc, repo)

	output, err := svc.Login(context.Background(), usecase.LoginInput{
		Email:    account.Email,
		Password: "StrongPass123!",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, output.Token)
	assert.Equal(t, account.ID, output.Account.ID)

	// The issued token carries the account identity, role and email.
	claims, err := (&fakeTokenService{}).Verify(output.Token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, claims.AccountID)
	assert.Equal(t, entity.RoleUser, claims.Role)
	assert.Equal(t, account.Email, claims.Email)
}

func TestAccountService_Login_InvalidCredentials(t *testing.T) {
	svc, repo, _ := newTestAccountService()
	account := registerVerifiedAccount(t, svc, repo)

	// Unknown email and wrong password must be indistinguishable.
	_, unknownErr := svc.Login(context.Background(), usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "StrongPass123!",
	})
	require.Error(t, unknownErr)

	_, wrongErr := svc.Login(context.Background(), usecase.LoginInput{
		Email:    account.Email,
		Password: "WrongPass123!",
	})
	require.Error(t, wrongErr)

	assert.Equal(t, domainerrors.ErrInvalidCredentials, unknownErr)
	assert.Equal(t, domainerrors.ErrInvalidCredentials, wrongErr)
}

func TestAccountService_Login_UnverifiedEmail(t *testing.T) {
	svc, _, _ := newTestAccountService()

	_, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), usecase.LoginInput{
		Email:    "jane@example.com",
		Password: "StrongPass123!",
	})
	assert.Equal(t, domainerrors.ErrEmailNotVerified, err)

	// The verification gate fires before the password check, so even a wrong
	// password reports the unverified state.
	_, err = svc.Login(context.Background(), usecase.LoginInput{
		Email:    "jane@example.com",
		Password: "WrongPass123!",
	})
	assert.Equal(t, domainerrors.ErrEmailNotVerified, err)
}

func TestAccountService_VerifyEmail_SingleUse(t *testing.T) {
	svc, repo, _ := newTestAccountService()

	output, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	stored, err := repo.FindByEmail(context.Background(), output.Account.Email)
	require.NoError(t, err)
	token := *stored.VerificationToken

	result, err := svc.VerifyEmail(context.Background(), usecase.VerifyEmailInput{Token: token})
	require.NoError(t, err)
	assert.Equal(t, "Email successfully verified", result.Message)

	// Second redemption of the same token must fail.
	_, err = svc.VerifyEmail(context.Background(), usecase.VerifyEmailInput{Token: token})
	assert.Equal(t, domainerrors.ErrInvalidOrExpiredToken, err)
}

func TestAccountService_VerifyEmail_ExpiredToken(t *testing.T) {
	svc, repo, _ := newTestAccountService()

	output, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	repo.mu.Lock()
	for _, account := range repo.accounts {
		if account.ID == output.Account.ID {
			expired := time.Now().Add(-time.Minute)
			account.VerificationTokenExpiresAt = &expired
		}
	}
	repo.mu.Unlock()

	stored, err := repo.FindByID(context.Background(), output.Account.ID)
	require.NoError(t, err)

	_, err = svc.VerifyEmail(context.Background(), usecase.VerifyEmailInput{Token: *stored.VerificationToken})
	assert.Equal(t, domainerrors.ErrInvalidOrExpiredToken, err)
}

func TestAccountService_ForgotPassword_UnknownEmailSameMessage(t *testing.T) {
	svc, repo, mailer := newTestAccountService()
	account := registerVerifiedAccount(t, svc, repo)

	known, err := svc.ForgotPassword(context.Background(), usecase.ForgotPasswordInput{Email: account.Email})
	require.NoError(t, err)

	unknown, err := svc.ForgotPassword(context.Background(), usecase.ForgotPasswordInput{Email: "nobody@example.com"})
	require.NoError(t, err)

	assert.Equal(t, known.Message, unknown.Message)
	assert.Len(t, mailer.resetMails, 1, "only the registered email receives mail")
}

func TestAccountService_ResetPassword(t *testing.T) {
	svc, repo, mailer := newTestAccountService()
	account := registerVerifiedAccount(t, svc, repo)

	_, err := svc.ForgotPassword(context.Background(), usecase.ForgotPasswordInput{Email: account.Email})
	require.NoError(t, err)
	require.Len(t, mailer.resetMails, 1)
	resetToken := mailer.resetMails[0].Token

	result, err := svc.ResetPassword(context.Background(), usecase.ResetPasswordInput{
		Token:       resetToken,
		NewPassword: "NewStrongPass456!",
	})
	require.NoError(t, err)
	assert.Equal(t, "Password successfully updated", result.Message)

	// Old password no longer works, new one does.
	_, err = svc.Login(context.Background(), usecase.LoginInput{Email: account.Email, Password: "StrongPass123!"})
	assert.Error(t, err)

	_, err = svc.Login(context.Background(), usecase.LoginInput{Email: account.Email, Password: "NewStrongPass456!"})
	assert.NoError(t, err)

	// Token is single-use.
	_, err = svc.ResetPassword(context.Background(), usecase.ResetPasswordInput{
		Token:       resetToken,
		NewPassword: "AnotherPass789!",
	})
	assert.Equal(t, domainerrors.ErrInvalidOrExpiredToken, err)
}

func TestAccountService_VerifyEmail_EmptyToken(t *testing.T) {
	svc, _, _ := newTestAccountService()

	_, err := svc.VerifyEmail(context.Background(), usecase.VerifyEmailInput{Token: ""})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
}

func TestAccountService_ResetPassword_MinLengthOnly(t *testing.T) {
	svc, repo, mailer := newTestAccountService()
	account := registerVerifiedAccount(t, svc, repo)

	_, err := svc.ForgotPassword(context.Background(), usecase.ForgotPasswordInput{Email: account.Email})
	require.NoError(t, err)
	resetToken := mailer.resetMails[0].Token

	// Too short fails validation before the token is touched.
	_, err = svc.ResetPassword(context.Background(), usecase.ResetPasswordInput{
		Token:       resetToken,
		NewPassword: "short",
	})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())

	// Eight characters suffice: no complexity classes are required on reset.
	_, err = svc.ResetPassword(context.Background(), usecase.ResetPasswordInput{
		Token:       resetToken,
		NewPassword: "aaaaaaaa",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), usecase.LoginInput{Email: account.Email, Password: "aaaaaaaa"})
	assert.NoError(t, err)
}

func TestAccountService_ResetPassword_PersistenceFailure(t *testing.T) {
	svc, repo, mailer := newTestAccountService()
	account := registerVerifiedAccount(t, svc, repo)

	_, err := svc.ForgotPassword(context.Background(), usecase.ForgotPasswordInput{Email: account.Email})
	require.NoError(t, err)
	resetToken := mailer.resetMails[0].Token

	repo.consumeResetErr = errors.New("connection reset by peer")

	_, err = svc.ResetPassword(context.Background(), usecase.ResetPasswordInput{
		Token:       resetToken,
		NewPassword: "NewStrongPass456!",
	})
	assert.Equal(t, domainerrors.ErrPasswordResetFailed, err,
		"storage failures must not surface as internal errors")
}

func TestAccountService_ResetPassword_ConcurrentSingleUse(t *testing.T) {
	svc, repo, mailer := newTestAccountService()
	account := registerVerifiedAccount(t, svc, repo)

	_, err := svc.ForgotPassword(context.Background(), usecase.ForgotPasswordInput{Email: account.Email})
	require.NoError(t, err)
	resetToken := mailer.resetMails[0].Token

	const attempts = 16
	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := range attempts {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, results[idx] = svc.ResetPassword(context.Background(), usecase.ResetPasswordInput{
				Token:       resetToken,
				NewPassword: "NewStrongPass456!",
			})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, resultErr := range results {
		if resultErr == nil {
			successes++
		} else {
			assert.Equal(t, domainerrors.ErrInvalidOrExpiredToken, resultErr)
		}
	}
	assert.Equal(t, 1, successes, "exactly one concurrent redemption may succeed")
}

func TestAccountService_PromoteAccount(t *testing.T) {
	svc, repo, _ := newTestAccountService()
	account := registerVerifiedAccount(t, svc, repo)

	promoted, err := svc.PromoteAccount(context.Background(), usecase.PromoteAccountInput{
		AccountID: account.ID,
		Role:      entity.RoleProvider,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleProvider, promoted.Role)

	stored, err := repo.FindByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleProvider, stored.Role)

	// Demotion back to the customer role is the inverse of the same operation.
	demoted, err := svc.PromoteAccount(context.Background(), usecase.PromoteAccountInput{
		AccountID: account.ID,
		Role:      entity.RoleUser,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, demoted.Role)

	// Granting ADMIN through this path is rejected.
	_, err = svc.PromoteAccount(context.Background(), usecase.PromoteAccountInput{
		AccountID: account.ID,
		Role:      entity.RoleAdmin,
	})
	assert.Error(t, err)
}

func TestAccountService_PromoteAccount_NotFound(t *testing.T) {
	svc, _, _ := newTestAccountService()

	_, err := svc.PromoteAccount(context.Background(), usecase.PromoteAccountInput{
		AccountID: uuid.New(),
		Role:      entity.RoleProvider,
	})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Resource not found", appErr.Message())
}
