// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"marketplace/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
// Role carries the raw requested role string; anything other than an explicit
// admin request resolves to the default customer role.
type RegisterInput struct {
	Email     string
	Phone     string
	FirstName string
	LastName  string
	Password  string
	Role      string
}

// LoginInput defines the data required for an account to log in.
type LoginInput struct {
	Email    string
	Password string
}

// VerifyEmailInput carries the single-use verification token.
type VerifyEmailInput struct {
	Token string
}

// ForgotPasswordInput carries the email a reset is requested for.
type ForgotPasswordInput struct {
	Email string
}

// ResetPasswordInput carries the single-use reset token and the new password.
type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

// PromoteAccountInput identifies the account an admin promotes to provider,
// or demotes back to the customer role.
type PromoteAccountInput struct {
	AccountID uuid.UUID
	Role      entity.Role
}

// --- Output DTOs ---

// RegisterOutput returns the outcome message shown to the registrant.
// The created account is intentionally not echoed back in full.
type RegisterOutput struct {
	Message string
	Account *entity.Account
}

// LoginOutput returns the session token after a successful login.
type LoginOutput struct {
	Token   string
	Account *entity.Account
}

// MessageOutput returns a user-facing outcome message for flows whose result
// must not reveal account existence.
type MessageOutput struct {
	Message string
}

// AccountUsecase defines the interface for identity and access operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
	VerifyEmail(ctx context.Context, input VerifyEmailInput) (*MessageOutput, error)
	ForgotPassword(ctx context.Context, input ForgotPasswordInput) (*MessageOutput, error)
	ResetPassword(ctx context.Context, input ResetPasswordInput) (*MessageOutput, error)
	PromoteAccount(ctx context.Context, input PromoteAccountInput) (*entity.Account, error)
}
