package service

import "context"

// Mailer is the outbound notification collaborator. A delivery failure must be
// catchable by the caller without corrupting already-committed account state.
type Mailer interface {
	// SendVerificationEmail delivers the email-verification link carrying the
	// plaintext single-use token.
	SendVerificationEmail(ctx context.Context, to, token string) error

	// SendResetPasswordEmail delivers the password-reset link carrying the
	// plaintext single-use token.
	SendResetPasswordEmail(ctx context.Context, to, token string) error
}
