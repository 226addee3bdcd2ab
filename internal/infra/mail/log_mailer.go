package mail

import (
	"context"
	"log/slog"

	"marketplace/config"
	"marketplace/internal/domain/service"
)

// logMailer stands in for a real mail provider in local development. It logs
// the delivery instead of sending it so flows remain testable end to end.
type logMailer struct {
	logger *slog.Logger
}

// NewLogMailer builds a Mailer that only logs deliveries.
func NewLogMailer(logger *slog.Logger) service.Mailer {
	return &logMailer{logger: logger}
}

// NewMailer selects the Resend mailer when an API key is configured and the
// log-only mailer otherwise.
func NewMailer(cfg *config.Config, logger *slog.Logger) (service.Mailer, error) {
	if cfg.Mail == nil || cfg.Mail.APIKey == "" {
		logger.Warn("mail api key not configured, using log-only mailer")

		return NewLogMailer(logger), nil
	}

	return NewResendMailer(cfg.Mail)
}

func (m *logMailer) SendVerificationEmail(ctx context.Context, to, token string) error {
	m.logger.InfoContext(ctx, "verification email (log-only mailer)",
		slog.String("to", to),
		slog.String("token", token))

	return nil
}

func (m *logMailer) SendResetPasswordEmail(ctx context.Context, to, token string) error {
	m.logger.InfoContext(ctx, "reset password email (log-only mailer)",
		slog.String("to", to),
		slog.String("token", token))

	return nil
}
