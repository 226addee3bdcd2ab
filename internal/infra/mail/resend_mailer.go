// Package mail implements the outbound Mailer collaborator.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"marketplace/config"
	"marketplace/internal/domain/service"
	"marketplace/internal/errors"
)

const (
	defaultEndpoint   = "https://api.resend.com"
	sendTimeout       = 5 * time.Second
	verifyEmailPath   = "/auth/verify-email"
	resetPasswordPath = "/auth/reset-password"
)

// resendMailer delivers transactional mail through the Resend HTTP API.
type resendMailer struct {
	apiKey        string
	from          string
	endpoint      string
	publicBaseURL string
	client        *http.Client
}

// NewResendMailer builds a Mailer backed by the Resend API.
func NewResendMailer(cfg *config.MailConfig) (service.Mailer, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("mail api key must be provided")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	return &resendMailer{
		apiKey:        cfg.APIKey,
		from:          cfg.From,
		endpoint:      endpoint,
		publicBaseURL: cfg.PublicBaseURL,
		client:        &http.Client{Timeout: sendTimeout},
	}, nil
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendVerificationEmail delivers the email-verification link carrying the token.
func (m *resendMailer) SendVerificationEmail(ctx context.Context, to, token string) error {
	link := m.link(verifyEmailPath, token)
	html := fmt.Sprintf(`
		<p>Welcome!</p>
		<p>Please verify your email by clicking the link below:</p>
		<p><a href="%s">Verify Email</a></p>
	`, link)

	return m.send(ctx, to, "Verify your email", html)
}

// SendResetPasswordEmail delivers the password-reset link carrying the token.
func (m *resendMailer) SendResetPasswordEmail(ctx context.Context, to, token string) error {
	link := m.link(resetPasswordPath, token)
	html := fmt.Sprintf(`
		<p>We received a request to reset your password.</p>
		<p>Click the link below to choose a new one. The link expires shortly.</p>
		<p><a href="%s">Reset Password</a></p>
		<p>If you did not request this, you can safely ignore this email.</p>
	`, link)

	return m.send(ctx, to, "Reset your password", html)
}

func (m *resendMailer) link(path, token string) string {
	return m.publicBaseURL + path + "?token=" + url.QueryEscape(token)
}

func (m *resendMailer) send(ctx context.Context, to, subject, html string) error {
	body := sendRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "marshal mail payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint+"/emails", bytes.NewBuffer(payload))
	if err != nil {
		return errors.Wrap(err, "build mail request")
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "send mail request")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		return errors.Errorf("mail provider returned %d: %s", resp.StatusCode, string(detail))
	}

	return nil
}
