package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/config"
)

func TestResendMailer_SendVerificationEmail(t *testing.T) {
	var captured sendRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	mailer, err := NewResendMailer(&config.MailConfig{
		APIKey:        "test-key",
		From:          "no-reply@example.com",
		Endpoint:      server.URL,
		PublicBaseURL: "https://app.example.com",
	})
	require.NoError(t, err)

	err = mailer.SendVerificationEmail(context.Background(), "user@example.com", "tok123")
	assert.NoError(t, err)
	assert.Equal(t, []string{"user@example.com"}, captured.To)
	assert.Equal(t, "Verify your email", captured.Subject)
	assert.Contains(t, captured.HTML, "https://app.example.com/auth/verify-email?token=tok123")
}

func TestResendMailer_SendResetPasswordEmail_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"invalid from address"}`, http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	mailer, err := NewResendMailer(&config.MailConfig{
		APIKey:   "test-key",
		From:     "bad",
		Endpoint: server.URL,
	})
	require.NoError(t, err)

	err = mailer.SendResetPasswordEmail(context.Background(), "user@example.com", "tok123")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

func TestNewResendMailer_RequiresAPIKey(t *testing.T) {
	mailer, err := NewResendMailer(&config.MailConfig{})
	assert.Error(t, err)
	assert.Nil(t, mailer)
}
