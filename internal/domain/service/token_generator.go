package service

// SecureTokenGenerator produces high-entropy, unguessable single-use strings
// for the email-verification and password-reset flows. The generator is
// stateless; callers pair every token with its own expiry timestamp.
type SecureTokenGenerator interface {
	// Generate returns a cryptographically random token string.
	Generate() (string, error)
}
