package auth

import (
	"crypto/rand"
	"encoding/hex"

	"marketplace/internal/domain/service"
	"marketplace/internal/errors"
)

// tokenByteLength yields 96 hex characters per token, enough entropy that
// guessing a live verification or reset token is not feasible.
const tokenByteLength = 48

// hexTokenGenerator produces random hex strings from crypto/rand.
type hexTokenGenerator struct{}

// NewHexTokenGenerator is the constructor for hexTokenGenerator.
func NewHexTokenGenerator() service.SecureTokenGenerator {
	return &hexTokenGenerator{}
}

// Generate returns a cryptographically random token string.
func (g *hexTokenGenerator) Generate() (string, error) {
	buf := make([]byte, tokenByteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "read random bytes")
	}

	return hex.EncodeToString(buf), nil
}
