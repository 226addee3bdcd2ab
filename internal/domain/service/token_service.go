package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"marketplace/internal/domain/entity"
)

// Claims defines the custom claims carried by a session token. The verifier
// performs no database lookup: the three claims are trusted at face value for
// the token's lifetime.
type Claims struct {
	AccountID uuid.UUID
	Role      entity.Role
	Email     string
	jwt.RegisteredClaims
}

// TokenService defines the interface for signing and verifying session tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Sign produces a tamper-evident, self-contained token binding the
	// account ID, role and email with the configured session expiry.
	Sign(accountID uuid.UUID, role entity.Role, email string) (string, error)

	// Verify checks signature, structure and expiry of a token string.
	// On success it yields the claims unmodified.
	Verify(tokenString string) (*Claims, error)
}
