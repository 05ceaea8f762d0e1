package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by a session token.
type Claims struct {
	UserID uuid.UUID
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating session
// tokens. Tokens are self-contained: possession of a validly signed,
// unexpired token is proof of authentication, subject to the holder still
// existing in the store.
type TokenService interface {
	// Generate creates a signed session token for the given user.
	Generate(userID uuid.UUID) (string, error)

	// Validate checks a token string and returns its claims.
	Validate(tokenString string) (*Claims, error)

	// TokenDuration returns the configured validity window.
	TokenDuration() time.Duration
}
