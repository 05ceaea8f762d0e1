// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"rentease/config"
	"rentease/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret   string
	tokenTTL time.Duration
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.Auth == nil || cfg.Auth.JWTSecret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	ttl := cfg.Auth.TokenTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}

	return &jwtService{
		secret:   cfg.Auth.JWTSecret,
		tokenTTL: ttl,
	}, nil
}

// Generate creates a signed session token whose subject is the user id.
func (s *jwtService) Generate(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Validate checks signature, structure, and expiry, then resolves the subject
// into a user id.
func (s *jwtService) Validate(tokenString string) (*service.Claims, error) {
	var registered jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &registered, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token structure")
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	userID, err := uuid.Parse(registered.Subject)
	if err != nil {
		return nil, errors.Wrap(err, "invalid subject in token")
	}

	return &service.Claims{
		UserID:           userID,
		RegisteredClaims: registered,
	}, nil
}

// TokenDuration returns the configured validity window.
func (s *jwtService) TokenDuration() time.Duration {
	return s.tokenTTL
}
