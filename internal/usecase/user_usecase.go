// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"rentease/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Name     string
	Phone    string
	Email    string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's basic information.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the signed token and the identity snapshot sent back
// to the client after a successful login.
type LoginOutput struct {
	Token string
	Email string
	User  *entity.User
}

// UserUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer depends on.
type UserUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
