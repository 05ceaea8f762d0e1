package usecase

import (
	"context"

	"rentease/internal/domain/entity"

	"github.com/google/uuid"
)

// UserOverview pairs a user with the number of listings they have published.
type UserOverview struct {
	User      *entity.User
	PostCount int64
}

// AdminUsecase defines the moderation operations reserved for administrators.
type AdminUsecase interface {
	ListUsers(ctx context.Context) ([]*UserOverview, error)
	// DeleteUser removes the account together with all of its listings and
	// their stored images.
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}
