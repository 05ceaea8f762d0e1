package repository

import (
	"context"
	"errors"

	"rentease/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrListingNotFound is a domain-specific error returned when a listing is not found.
var ErrListingNotFound = errors.New("listing not found")

// ListingRepository defines the standard operations for listing persistence.
type ListingRepository interface {
	// Create persists a new listing entity to the storage.
	Create(ctx context.Context, listing *entity.Listing) error

	// FindByID retrieves a single listing by ID, with its owner joined.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error)

	// FindAll retrieves every listing with owners joined, newest first.
	FindAll(ctx context.Context) ([]*entity.Listing, error)

	// FindByCategory retrieves listings in the given category, newest first.
	FindByCategory(ctx context.Context, category entity.Category) ([]*entity.Listing, error)

	// FindByContactEmail retrieves listings whose advertised contact email
	// matches. This deliberately matches the denormalized listing field,
	// not the owner's account email.
	FindByContactEmail(ctx context.Context, email string) ([]*entity.Listing, error)

	// FindByOwner retrieves listings owned by the given account.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Listing, error)

	// CountByOwner counts listings owned by the given account.
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)

	// Delete removes a listing by ID, returning ErrListingNotFound when no
	// row matched.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByOwner removes every listing owned by the given account and
	// reports how many were removed. Zero matches is not an error.
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}
