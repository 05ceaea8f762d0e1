package usecase

import (
	"context"
	"mime/multipart"

	"rentease/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateListingInput defines the data required to publish a new listing.
// Images arrive as multipart file headers straight from the upload form.
type CreateListingInput struct {
	OwnerID      uuid.UUID
	Price        float64
	Category     string
	Description  string
	Location     string
	Contact      string
	ContactEmail string
	Images       []*multipart.FileHeader
}

// DeleteListingInput identifies the listing to remove and who is asking.
type DeleteListingInput struct {
	ListingID uuid.UUID
	ActorID   uuid.UUID
}

// ListingUsecase defines the interface for listing-related business operations.
type ListingUsecase interface {
	Create(ctx context.Context, input CreateListingInput) (*entity.Listing, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error)
	ListAll(ctx context.Context) ([]*entity.Listing, error)
	ListByCategory(ctx context.Context, category string) ([]*entity.Listing, error)
	ListByContactEmail(ctx context.Context, email string) ([]*entity.Listing, error)
	Delete(ctx context.Context, input DeleteListingInput) error
	ShareQR(ctx context.Context, id uuid.UUID) ([]byte, error)
}
