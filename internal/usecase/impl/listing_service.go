package impl

import (
	"context"
	"log/slog"
	"strings"

	"rentease/internal/domain/entity"
	domainerrors "rentease/internal/domain/errors"
	"rentease/internal/domain/repository"
	"rentease/internal/domain/service"
	"rentease/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// listingService implements the ListingUsecase interface.
type listingService struct {
	txManager repository.TransactionManager
	media     service.MediaStore
	qr        service.QRCodeService
	logger    *slog.Logger
}

// NewListingService is the constructor for listingService.
func NewListingService(
	txManager repository.TransactionManager,
	media service.MediaStore,
	qr service.QRCodeService,
	logger *slog.Logger,
) usecase.ListingUsecase {
	return &listingService{
		txManager: txManager,
		media:     media,
		qr:        qr,
		logger:    logger,
	}
}

// Create validates the listing fields, stores the uploaded images, and
// persists the listing. Stored images are removed again if persisting fails
// so rejected submissions leave nothing on disk.
func (srv *listingService) Create(ctx context.Context, input usecase.CreateListingInput) (*entity.Listing, error) {
	if err := validateListingInput(input); err != nil {
		return nil, err
	}

	paths, err := srv.media.Save(ctx, input.Images)
	if err != nil {
		return nil, err
	}

	listing := &entity.Listing{
		OwnerID:      input.OwnerID,
		Images:       paths,
		Price:        input.Price,
		Category:     entity.Category(input.Category),
		Description:  input.Description,
		Location:     input.Location,
		Contact:      input.Contact,
		ContactEmail: input.ContactEmail,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.ListingRepo().Create(ctx, listing)
	})
	if err != nil {
		if removeErr := srv.media.Remove(ctx, paths); removeErr != nil {
			srv.logger.Warn("Failed to remove images after create failure", "error", removeErr)
		}

		return nil, err
	}

	srv.logger.Info("Listing created", "listingID", listing.ID, "owner", listing.OwnerID)

	return listing, nil
}

// GetByID retrieves a single listing with its owner summary.
func (srv *listingService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	var listing *entity.Listing

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ListingRepo().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrListingNotFound) {
				return domainerrors.ErrListingNotFound
			}

			return errors.Wrap(err, "failed to find listing")
		}
		listing = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return listing, nil
}

// ListAll retrieves every listing, newest first.
func (srv *listingService) ListAll(ctx context.Context) ([]*entity.Listing, error) {
	var listings []*entity.Listing

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ListingRepo().FindAll(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list listings")
		}
		listings = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return listings, nil
}

// ListByCategory retrieves the listings in one of the known categories.
func (srv *listingService) ListByCategory(ctx context.Context, category string) ([]*entity.Listing, error) {
	cat := entity.Category(category)
	if !cat.IsValid() {
		return nil, errUnknownCategory(category)
	}

	var listings []*entity.Listing

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ListingRepo().FindByCategory(ctx, cat)
		if err != nil {
			return errors.Wrap(err, "failed to list listings by category")
		}
		listings = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return listings, nil
}

// ListByContactEmail retrieves the listings published under a contact email.
// An email with no listings yields an empty result, not an error.
func (srv *listingService) ListByContactEmail(ctx context.Context, email string) ([]*entity.Listing, error) {
	var listings []*entity.Listing

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ListingRepo().FindByContactEmail(ctx, email)
		if err != nil {
			return errors.Wrap(err, "failed to list listings by contact email")
		}
		listings = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return listings, nil
}

// Delete removes a listing on behalf of its owner. The row is removed first;
// image files are cleaned up afterwards on a best-effort basis.
func (srv *listingService) Delete(ctx context.Context, input usecase.DeleteListingInput) error {
	var images []string

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		listingRepo := repoFactory.ListingRepo()

		listing, err := listingRepo.FindByID(ctx, input.ListingID)
		if err != nil {
			if errors.Is(err, repository.ErrListingNotFound) {
				return domainerrors.ErrListingNotFound
			}

			return errors.Wrap(err, "failed to find listing")
		}

		if !listing.OwnedBy(input.ActorID) {
			return domainerrors.ErrForbidden
		}

		if err := listingRepo.Delete(ctx, input.ListingID); err != nil {
			return errors.Wrap(err, "failed to delete listing")
		}
		images = listing.Images

		return nil
	})
	if err != nil {
		return err
	}

	if removeErr := srv.media.Remove(ctx, images); removeErr != nil {
		srv.logger.Warn("Failed to remove listing images", "listingID", input.ListingID, "error", removeErr)
	}

	srv.logger.Info("Listing deleted", "listingID", input.ListingID, "actor", input.ActorID)

	return nil
}

// ShareQR renders a QR code pointing at the listing's public page.
func (srv *listingService) ShareQR(ctx context.Context, id uuid.UUID) ([]byte, error) {
	if _, err := srv.GetByID(ctx, id); err != nil {
		return nil, err
	}

	png, err := srv.qr.GenerateListingQR(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate QR code")
	}

	return png, nil
}

func errUnknownCategory(category string) error {
	names := make([]string, 0, len(entity.Categories()))
	for _, c := range entity.Categories() {
		names = append(names, c.String())
	}

	return domainerrors.ErrValidationFailed.WithDetails(
		"unknown category " + category + ", must be one of " + strings.Join(names, ", "))
}

func validateListingInput(input usecase.CreateListingInput) error {
	switch {
	case input.Price < 0:
		return domainerrors.ErrValidationFailed.WithDetails("price must not be negative")
	case !entity.Category(input.Category).IsValid():
		return errUnknownCategory(input.Category)
	case strings.TrimSpace(input.Description) == "":
		return domainerrors.ErrValidationFailed.WithDetails("description is required")
	case strings.TrimSpace(input.Location) == "":
		return domainerrors.ErrValidationFailed.WithDetails("location is required")
	case strings.TrimSpace(input.Contact) == "":
		return domainerrors.ErrValidationFailed.WithDetails("contact is required")
	case strings.TrimSpace(input.ContactEmail) == "":
		return domainerrors.ErrValidationFailed.WithDetails("email is required")
	}

	return nil
}
