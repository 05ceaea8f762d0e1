package impl

import (
	"context"
	"log/slog"

	"rentease/internal/domain/repository"
	"rentease/internal/domain/service"
	"rentease/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// adminService implements the AdminUsecase interface.
type adminService struct {
	txManager repository.TransactionManager
	media     service.MediaStore
	logger    *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(
	txManager repository.TransactionManager,
	media service.MediaStore,
	logger *slog.Logger,
) usecase.AdminUsecase {
	return &adminService{
		txManager: txManager,
		media:     media,
		logger:    logger,
	}
}

// ListUsers retrieves every account together with its listing count.
func (srv *adminService) ListUsers(ctx context.Context) ([]*usecase.UserOverview, error) {
	var overviews []*usecase.UserOverview

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		listingRepo := repoFactory.ListingRepo()

		users, err := userRepo.ListAll(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list users")
		}

		overviews = make([]*usecase.UserOverview, 0, len(users))
		for _, user := range users {
			count, err := listingRepo.CountByOwner(ctx, user.ID)
			if err != nil {
				return errors.Wrap(err, "failed to count listings")
			}

			overviews = append(overviews, &usecase.UserOverview{
				User:      user,
				PostCount: count,
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return overviews, nil
}

// DeleteUser removes the account and all of its listings in one transaction.
// Deleting an unknown id is a no-op. Image files are cleaned up afterwards on
// a best-effort basis so a failed file removal never leaves the database
// half-deleted.
func (srv *adminService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	var images []string

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		listingRepo := repoFactory.ListingRepo()

		listings, err := listingRepo.FindByOwner(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to list user listings")
		}
		for _, listing := range listings {
			images = append(images, listing.Images...)
		}

		if _, err := listingRepo.DeleteByOwner(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to delete user listings")
		}

		if err := userRepo.Delete(ctx, userID); err != nil && !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to delete user")
		}

		return nil
	})
	if err != nil {
		return err
	}

	if removeErr := srv.media.Remove(ctx, images); removeErr != nil {
		srv.logger.Warn("Failed to remove images of deleted user", "userID", userID, "error", removeErr)
	}

	srv.logger.Info("User deleted", "userID", userID, "listingsRemoved", len(images))

	return nil
}
