package gormdb

import (
	"context"

	"rentease/internal/domain/entity"
	domainerrors "rentease/internal/domain/errors"
	"rentease/internal/domain/repository"
	"rentease/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// listingRepository implements repository.ListingRepository using GORM.
type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository is the constructor for listingRepository.
func NewListingRepository(db *gorm.DB) repository.ListingRepository {
	return &listingRepository{db: db}
}

// Create persists a new listing to the database.
func (repo *listingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	listingM := fromListingDomain(listing)

	if err := repo.db.WithContext(ctx).Create(listingM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create listing")
	}

	listing.ID = listingM.ID
	listing.CreatedAt = listingM.CreatedAt
	listing.UpdatedAt = listingM.UpdatedAt

	return nil
}

// FindByID retrieves a single listing by ID with its owner summary attached.
func (repo *listingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	var listingM model.ListingModel
	err := repo.db.WithContext(ctx).
		Preload("Owner").
		First(&listingM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrListingNotFound
		}

		return nil, errors.Wrap(err, "failed to find listing by id")
	}

	return toListingDomain(&listingM), nil
}

// FindAll retrieves every listing, newest first, with owner summaries attached.
func (repo *listingRepository) FindAll(ctx context.Context) ([]*entity.Listing, error) {
	var listingMs []*model.ListingModel
	err := repo.db.WithContext(ctx).
		Preload("Owner").
		Order("created_at DESC").
		Find(&listingMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list listings")
	}

	return toListingDomainSlice(listingMs), nil
}

// FindByCategory retrieves listings in the given category, newest first.
func (repo *listingRepository) FindByCategory(ctx context.Context, category entity.Category) ([]*entity.Listing, error) {
	var listingMs []*model.ListingModel
	err := repo.db.WithContext(ctx).
		Where("category = ?", category.String()).
		Order("created_at DESC").
		Find(&listingMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list listings by category")
	}

	return toListingDomainSlice(listingMs), nil
}

// FindByContactEmail retrieves listings whose denormalized contact email
// matches, newest first.
func (repo *listingRepository) FindByContactEmail(ctx context.Context, email string) ([]*entity.Listing, error) {
	var listingMs []*model.ListingModel
	err := repo.db.WithContext(ctx).
		Where("contact_email = ?", email).
		Order("created_at DESC").
		Find(&listingMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list listings by contact email")
	}

	return toListingDomainSlice(listingMs), nil
}

// FindByOwner retrieves listings created by the given account, newest first.
func (repo *listingRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Listing, error) {
	var listingMs []*model.ListingModel
	err := repo.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&listingMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list listings by owner")
	}

	return toListingDomainSlice(listingMs), nil
}

// CountByOwner returns the number of listings created by the given account.
func (repo *listingRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.ListingModel{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count listings by owner")
	}

	return count, nil
}

// Delete removes a listing by ID. It returns repository.ErrListingNotFound
// when no row matched.
func (repo *listingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.ListingModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete listing")
	}

	if result.RowsAffected == 0 {
		return repository.ErrListingNotFound
	}

	return nil
}

// DeleteByOwner removes every listing created by the given account and
// returns how many rows were deleted. Deleting zero rows is not an error.
func (repo *listingRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	result := repo.db.WithContext(ctx).Delete(&model.ListingModel{}, "owner_id = ?", ownerID)
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete listings by owner")
	}

	return result.RowsAffected, nil
}

// --- Mapper Functions ---

// toListingDomain converts a GORM ListingModel to a domain Listing entity.
func toListingDomain(data *model.ListingModel) *entity.Listing {
	if data == nil {
		return nil
	}

	listing := &entity.Listing{
		ID:           data.ID,
		OwnerID:      data.OwnerID,
		Images:       data.Images,
		Price:        data.Price,
		Category:     entity.Category(data.Category),
		Description:  data.Description,
		Location:     data.Location,
		Contact:      data.Contact,
		ContactEmail: data.ContactEmail,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}

	if data.Owner != nil {
		listing.Owner = &entity.OwnerSummary{
			Name:  data.Owner.Name,
			Email: data.Owner.Email,
		}
	}

	return listing
}

func toListingDomainSlice(data []*model.ListingModel) []*entity.Listing {
	listings := make([]*entity.Listing, 0, len(data))
	for _, listingM := range data {
		listings = append(listings, toListingDomain(listingM))
	}

	return listings
}

// fromListingDomain converts a domain Listing entity to a GORM ListingModel.
func fromListingDomain(data *entity.Listing) *model.ListingModel {
	if data == nil {
		return nil
	}

	return &model.ListingModel{
		ID:           data.ID,
		OwnerID:      data.OwnerID,
		Images:       data.Images,
		Price:        data.Price,
		Category:     data.Category.String(),
		Description:  data.Description,
		Location:     data.Location,
		Contact:      data.Contact,
		ContactEmail: data.ContactEmail,
	}
}
