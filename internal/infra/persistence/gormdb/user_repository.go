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

// userRepository implements repository.UserRepository using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface,
// adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).First(&userM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).First(&userM, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user entity to the database.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailAlreadyRegistered
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Reflect the generated ID and timestamps back onto the entity.
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// ListAll retrieves every registered user, newest first.
func (repo *userRepository) ListAll(ctx context.Context) ([]*entity.User, error) {
	var userMs []*model.UserModel
	if err := repo.db.WithContext(ctx).Order("created_at DESC").Find(&userMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	users := make([]*entity.User, 0, len(userMs))
	for _, userM := range userMs {
		users = append(users, toUserDomain(userM))
	}

	return users, nil
}

// Delete removes a user by ID. It returns repository.ErrUserNotFound when
// no row matched.
func (repo *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.UserModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete user")
	}

	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:           data.ID,
		Name:         data.Name,
		Phone:        data.Phone,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Role:         entity.Role(data.Role),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:           data.ID,
		Name:         data.Name,
		Phone:        data.Phone,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Role:         data.Role.String(),
	}
}
