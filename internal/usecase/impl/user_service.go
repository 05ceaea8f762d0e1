// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"rentease/config"
	"rentease/internal/domain/entity"
	domainerrors "rentease/internal/domain/errors"
	"rentease/internal/domain/repository"
	"rentease/internal/domain/service"
	"rentease/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager   repository.TransactionManager
	hasher      service.PasswordHasher
	tokens      service.TokenService
	adminEmails map[string]struct{}
	logger      *slog.Logger
}

// NewUserService is the constructor for userService. Accounts whose email
// appears in auth.adminEmails are granted the admin role at signup.
func NewUserService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	tokens service.TokenService,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.UserUsecase {
	adminEmails := make(map[string]struct{})
	if cfg != nil && cfg.Auth != nil {
		for _, email := range cfg.Auth.AdminEmails {
			adminEmails[strings.ToLower(strings.TrimSpace(email))] = struct{}{}
		}
	}

	return &userService{
		txManager:   txManager,
		hasher:      hasher,
		tokens:      tokens,
		adminEmails: adminEmails,
		logger:      logger,
	}
}

// Register creates a new account with a hashed password.
func (srv *userService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.logger.Info("Registering user", "email", input.Email)

	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	user := &entity.User{
		Name:         input.Name,
		Phone:        input.Phone,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         srv.roleFor(input.Email),
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.UserRepo().Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	return &usecase.RegisterOutput{User: user}, nil
}

// Login verifies the credentials and issues a signed token.
func (srv *userService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		foundUser, err := repoFactory.UserRepo().FindByEmail(ctx, input.Email)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrLoginUserNotFound
			}

			return errors.Wrap(err, "failed to find user by email")
		}
		user = foundUser

		return nil
	})
	if err != nil {
		return nil, err
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := srv.tokens.Generate(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}

	srv.logger.Info("User logged in", "userID", user.ID)

	return &usecase.LoginOutput{
		Token: token,
		Email: user.Email,
		User:  user,
	}, nil
}

// GetProfile retrieves the account behind an authenticated request.
func (srv *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		foundUser, err := repoFactory.UserRepo().FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to find user")
		}
		user = foundUser

		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func validateRegisterInput(input usecase.RegisterInput) error {
	switch {
	case strings.TrimSpace(input.Name) == "":
		return domainerrors.ErrValidationFailed.WithDetails("name is required")
	case strings.TrimSpace(input.Phone) == "":
		return domainerrors.ErrValidationFailed.WithDetails("phone is required")
	case strings.TrimSpace(input.Email) == "":
		return domainerrors.ErrValidationFailed.WithDetails("email is required")
	case input.Password == "":
		return domainerrors.ErrValidationFailed.WithDetails("password is required")
	}

	return nil
}

func (srv *userService) roleFor(email string) entity.Role {
	if _, ok := srv.adminEmails[strings.ToLower(strings.TrimSpace(email))]; ok {
		return entity.RoleAdmin
	}

	return entity.RoleUser
}
