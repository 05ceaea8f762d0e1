package impl

import (
	"context"
	"testing"

	"rentease/config"
	"rentease/internal/domain/entity"
	domainerrors "rentease/internal/domain/errors"
	"rentease/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(store *memStore, adminEmails ...string) usecase.UserUsecase {
	cfg := &config.Config{
		Auth: &config.AuthConfig{AdminEmails: adminEmails},
	}

	return NewUserService(
		&fakeTxManager{store: store},
		&fakeHasher{},
		fakeTokenService{},
		cfg,
		discardLogger(),
	)
}

func TestUserService_Register(t *testing.T) {
	store := newMemStore()
	svc := newUserService(store)

	out, err := svc.Register(context.Background(), usecase.RegisterInput{
		Name:     "Alice",
		Phone:    "0912345678",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotNil(t, out.User)
	assert.NotEqual(t, uuid.Nil, out.User.ID)
	assert.Equal(t, "hashed:secret123", out.User.PasswordHash)
	assert.Equal(t, entity.RoleUser, out.User.Role)
}

func TestUserService_RegisterAdminEmail(t *testing.T) {
	store := newMemStore()
	svc := newUserService(store, "Admin@Example.com")

	out, err := svc.Register(context.Background(), usecase.RegisterInput{
		Name:     "Admin",
		Phone:    "0911111111",
		Email:    "admin@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	store := newMemStore()
	svc := newUserService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, usecase.RegisterInput{
		Name: "Alice", Phone: "0912345678", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, usecase.RegisterInput{
		Name: "Impostor", Phone: "0922222222", Email: "alice@example.com", Password: "other456",
	})
	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyRegistered)
}

func TestUserService_Login(t *testing.T) {
	store := newMemStore()
	svc := newUserService(store)
	ctx := context.Background()

	reg, err := svc.Register(ctx, usecase.RegisterInput{
		Name: "Alice", Phone: "0912345678", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	out, err := svc.Login(ctx, usecase.LoginInput{Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "token:"+reg.User.ID.String(), out.Token)
	assert.Equal(t, "alice@example.com", out.Email)
	require.NotNil(t, out.User)
	assert.Equal(t, "Alice", out.User.Name)
	assert.Equal(t, "0912345678", out.User.Phone)
}

func TestUserService_LoginUnknownEmail(t *testing.T) {
	svc := newUserService(newMemStore())

	_, err := svc.Login(context.Background(), usecase.LoginInput{
		Email: "nobody@example.com", Password: "whatever",
	})
	assert.ErrorIs(t, err, domainerrors.ErrLoginUserNotFound)
}

func TestUserService_LoginWrongPassword(t *testing.T) {
	store := newMemStore()
	svc := newUserService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, usecase.RegisterInput{
		Name: "Alice", Phone: "0912345678", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, usecase.LoginInput{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_GetProfile(t *testing.T) {
	store := newMemStore()
	svc := newUserService(store)
	ctx := context.Background()

	reg, err := svc.Register(ctx, usecase.RegisterInput{
		Name: "Alice", Phone: "0912345678", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	user, err := svc.GetProfile(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)

	_, err = svc.GetProfile(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_RegisterValidation(t *testing.T) {
	svc := newUserService(newMemStore())
	ctx := context.Background()

	cases := []struct {
		name  string
		input usecase.RegisterInput
	}{
		{"missing name", usecase.RegisterInput{Phone: "0912345678", Email: "a@example.com", Password: "secret123"}},
		{"missing phone", usecase.RegisterInput{Name: "Alice", Email: "a@example.com", Password: "secret123"}},
		{"missing email", usecase.RegisterInput{Name: "Alice", Phone: "0912345678", Password: "secret123"}},
		{"missing password", usecase.RegisterInput{Name: "Alice", Phone: "0912345678", Email: "a@example.com"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.input)
			require.Error(t, err)

			var appErr domainerrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), appErr.ErrorCode())
		})
	}
}
