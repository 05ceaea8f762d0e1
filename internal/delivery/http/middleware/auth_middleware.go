package middleware

import (
	"strings"

	"rentease/internal/domain/entity"
	domainerrors "rentease/internal/domain/errors"
	"rentease/internal/domain/repository"
	"rentease/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Context keys set by Authenticate for downstream handlers.
const (
	KeyUserID   = "userID"
	KeyIdentity = "identity"
	KeyRole     = "role"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	users    repository.UserRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, users: users}
}

// Authenticate validates the bearer token and resolves the account behind it.
// The account lookup doubles as revocation: tokens of deleted accounts stop
// working immediately.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return domainerrors.ErrMissingToken
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return domainerrors.ErrMissingToken.WithDetails("expected a Bearer token")
		}

		claims, err := m.tokenSvc.Validate(tokenString)
		if err != nil {
			return domainerrors.ErrInvalidToken
		}

		user, err := m.users.FindByID(c.Request().Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUnknownSubject
			}

			return errors.Wrap(err, "failed to resolve token subject")
		}

		c.Set(KeyUserID, user.ID)
		c.Set(KeyRole, user.Role.String())
		c.Set(KeyIdentity, &entity.Identity{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		})

		return next(c)
	}
}

// RequireRole is a middleware factory that checks the authenticated account's
// role. It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(KeyRole).(string)
			if !ok || role != requiredRole {
				return domainerrors.ErrAdminRequired
			}

			return next(c)
		}
	}
}
