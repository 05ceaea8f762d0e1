// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"rentease/internal/delivery/http/middleware"
	"rentease/internal/delivery/http/response"
	"rentease/internal/domain/entity"
	"rentease/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for account-related handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

type signupRequest struct {
	Name     string `json:"userName" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// loginUserPayload is the identity snapshot returned next to the token.
type loginUserPayload struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone"`
}

type loginResponse struct {
	Token string           `json:"token"`
	Email string           `json:"email"`
	User  loginUserPayload `json:"user"`
}

// profilePayload is what GET /users/me exposes about the caller.
type profilePayload struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Phone string    `json:"phone"`
}

// Signup handles the account registration request.
func (h *UserHandler) Signup(c echo.Context) error {
	var input signupRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}

	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", err.Error())
	}

	output, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Name:     input.Name,
		Phone:    input.Phone,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output.User, "User registered successfully")
}

// Login handles the login request.
func (h *UserHandler) Login(c echo.Context) error {
	var input loginRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", err.Error())
	}

	output, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, loginResponse{
		Token: output.Token,
		Email: output.Email,
		User: loginUserPayload{
			ID:    output.User.ID,
			Name:  output.User.Name,
			Phone: output.User.Phone,
		},
	}, "Login successful")
}

// Me returns the profile of the authenticated account.
func (h *UserHandler) Me(c echo.Context) error {
	identity, ok := c.Get(middleware.KeyIdentity).(*entity.Identity)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing identity in request context")
	}

	user, err := h.uc.GetProfile(c.Request().Context(), identity.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profilePayload{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Phone: user.Phone,
	}, "Profile retrieved successfully")
}
