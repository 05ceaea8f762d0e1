package handler

import (
	"log/slog"
	"net/http"

	"rentease/internal/delivery/http/response"
	domainerrors "rentease/internal/domain/errors"
	"rentease/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminHandler holds dependencies for the moderation handlers.
type AdminHandler struct {
	uc     usecase.AdminUsecase
	logger *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(uc usecase.AdminUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		uc:     uc,
		logger: logger,
	}
}

// userOverviewPayload is one row of the admin user listing.
type userOverviewPayload struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"userName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	PostCount int64     `json:"postCount"`
}

// ListUsers returns every account with its listing count.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	overviews, err := h.uc.ListUsers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	payload := make([]userOverviewPayload, 0, len(overviews))
	for _, overview := range overviews {
		payload = append(payload, userOverviewPayload{
			ID:        overview.User.ID,
			Name:      overview.User.Name,
			Email:     overview.User.Email,
			Phone:     overview.User.Phone,
			PostCount: overview.PostCount,
		})
	}

	return response.Success(c, http.StatusOK, payload, "")
}

// DeleteUser removes an account together with its listings and images.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid user id")
	}

	if err := h.uc.DeleteUser(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "User deleted successfully")
}
