package handler

import (
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"rentease/internal/delivery/http/middleware"
	"rentease/internal/delivery/http/response"
	domainerrors "rentease/internal/domain/errors"
	"rentease/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// imagesFormField is the multipart field name carrying the uploaded files.
const imagesFormField = "images"

// ListingHandler holds dependencies for listing-related handlers.
type ListingHandler struct {
	uc     usecase.ListingUsecase
	logger *slog.Logger
}

// NewListingHandler is the constructor for ListingHandler, injected by Fx.
func NewListingHandler(uc usecase.ListingUsecase, logger *slog.Logger) *ListingHandler {
	return &ListingHandler{
		uc:     uc,
		logger: logger,
	}
}

// Create handles the multipart listing submission.
func (h *ListingHandler) Create(c echo.Context) error {
	actorID, ok := c.Get(middleware.KeyUserID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing identity in request context")
	}

	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("price must be a number")
	}

	listing, err := h.uc.Create(c.Request().Context(), usecase.CreateListingInput{
		OwnerID:      actorID,
		Price:        price,
		Category:     c.FormValue("category"),
		Description:  c.FormValue("description"),
		Location:     c.FormValue("location"),
		Contact:      c.FormValue("contact"),
		ContactEmail: c.FormValue("email"),
		Images:       imageHeaders(c),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, listing, "Post created successfully")
}

// ListAll returns every listing.
func (h *ListingHandler) ListAll(c echo.Context) error {
	listings, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, listings, "")
}

// ListByCategory returns the listings of one category.
func (h *ListingHandler) ListByCategory(c echo.Context) error {
	listings, err := h.uc.ListByCategory(c.Request().Context(), c.Param("category"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, listings, "")
}

// ListByEmail returns the listings advertised under a contact email.
func (h *ListingHandler) ListByEmail(c echo.Context) error {
	listings, err := h.uc.ListByContactEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, listings, "")
}

// GetByID returns a single listing.
func (h *ListingHandler) GetByID(c echo.Context) error {
	id, err := parseListingID(c)
	if err != nil {
		return err
	}

	listing, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, listing, "")
}

// ShareQR returns a PNG QR code linking to the listing's public page.
func (h *ListingHandler) ShareQR(c echo.Context) error {
	id, err := parseListingID(c)
	if err != nil {
		return err
	}

	png, err := h.uc.ShareQR(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// Delete removes a listing owned by the caller.
func (h *ListingHandler) Delete(c echo.Context) error {
	actorID, ok := c.Get(middleware.KeyUserID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing identity in request context")
	}

	id, err := parseListingID(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), usecase.DeleteListingInput{
		ListingID: id,
		ActorID:   actorID,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Post deleted successfully")
}

func parseListingID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("invalid listing id")
	}

	return id, nil
}

func imageHeaders(c echo.Context) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}

	return form.File[imagesFormField]
}
