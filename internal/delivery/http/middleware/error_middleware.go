package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	deliveryctx "rentease/internal/delivery/context"
	"rentease/internal/delivery/http/response"
	domainerrors "rentease/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		_ = response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := fmt.Sprintf("%v", httpErr.Message)
		_ = response.Error(c, httpErr.Code, "HTTP_ERROR", message, message)

		return
	}

	logger := deliveryctx.GetLoggerOrDefault(c.Request().Context(), m.logger)
	logger.Error("Unhandled error",
		"error", err.Error(),
		"requestID", deliveryctx.GetRequestID(c),
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
	)

	_ = response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", "")
}
