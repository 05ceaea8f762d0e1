package middleware

import (
	"log/slog"

	deliveryctx "rentease/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestIDMiddleware assigns every request an id and a request-scoped
// logger carrying it.
type RequestIDMiddleware struct {
	logger *slog.Logger
}

// NewRequestIDMiddleware creates a new request-id middleware
func NewRequestIDMiddleware(logger *slog.Logger) *RequestIDMiddleware {
	return &RequestIDMiddleware{logger: logger}
}

// Handle honors an incoming X-Request-Id header, otherwise generates one,
// and echoes it back on the response.
func (m *RequestIDMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(deliveryctx.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		deliveryctx.SetRequestID(c, requestID)
		c.Response().Header().Set(deliveryctx.HeaderXRequestID, requestID)

		reqLogger := m.logger.With(slog.String("requestID", requestID))
		ctx := deliveryctx.WithRequestID(c.Request().Context(), requestID)
		ctx = deliveryctx.WithLogger(ctx, reqLogger)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
