package middleware

import (
	"log/slog"

	deliverycontext "mechalung/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// RequestScope attaches a request ID and a request-scoped logger to the
// request context so every layer below logs with the same correlation ID.
type RequestScope struct {
	logger *slog.Logger
}

// NewRequestScope creates the request-scoping middleware.
func NewRequestScope(logger *slog.Logger) *RequestScope {
	return &RequestScope{logger: logger}
}

// Handle assigns or propagates the request ID and injects the scoped logger.
func (m *RequestScope) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(deliverycontext.HeaderXRequestID)
		if requestID == "" {
			requestID = deliverycontext.GetRequestID(c)
		}
		deliverycontext.SetRequestID(c, requestID)
		c.Response().Header().Set(deliverycontext.HeaderXRequestID, requestID)

		scoped := m.logger.With(slog.String("requestID", requestID))
		ctx := deliverycontext.WithRequestID(c.Request().Context(), requestID)
		ctx = deliverycontext.WithLogger(ctx, scoped)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
