package middleware

import (
	"github.com/ledgerpilot/go-gl-recon/internal/common/log"

	"github.com/labstack/echo/v4"
)

// Context propagates the echo request id into the request context as the
// correlation id every log entry carries.
func (m *AppMiddleware) Context() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = c.Response().Header().Get(echo.HeaderXRequestID)
			}

			ctx := log.SetCorrelationID(c.Request().Context(), rid)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
