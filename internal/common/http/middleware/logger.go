package middleware

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/ledgerpilot/go-gl-recon/internal/common/log"

	"github.com/labstack/echo/v4"
)

var sensitiveHeaders = map[string]struct{}{
	"authorization": {},
	"cookie":        {},
	"set-cookie":    {},
	"x-api-key":     {},
	"x-secret-key":  {},
	// Add other sensitive headers here
}

func (m *AppMiddleware) parseRequestHeader(c echo.Context) []byte {
	headers := make(map[string][]string)
	for k, vals := range c.Request().Header {
		if _, ok := sensitiveHeaders[strings.ToLower(k)]; ok {
			headers[k] = []string{"*****"}
		} else {
			headers[k] = vals
		}
	}

	b, _ := json.Marshal(headers)
	return b
}

// Logger emits one structured entry per request with latency and status.
func (m *AppMiddleware) Logger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			fields := []log.Field{
				log.String("method", req.Method),
				log.String("path", req.URL.Path),
				log.Int("status", res.Status),
				log.Duration("latency", time.Since(start)),
				log.String("requestHeaders", string(m.parseRequestHeader(c))),
			}

			if err != nil {
				fields = append(fields, log.Err(err))
				log.Warn(req.Context(), "[HTTP]", fields...)
				return nil
			}

			log.Info(req.Context(), "[HTTP]", fields...)
			return nil
		}
	}
}
