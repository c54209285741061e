package health

import (
	nethttp "net/http"

	commonhttp "github.com/ledgerpilot/go-gl-recon/internal/common/http"

	"github.com/labstack/echo/v4"
)

type healthHandler struct{}

// New health handler will initialize the health/ resources endpoint
func New(app *echo.Group) {
	hh := healthHandler{}
	health := app.Group("/health")
	health.GET("", hh.healthCheck())
}

type DoHealthCheckLivenessResponse struct {
	Kind   string `json:"kind"`
	Status string `json:"status"`
}

func (hh healthHandler) healthCheck() echo.HandlerFunc {
	return func(c echo.Context) error {
		return commonhttp.RestSuccessResponse(c, nethttp.StatusOK, DoHealthCheckLivenessResponse{
			Kind:   "health",
			Status: "server is up and running",
		})
	}
}
