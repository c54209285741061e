package agent_runs

import (
	nethttp "net/http"

	commonhttp "github.com/ledgerpilot/go-gl-recon/internal/common/http"
	"github.com/ledgerpilot/go-gl-recon/internal/common/validation"
	"github.com/ledgerpilot/go-gl-recon/internal/models"
	"github.com/ledgerpilot/go-gl-recon/internal/services"

	"github.com/labstack/echo/v4"
)

type agentRunHandler struct {
	agentRunService services.AgentRunService
}

// New agent run handler will initialize the agent/runs resources endpoint
func New(app *echo.Group, agentRunSrv services.AgentRunService) {
	h := agentRunHandler{
		agentRunService: agentRunSrv,
	}
	runs := app.Group("/agent/runs")
	runs.POST("", h.createAgentRun())
}

func (h agentRunHandler) createAgentRun() echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.DoCreateAgentRunRequest

		if err := c.Bind(&req); err != nil {
			return commonhttp.RestErrorResponse(c, nethttp.StatusBadRequest, err)
		}

		if err := validation.ValidateStruct(req); err != nil {
			return commonhttp.RestErrorValidationResponse(c, err)
		}

		run, err := h.agentRunService.DoCreateAgentRun(c.Request().Context(), req)
		if err != nil {
			return commonhttp.RestErrorResponse(c, nethttp.StatusInternalServerError, err)
		}

		return commonhttp.RestSuccessResponse(c, nethttp.StatusOK, run)
	}
}
