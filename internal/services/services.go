package services

import (
	"github.com/ledgerpilot/go-gl-recon/internal/common/anthropicclient"
	"github.com/ledgerpilot/go-gl-recon/internal/common/geminiclient"
	"github.com/ledgerpilot/go-gl-recon/internal/common/metrics"
	"github.com/ledgerpilot/go-gl-recon/internal/common/openaiclient"
	"github.com/ledgerpilot/go-gl-recon/internal/common/retry"
	"github.com/ledgerpilot/go-gl-recon/internal/config"
	"github.com/ledgerpilot/go-gl-recon/internal/engine"
)

type service struct {
	srv *Services
}

type Services struct {
	conf config.Config

	reconEngine     *engine.Engine
	openaiClient    openaiclient.Client
	anthropicClient anthropicclient.Client
	geminiClient    geminiclient.Client
	retryer         retry.Retryer
	metrics         metrics.Metrics

	common service

	AgentRun *agentRun
}

func New(
	conf config.Config,
	reconEngine *engine.Engine,
	openaiClient openaiclient.Client,
	anthropicClient anthropicclient.Client,
	geminiClient geminiclient.Client,
	retryer retry.Retryer,
	metrics metrics.Metrics,
) *Services {
	srv := &Services{
		conf:            conf,
		reconEngine:     reconEngine,
		openaiClient:    openaiClient,
		anthropicClient: anthropicClient,
		geminiClient:    geminiClient,
		retryer:         retryer,
		metrics:         metrics,
	}
	srv.common.srv = srv
	srv.AgentRun = (*agentRun)(&srv.common)

	return srv
}
