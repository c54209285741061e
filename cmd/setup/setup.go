package setup

import (
	"context"

	"github.com/ledgerpilot/go-gl-recon/internal/common/anthropicclient"
	"github.com/ledgerpilot/go-gl-recon/internal/common/geminiclient"
	"github.com/ledgerpilot/go-gl-recon/internal/common/graceful"
	"github.com/ledgerpilot/go-gl-recon/internal/common/log"
	cMetrics "github.com/ledgerpilot/go-gl-recon/internal/common/metrics"
	"github.com/ledgerpilot/go-gl-recon/internal/common/openaiclient"
	"github.com/ledgerpilot/go-gl-recon/internal/common/retry"
	"github.com/ledgerpilot/go-gl-recon/internal/config"
	"github.com/ledgerpilot/go-gl-recon/internal/engine"
	"github.com/ledgerpilot/go-gl-recon/internal/services"

	"github.com/newrelic/go-agent/v3/integrations/nrzap"
	"github.com/newrelic/go-agent/v3/newrelic"
	"golang.org/x/exp/slices"
)

type Setup struct {
	Config   config.Config
	NewRelic *newrelic.Application
	Service  *services.Services
	Metrics  cMetrics.Metrics
}

func Init(command string) (setup *Setup, stopper []graceful.ProcessStopper, err error) {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return
	}
	cfg.ApplyDefaults()

	setup = &Setup{
		Config: cfg,
	}

	logLevel := "debug"
	excludedDebugLevelOnEnvs := []config.Environment{
		config.DEV_ENV,
		config.UAT_ENV,
		config.PROD_ENV,
	}
	env := config.StringToEnvironment(cfg.App.Env)
	if slices.Contains(excludedDebugLevelOnEnvs, env) {
		logLevel = "info"
	}
	if cfg.App.LogLevel != "" {
		logLevel = cfg.App.LogLevel
	}

	log.Init(cfg.App.Name,
		log.WithLevel(logLevel),
		log.WithDevelopment(env == config.LOCAL_ENV),
		log.AddCallerSkip(1))

	stopper = append(stopper, func(ctx context.Context) error {
		log.Sync()
		return nil
	})

	newRelic := setupNR(ctx, cfg)

	mtc := cMetrics.New()

	reconEngine := engine.New(cfg.ReconEngine)
	openaiClient := openaiclient.New(cfg.Providers.OpenAI, mtc)
	anthropicClient := anthropicclient.New(cfg.Providers.Anthropic, mtc)
	geminiClient := geminiclient.New(cfg.Providers.Gemini)
	retryer := retry.NewExponentialBackOff(&cfg.ExponentialBackoff)

	setup.NewRelic = newRelic
	setup.Metrics = mtc
	setup.Service = services.New(cfg, reconEngine, openaiClient, anthropicClient, geminiClient, retryer, mtc)

	log.Info(ctx, "setup finished", log.String("command", command), log.String("env", cfg.App.Env))

	return setup, stopper, nil
}

func setupNR(ctx context.Context, cfg config.Config) *newrelic.Application {
	if env := config.StringToEnvironment(cfg.App.Env); env == config.PROD_ENV {
		app, err := newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.App.Name),
			newrelic.ConfigLicense(cfg.NewRelicLicenseKey),
			func(config *newrelic.Config) {
				config.Logger = nrzap.Transform(log.Logger())
			},
			newrelic.ConfigDistributedTracerEnabled(true),
		)
		if err != nil {
			log.Warn(ctx, "failed to setup new relic", log.Err(err))
			return nil
		}

		return app
	}

	return nil
}
