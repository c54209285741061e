package config

import (
	"errors"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "GO_GL_RECON"

// Load reads config.yaml from the usual search paths and overlays
// GO_GL_RECON_* environment variables. Provider credentials are expected to
// arrive through the environment; a missing config file is not an error.
func Load() (Config, error) {
	var cfg Config

	// local development convenience, ignored when no .env exists
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/config")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindEnvKeys(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg, withJSONTags()); err != nil {
		return cfg, err
	}

	cfg.ApplyDefaults()
	return cfg, nil
}

// bindEnvKeys forces AutomaticEnv to see nested keys that never appear in the
// config file, credentials above all.
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"app.env",
		"app.http_port",
		"app.log_level",
		"new_relic_license_key",
		"recon_engine.materiality_threshold",
		"providers.openai.api_key",
		"providers.openai.model",
		"providers.anthropic.api_key",
		"providers.anthropic.model",
		"providers.gemini.api_key",
		"providers.gemini.model",
	} {
		_ = v.BindEnv(key)
	}
}

func withJSONTags() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "json"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}
