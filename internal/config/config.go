package config

import (
	"time"
)

type (
	Config struct {
		App                App    `json:"app"`
		NewRelicLicenseKey string `json:"new_relic_license_key"`

		ReconEngine        ReconEngineConfig        `json:"recon_engine"`
		Providers          ProvidersConfig          `json:"providers"`
		ExponentialBackoff ExponentialBackOffConfig `json:"exponential_backoff"`
	}

	App struct {
		Env             string        `json:"env"`
		HTTPPort        int           `json:"http_port"`
		HTTPTimeout     time.Duration `json:"http_timeout"`
		GracefulTimeout time.Duration `json:"graceful_timeout"`
		Name            string        `json:"name"`
		LogLevel        string        `json:"log_level"`
	}

	ReconEngineConfig struct {
		// MaterialityThreshold is the absolute variance at or above which a
		// discrepancy is flagged material. Defaults to 50.
		MaterialityThreshold float64 `json:"materiality_threshold"`

		// SyntheticAccount labels roll-forward output when the input carries no
		// account at all.
		SyntheticAccount string `json:"synthetic_account"`
	}

	ProvidersConfig struct {
		OpenAI    OpenAIConfig    `json:"openai"`
		Anthropic AnthropicConfig `json:"anthropic"`
		Gemini    GeminiConfig    `json:"gemini"`
	}

	OpenAIConfig struct {
		APIKey        string        `json:"api_key"`
		Model         string        `json:"model"`
		BaseURL       string        `json:"base_url"`
		AssistantName string        `json:"assistant_name"`
		Timeout       time.Duration `json:"timeout"`

		// PollDeadline bounds the whole run-status polling loop. Never unbounded.
		PollDeadline time.Duration `json:"poll_deadline"`
	}

	AnthropicConfig struct {
		APIKey  string        `json:"api_key"`
		Model   string        `json:"model"`
		BaseURL string        `json:"base_url"`
		Timeout time.Duration `json:"timeout"`

		// SkillConcurrency bounds the skill fan-out worker pool.
		SkillConcurrency int `json:"skill_concurrency"`
	}

	GeminiConfig struct {
		APIKey string `json:"api_key"`
		Model  string `json:"model"`
	}

	ExponentialBackOffConfig struct {
		MaxRetries        uint64        `json:"max_retries"`
		MaxBackoffTime    time.Duration `json:"max_backoff_time"`
		BackoffMultiplier float64       `json:"backoff_multiplier"`
	}
)

const (
	DefaultMaterialityThreshold = 50
	DefaultSyntheticAccount     = "general"
	DefaultSkillConcurrency     = 3
	DefaultPollDeadline         = 2 * time.Minute
)

// ApplyDefaults fills the zero values a partial config file leaves behind.
func (c *Config) ApplyDefaults() {
	if c.ReconEngine.MaterialityThreshold <= 0 {
		c.ReconEngine.MaterialityThreshold = DefaultMaterialityThreshold
	}
	if c.ReconEngine.SyntheticAccount == "" {
		c.ReconEngine.SyntheticAccount = DefaultSyntheticAccount
	}
	if c.Providers.Anthropic.SkillConcurrency <= 0 {
		c.Providers.Anthropic.SkillConcurrency = DefaultSkillConcurrency
	}
	if c.Providers.OpenAI.PollDeadline <= 0 {
		c.Providers.OpenAI.PollDeadline = DefaultPollDeadline
	}
}
