package anthropicclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ledgerpilot/go-gl-recon/internal/common/httpclient"
	"github.com/ledgerpilot/go-gl-recon/internal/common/metrics"
	"github.com/ledgerpilot/go-gl-recon/internal/config"
	"github.com/ledgerpilot/go-gl-recon/internal/monitoring"

	"github.com/go-resty/resty/v2"
)

var logMessage = "[ANTHROPIC-CLIENT]"

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"
	maxTokens      = 2048
)

// Client is the stateless messages-API client the skill fan-out invokes.
type Client interface {
	Configured() bool
	CreateMessage(ctx context.Context, system, user string) (string, error)
}

type client struct {
	baseURL string
	apiKey  string
	model   string
	wrapper *httpclient.RequestWrapper
}

func New(cfg config.AnthropicConfig, m metrics.Metrics) Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	restyClient := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("x-api-key", cfg.APIKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("Content-Type", "application/json")

	return &client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		wrapper: httpclient.NewRequestWrapper(restyClient, m, "anthropic", logMessage),
	}
}

func (c *client) Configured() bool {
	return c.apiKey != ""
}

type messageRequest struct {
	Model     string           `json:"model"`
	MaxTokens int              `json:"max_tokens"`
	System    string           `json:"system,omitempty"`
	Messages  []requestMessage `json:"messages"`
}

type requestMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *client) CreateMessage(ctx context.Context, system, user string) (out string, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	body := messageRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		System:    system,
		Messages: []requestMessage{
			{Role: "user", Content: user},
		},
	}

	res, err := c.wrapper.DoRequest(ctx, "POST", c.baseURL+"/v1/messages", func(r *resty.Request) *resty.Request {
		return r.SetBody(body)
	})
	if err != nil {
		return "", err
	}

	var decoded messageResponse
	if err = json.Unmarshal(res.Body(), &decoded); err != nil {
		return "", fmt.Errorf("decode anthropic response: %w", err)
	}

	if res.StatusCode() < 200 || res.StatusCode() >= 300 {
		if decoded.Error != nil {
			return "", fmt.Errorf("anthropic api error (%d): %s", res.StatusCode(), decoded.Error.Message)
		}
		return "", fmt.Errorf("anthropic api error (%d)", res.StatusCode())
	}

	for _, block := range decoded.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("anthropic response carried no text block")
}
