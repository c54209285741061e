package openaiclient

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

var logMessage = "[OPENAI-CLIENT]"

const defaultBaseURL = "https://api.openai.com/v1"

// Client speaks the assistants tool-calling protocol: threads carry the
// conversation, runs execute it, and requires_action hands control back to the
// caller until tool outputs are submitted.
type Client interface {
	Configured() bool
	Model() string
	CreateAssistant(ctx context.Context, name, instructions string, tools []ToolDefinition) (Assistant, error)
	CreateThread(ctx context.Context) (Thread, error)
	AddMessage(ctx context.Context, threadID, role, content string) error
	CreateRun(ctx context.Context, threadID, assistantID string) (Run, error)
	GetRun(ctx context.Context, threadID, runID string) (Run, error)
	SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []ToolOutput) (Run, error)
	LatestAssistantMessage(ctx context.Context, threadID string) (Message, error)
}

type client struct {
	baseURL string
	apiKey  string
	model   string
	wrapper *httpclient.RequestWrapper
}

func New(cfg config.OpenAIConfig, m metrics.Metrics) Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	restyClient := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Authorization", "Bearer "+cfg.APIKey).
		SetHeader("OpenAI-Beta", "assistants=v2").
		SetHeader("Content-Type", "application/json")

	return &client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		wrapper: httpclient.NewRequestWrapper(restyClient, m, "openai", logMessage),
	}
}

func (c *client) Configured() bool {
	return c.apiKey != ""
}

func (c *client) Model() string {
	return c.model
}

func (c *client) CreateAssistant(ctx context.Context, name, instructions string, tools []ToolDefinition) (out Assistant, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	body := createAssistantRequest{
		Name:         name,
		Model:        c.model,
		Instructions: instructions,
		Tools:        tools,
	}

	err = c.do(ctx, "POST", c.baseURL+"/assistants", body, &out)
	return out, err
}

func (c *client) CreateThread(ctx context.Context) (out Thread, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	err = c.do(ctx, "POST", c.baseURL+"/threads", struct{}{}, &out)
	return out, err
}

func (c *client) AddMessage(ctx context.Context, threadID, role, content string) (err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	url := fmt.Sprintf("%s/threads/%s/messages", c.baseURL, threadID)
	return c.do(ctx, "POST", url, createMessageRequest{Role: role, Content: content}, nil)
}

func (c *client) CreateRun(ctx context.Context, threadID, assistantID string) (out Run, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	url := fmt.Sprintf("%s/threads/%s/runs", c.baseURL, threadID)
	err = c.do(ctx, "POST", url, createRunRequest{AssistantID: assistantID}, &out)
	return out, err
}

func (c *client) GetRun(ctx context.Context, threadID, runID string) (out Run, err error) {
	url := fmt.Sprintf("%s/threads/%s/runs/%s", c.baseURL, threadID, runID)
	err = c.do(ctx, "GET", url, nil, &out)
	return out, err
}

func (c *client) SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []ToolOutput) (out Run, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	url := fmt.Sprintf("%s/threads/%s/runs/%s/submit_tool_outputs", c.baseURL, threadID, runID)
	err = c.do(ctx, "POST", url, submitToolOutputsRequest{ToolOutputs: outputs}, &out)
	return out, err
}

func (c *client) LatestAssistantMessage(ctx context.Context, threadID string) (out Message, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	url := fmt.Sprintf("%s/threads/%s/messages?order=desc&limit=10", c.baseURL, threadID)

	var list messageList
	if err = c.do(ctx, "GET", url, nil, &list); err != nil {
		return out, err
	}

	for _, msg := range list.Data {
		if msg.Role == "assistant" {
			return msg, nil
		}
	}
	return out, fmt.Errorf("no assistant message found in thread %s", threadID)
}

func (c *client) do(ctx context.Context, method, url string, body, out interface{}) error {
	res, err := c.wrapper.DoRequest(ctx, method, url, func(r *resty.Request) *resty.Request {
		if body != nil {
			r = r.SetBody(body)
		}
		return r
	})
	if err != nil {
		return err
	}

	if res.StatusCode() < 200 || res.StatusCode() >= 300 {
		var apiErr apiError
		if jsonErr := json.Unmarshal(res.Body(), &apiErr); jsonErr == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("openai api error (%d): %s", res.StatusCode(), apiErr.Error.Message)
		}
		return fmt.Errorf("openai api error (%d)", res.StatusCode())
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(res.Body(), out); err != nil {
		return fmt.Errorf("decode openai response: %w", err)
	}
	return nil
}
