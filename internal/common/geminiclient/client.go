// Package geminiclient wraps the Gemini API for narrative synthesis. The
// underlying client is created lazily on first use and reused afterwards.
package geminiclient

import (
	"context"
	"fmt"
	"sync"

	"github.com/ledgerpilot/go-gl-recon/internal/config"
	"github.com/ledgerpilot/go-gl-recon/internal/monitoring"

	"google.golang.org/genai"
)

type Client interface {
	Configured() bool
	Generate(ctx context.Context, prompt string) (string, error)
}

type client struct {
	apiKey string
	model  string

	mu          sync.Mutex
	genaiClient *genai.Client
}

func New(cfg config.GeminiConfig) Client {
	return &client{
		apiKey: cfg.APIKey,
		model:  cfg.Model,
	}
}

func (c *client) Configured() bool {
	return c.apiKey != ""
}

func (c *client) ensureClient(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.genaiClient != nil {
		return c.genaiClient, nil
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	c.genaiClient = gc
	return gc, nil
}

func (c *client) Generate(ctx context.Context, prompt string) (out string, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	gc, err := c.ensureClient(ctx)
	if err != nil {
		return "", err
	}

	res, err := gc.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("gemini response carried no text")
	}
	return text, nil
}
