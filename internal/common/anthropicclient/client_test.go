package anthropicclient_test

import (
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/ledgerpilot/go-gl-recon/internal/common/anthropicclient"
	"github.com/ledgerpilot/go-gl-recon/internal/common/log"
	"github.com/ledgerpilot/go-gl-recon/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.InitForTest()
	os.Exit(m.Run())
}

func newTestClient(t *testing.T, handler nethttp.HandlerFunc) anthropicclient.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return anthropicclient.New(config.AnthropicConfig{
		APIKey:  "sk-ant-test",
		Model:   "claude-sonnet-4-20250514",
		BaseURL: server.URL,
	}, nil)
}

func TestClient_Configured(t *testing.T) {
	assert.False(t, anthropicclient.New(config.AnthropicConfig{}, nil).Configured())
	assert.True(t, anthropicclient.New(config.AnthropicConfig{APIKey: "sk-ant-test"}, nil).Configured())
}

func TestClient_CreateMessage(t *testing.T) {
	client := newTestClient(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodPost, r.Method)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant-test", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "investigate the variance", body["system"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content": [{"type": "text", "text": "timing difference"}]}`))
	})

	out, err := client.CreateMessage(context.TODO(), "investigate the variance", "gl 100 sub 90")
	require.NoError(t, err)
	assert.Equal(t, "timing difference", out)
}

func TestClient_CreateMessage_APIError(t *testing.T) {
	client := newTestClient(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(nethttp.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"type": "rate_limit_error", "message": "rate limited"}}`))
	})

	_, err := client.CreateMessage(context.TODO(), "system", "user")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}
