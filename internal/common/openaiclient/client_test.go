package openaiclient_test

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/ledgerpilot/go-gl-recon/internal/common/log"
	"github.com/ledgerpilot/go-gl-recon/internal/common/openaiclient"
	"github.com/ledgerpilot/go-gl-recon/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.InitForTest()
	os.Exit(m.Run())
}

func newTestClient(t *testing.T, handler nethttp.HandlerFunc) openaiclient.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return openaiclient.New(config.OpenAIConfig{
		APIKey:  "sk-test",
		Model:   "gpt-4o",
		BaseURL: server.URL,
	}, nil)
}

func TestClient_Configured(t *testing.T) {
	assert.False(t, openaiclient.New(config.OpenAIConfig{}, nil).Configured())
	assert.True(t, openaiclient.New(config.OpenAIConfig{APIKey: "sk-test"}, nil).Configured())
}

func TestClient_CreateAssistant(t *testing.T) {
	client := newTestClient(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodPost, r.Method)
		assert.Equal(t, "/assistants", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "assistants=v2", r.Header.Get("OpenAI-Beta"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "asst_1", "name": "gl-recon", "model": "gpt-4o"}`))
	})

	assistant, err := client.CreateAssistant(context.TODO(), "gl-recon", "instructions", nil)
	require.NoError(t, err)
	assert.Equal(t, "asst_1", assistant.ID)
}

func TestClient_GetRun_RequiresAction(t *testing.T) {
	client := newTestClient(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/threads/th_1/runs/run_1", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "run_1",
			"thread_id": "th_1",
			"status": "requires_action",
			"required_action": {
				"type": "submit_tool_outputs",
				"submit_tool_outputs": {
					"tool_calls": [
						{"id": "call_1", "type": "function", "function": {"name": "run_reconciliation", "arguments": "{}"}}
					]
				}
			}
		}`))
	})

	run, err := client.GetRun(context.TODO(), "th_1", "run_1")
	require.NoError(t, err)
	assert.Equal(t, openaiclient.RunStatusRequiresAction, run.Status)
	require.NotNil(t, run.RequiredAction)
	require.Len(t, run.RequiredAction.SubmitToolOutputs.ToolCalls, 1)
	assert.Equal(t, "run_reconciliation", run.RequiredAction.SubmitToolOutputs.ToolCalls[0].Function.Name)
}

func TestClient_SubmitToolOutputs(t *testing.T) {
	client := newTestClient(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/threads/th_1/runs/run_1/submit_tool_outputs", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "run_1", "thread_id": "th_1", "status": "in_progress"}`))
	})

	run, err := client.SubmitToolOutputs(context.TODO(), "th_1", "run_1", []openaiclient.ToolOutput{
		{ToolCallID: "call_1", Output: `{"ok":true}`},
	})
	require.NoError(t, err)
	assert.Equal(t, openaiclient.RunStatusInProgress, run.Status)
}

func TestClient_LatestAssistantMessage(t *testing.T) {
	client := newTestClient(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/threads/th_1/messages", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [
			{"id": "msg_2", "role": "assistant", "content": [{"type": "text", "text": {"value": "summary"}}]},
			{"id": "msg_1", "role": "user", "content": [{"type": "text", "text": {"value": "prompt"}}]}
		]}`))
	})

	msg, err := client.LatestAssistantMessage(context.TODO(), "th_1")
	require.NoError(t, err)
	assert.Equal(t, "summary", msg.Text())
}

func TestClient_APIError(t *testing.T) {
	client := newTestClient(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(nethttp.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"message": "invalid assistant", "type": "invalid_request_error"}}`))
	})

	_, err := client.CreateThread(context.TODO())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid assistant")
}

func TestIsTerminalFailure(t *testing.T) {
	assert.True(t, openaiclient.IsTerminalFailure(openaiclient.RunStatusFailed))
	assert.True(t, openaiclient.IsTerminalFailure(openaiclient.RunStatusCancelled))
	assert.True(t, openaiclient.IsTerminalFailure(openaiclient.RunStatusExpired))
	assert.False(t, openaiclient.IsTerminalFailure(openaiclient.RunStatusCompleted))
	assert.False(t, openaiclient.IsTerminalFailure(openaiclient.RunStatusInProgress))
}
