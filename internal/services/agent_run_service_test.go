package services_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	mockAnthropic "github.com/ledgerpilot/go-gl-recon/internal/common/anthropicclient/mock"
	mockGemini "github.com/ledgerpilot/go-gl-recon/internal/common/geminiclient/mock"
	"github.com/ledgerpilot/go-gl-recon/internal/common/log"
	mockMetrics "github.com/ledgerpilot/go-gl-recon/internal/common/metrics/mock"
	"github.com/ledgerpilot/go-gl-recon/internal/common/openaiclient"
	mockOpenAI "github.com/ledgerpilot/go-gl-recon/internal/common/openaiclient/mock"
	"github.com/ledgerpilot/go-gl-recon/internal/common/retry"
	"github.com/ledgerpilot/go-gl-recon/internal/config"
	"github.com/ledgerpilot/go-gl-recon/internal/engine"
	"github.com/ledgerpilot/go-gl-recon/internal/models"
	"github.com/ledgerpilot/go-gl-recon/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	log.InitForTest()
	os.Exit(m.Run())
}

type testServiceHelper struct {
	mockCtrl      *gomock.Controller
	config        config.Config
	mockOpenAI    *mockOpenAI.MockClient
	mockAnthropic *mockAnthropic.MockClient
	mockGemini    *mockGemini.MockClient
	mockMetrics   *mockMetrics.MockMetrics

	srv *services.Services
}

func serviceTestHelper(t *testing.T) testServiceHelper {
	t.Helper()
	t.Parallel()

	mockCtrl := gomock.NewController(t)

	openaiMock := mockOpenAI.NewMockClient(mockCtrl)
	anthropicMock := mockAnthropic.NewMockClient(mockCtrl)
	geminiMock := mockGemini.NewMockClient(mockCtrl)
	metricsMock := mockMetrics.NewMockMetrics(mockCtrl)
	metricsMock.EXPECT().GetProviderStagePrometheus().Return(nil).AnyTimes()

	cfg := config.Config{
		ReconEngine: config.ReconEngineConfig{
			MaterialityThreshold: 50,
			SyntheticAccount:     "general",
		},
		Providers: config.ProvidersConfig{
			OpenAI: config.OpenAIConfig{
				AssistantName: "gl-recon",
				PollDeadline:  5 * time.Second,
			},
			Anthropic: config.AnthropicConfig{
				SkillConcurrency: 3,
			},
		},
		ExponentialBackoff: config.ExponentialBackOffConfig{
			MaxRetries:     5,
			MaxBackoffTime: 5 * time.Second,
		},
	}

	srv := services.New(cfg,
		engine.New(cfg.ReconEngine),
		openaiMock,
		anthropicMock,
		geminiMock,
		retry.NewExponentialBackOff(&cfg.ExponentialBackoff),
		metricsMock,
	)

	return testServiceHelper{
		mockCtrl:      mockCtrl,
		config:        cfg,
		mockOpenAI:    openaiMock,
		mockAnthropic: anthropicMock,
		mockGemini:    geminiMock,
		mockMetrics:   metricsMock,
		srv:           srv,
	}
}

func testRequest(t *testing.T) models.DoCreateAgentRunRequest {
	t.Helper()

	amount, err := models.NewDecimal("100")
	require.NoError(t, err)

	return models.DoCreateAgentRunRequest{
		UserPrompt: "reconcile january",
		Payload: models.CanonicalPayload{
			GLBalances: []models.BalanceRecord{
				{Account: "1000", Period: "2024-01", Amount: &amount},
			},
			SubledgerBalances: []models.BalanceRecord{
				{Account: "1000", Period: "2024-01", Amount: &amount},
			},
		},
	}
}

func TestAgentRunService_AllProvidersUnconfigured(t *testing.T) {
	testHelper := serviceTestHelper(t)

	testHelper.mockOpenAI.EXPECT().Configured().Return(false)
	testHelper.mockAnthropic.EXPECT().Configured().Return(false)
	testHelper.mockGemini.EXPECT().Configured().Return(false)

	run, err := testHelper.srv.AgentRun.DoCreateAgentRun(context.TODO(), testRequest(t))
	require.NoError(t, err)

	assert.NotEmpty(t, run.RunID)
	require.NotNil(t, run.ToolOutput)
	require.Len(t, run.ToolOutput.Reconciliations, 1)
	assert.Equal(t, models.ReconStatusBalanced, run.ToolOutput.Reconciliations[0].Status)

	assert.Equal(t, models.ProviderStatusSkipped, run.OpenAI.Status)
	assert.Equal(t, models.ProviderStatusSkipped, run.Anthropic.Status)
	assert.Equal(t, models.ProviderStatusSkipped, run.Gemini.Status)

	require.Len(t, run.Timeline, 5)
	assert.Equal(t, models.StageReconEngine, run.Timeline[0].Stage)
	assert.Equal(t, models.StageStatusCompleted, run.Timeline[0].Status)
	for _, entry := range run.Timeline[1:] {
		assert.Equal(t, models.StageStatusSkipped, entry.Status)
	}
}

func TestAgentRunService_SupervisorToolCallRecomputes(t *testing.T) {
	testHelper := serviceTestHelper(t)

	testHelper.mockAnthropic.EXPECT().Configured().Return(false)
	testHelper.mockGemini.EXPECT().Configured().Return(false)
	testHelper.mockOpenAI.EXPECT().Configured().Return(true)

	// supervisor then reviewer, FIFO on identical calls
	testHelper.mockOpenAI.EXPECT().CreateAssistant(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(openaiclient.Assistant{ID: "asst_sup"}, nil)
	testHelper.mockOpenAI.EXPECT().CreateAssistant(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(openaiclient.Assistant{ID: "asst_rev"}, nil)
	testHelper.mockOpenAI.EXPECT().CreateThread(gomock.Any()).Return(openaiclient.Thread{ID: "th_sup"}, nil)
	testHelper.mockOpenAI.EXPECT().CreateThread(gomock.Any()).Return(openaiclient.Thread{ID: "th_rev"}, nil)
	testHelper.mockOpenAI.EXPECT().AddMessage(gomock.Any(), "th_sup", "user", gomock.Any()).Return(nil)
	testHelper.mockOpenAI.EXPECT().AddMessage(gomock.Any(), "th_rev", "user", gomock.Any()).Return(nil)
	testHelper.mockOpenAI.EXPECT().CreateRun(gomock.Any(), "th_sup", "asst_sup").
		Return(openaiclient.Run{ID: "run_sup", ThreadID: "th_sup", Status: openaiclient.RunStatusQueued}, nil)
	testHelper.mockOpenAI.EXPECT().CreateRun(gomock.Any(), "th_rev", "asst_rev").
		Return(openaiclient.Run{ID: "run_rev", ThreadID: "th_rev", Status: openaiclient.RunStatusQueued}, nil)

	requiresAction := openaiclient.Run{
		ID:       "run_sup",
		ThreadID: "th_sup",
		Status:   openaiclient.RunStatusRequiresAction,
	}
	requiresAction.RequiredAction = &openaiclient.RequiredAction{Type: "submit_tool_outputs"}
	requiresAction.RequiredAction.SubmitToolOutputs.ToolCalls = []openaiclient.ToolCall{
		{
			ID:   "call_1",
			Type: "function",
			Function: openaiclient.ToolCallFunction{
				Name:      "run_reconciliation",
				Arguments: `{"gl_balances":[{"account":"1000","period":"2024-01","amount":500}],"subledger_balances":[{"account":"1000","period":"2024-01","amount":100}]}`,
			},
		},
	}

	testHelper.mockOpenAI.EXPECT().GetRun(gomock.Any(), "th_sup", "run_sup").Return(requiresAction, nil)
	testHelper.mockOpenAI.EXPECT().GetRun(gomock.Any(), "th_sup", "run_sup").
		Return(openaiclient.Run{ID: "run_sup", ThreadID: "th_sup", Status: openaiclient.RunStatusCompleted}, nil)
	testHelper.mockOpenAI.EXPECT().GetRun(gomock.Any(), "th_rev", "run_rev").
		Return(openaiclient.Run{ID: "run_rev", ThreadID: "th_rev", Status: openaiclient.RunStatusCompleted}, nil)

	testHelper.mockOpenAI.EXPECT().SubmitToolOutputs(gomock.Any(), "th_sup", "run_sup", gomock.Len(1)).
		Return(openaiclient.Run{ID: "run_sup", ThreadID: "th_sup", Status: openaiclient.RunStatusInProgress}, nil)

	supervisorMsg := openaiclient.Message{
		Role:    "assistant",
		Content: []openaiclient.MessageContent{{Type: "text", Text: &openaiclient.MessageContentText{Value: "supervisor summary"}}},
	}
	reviewerMsg := openaiclient.Message{
		Role:    "assistant",
		Content: []openaiclient.MessageContent{{Type: "text", Text: &openaiclient.MessageContentText{Value: "review note"}}},
	}
	testHelper.mockOpenAI.EXPECT().LatestAssistantMessage(gomock.Any(), "th_sup").Return(supervisorMsg, nil)
	testHelper.mockOpenAI.EXPECT().LatestAssistantMessage(gomock.Any(), "th_rev").Return(reviewerMsg, nil)

	run, err := testHelper.srv.AgentRun.DoCreateAgentRun(context.TODO(), testRequest(t))
	require.NoError(t, err)

	assert.Equal(t, models.ProviderStatusCompleted, run.OpenAI.Status)
	assert.Equal(t, "supervisor summary", run.OpenAI.Supervisor)
	assert.Equal(t, "review note", run.OpenAI.Reviewer)

	// latest tool recomputation is authoritative
	require.NotNil(t, run.ToolOutput)
	require.Len(t, run.ToolOutput.Reconciliations, 1)
	rec := run.ToolOutput.Reconciliations[0]
	assert.Equal(t, "500", rec.GLBalance.String())
	assert.Equal(t, "400", rec.Variance.String())
	assert.Equal(t, models.ReconStatusMaterialVariance, rec.Status)
}

func TestAgentRunService_SupervisorTerminalFailure(t *testing.T) {
	testHelper := serviceTestHelper(t)

	testHelper.mockAnthropic.EXPECT().Configured().Return(false)
	testHelper.mockGemini.EXPECT().Configured().Return(false)
	testHelper.mockOpenAI.EXPECT().Configured().Return(true)

	testHelper.mockOpenAI.EXPECT().CreateAssistant(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(openaiclient.Assistant{ID: "asst_sup"}, nil)
	testHelper.mockOpenAI.EXPECT().CreateThread(gomock.Any()).Return(openaiclient.Thread{ID: "th_sup"}, nil)
	testHelper.mockOpenAI.EXPECT().AddMessage(gomock.Any(), "th_sup", "user", gomock.Any()).Return(nil)
	testHelper.mockOpenAI.EXPECT().CreateRun(gomock.Any(), "th_sup", "asst_sup").
		Return(openaiclient.Run{ID: "run_sup", ThreadID: "th_sup", Status: openaiclient.RunStatusQueued}, nil)
	testHelper.mockOpenAI.EXPECT().GetRun(gomock.Any(), "th_sup", "run_sup").
		Return(openaiclient.Run{ID: "run_sup", ThreadID: "th_sup", Status: openaiclient.RunStatusExpired}, nil)

	run, err := testHelper.srv.AgentRun.DoCreateAgentRun(context.TODO(), testRequest(t))
	require.NoError(t, err)

	assert.Equal(t, models.ProviderStatusFailed, run.OpenAI.Status)
	assert.Contains(t, run.OpenAI.Error, "expired")
	assert.Empty(t, run.OpenAI.Supervisor)

	// deterministic result survives
	require.NotNil(t, run.ToolOutput)
	require.Len(t, run.ToolOutput.Reconciliations, 1)
}

func TestAgentRunService_ReviewerToolCallNotPermitted(t *testing.T) {
	testHelper := serviceTestHelper(t)

	testHelper.mockAnthropic.EXPECT().Configured().Return(false)
	testHelper.mockGemini.EXPECT().Configured().Return(false)
	testHelper.mockOpenAI.EXPECT().Configured().Return(true)

	testHelper.mockOpenAI.EXPECT().CreateAssistant(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(openaiclient.Assistant{ID: "asst_sup"}, nil)
	testHelper.mockOpenAI.EXPECT().CreateAssistant(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(openaiclient.Assistant{ID: "asst_rev"}, nil)
	testHelper.mockOpenAI.EXPECT().CreateThread(gomock.Any()).Return(openaiclient.Thread{ID: "th_sup"}, nil)
	testHelper.mockOpenAI.EXPECT().CreateThread(gomock.Any()).Return(openaiclient.Thread{ID: "th_rev"}, nil)
	testHelper.mockOpenAI.EXPECT().AddMessage(gomock.Any(), gomock.Any(), "user", gomock.Any()).Return(nil).Times(2)
	testHelper.mockOpenAI.EXPECT().CreateRun(gomock.Any(), "th_sup", "asst_sup").
		Return(openaiclient.Run{ID: "run_sup", ThreadID: "th_sup", Status: openaiclient.RunStatusQueued}, nil)
	testHelper.mockOpenAI.EXPECT().CreateRun(gomock.Any(), "th_rev", "asst_rev").
		Return(openaiclient.Run{ID: "run_rev", ThreadID: "th_rev", Status: openaiclient.RunStatusQueued}, nil)

	testHelper.mockOpenAI.EXPECT().GetRun(gomock.Any(), "th_sup", "run_sup").
		Return(openaiclient.Run{ID: "run_sup", ThreadID: "th_sup", Status: openaiclient.RunStatusCompleted}, nil)

	reviewerToolCall := openaiclient.Run{
		ID:       "run_rev",
		ThreadID: "th_rev",
		Status:   openaiclient.RunStatusRequiresAction,
	}
	reviewerToolCall.RequiredAction = &openaiclient.RequiredAction{Type: "submit_tool_outputs"}
	reviewerToolCall.RequiredAction.SubmitToolOutputs.ToolCalls = []openaiclient.ToolCall{
		{ID: "call_1", Type: "function", Function: openaiclient.ToolCallFunction{Name: "run_reconciliation", Arguments: "{}"}},
	}
	testHelper.mockOpenAI.EXPECT().GetRun(gomock.Any(), "th_rev", "run_rev").Return(reviewerToolCall, nil)

	supervisorMsg := openaiclient.Message{
		Role:    "assistant",
		Content: []openaiclient.MessageContent{{Type: "text", Text: &openaiclient.MessageContentText{Value: "supervisor summary"}}},
	}
	testHelper.mockOpenAI.EXPECT().LatestAssistantMessage(gomock.Any(), "th_sup").Return(supervisorMsg, nil)

	run, err := testHelper.srv.AgentRun.DoCreateAgentRun(context.TODO(), testRequest(t))
	require.NoError(t, err)

	// supervisor result retained, reviewer failure recorded
	assert.Equal(t, models.ProviderStatusFailed, run.OpenAI.Status)
	assert.Equal(t, "supervisor summary", run.OpenAI.Supervisor)
	assert.Empty(t, run.OpenAI.Reviewer)
	assert.Contains(t, run.OpenAI.Error, "unauthorized tool call")
}

func TestAgentRunService_SkillFanOutIsolatesFailures(t *testing.T) {
	testHelper := serviceTestHelper(t)

	testHelper.mockOpenAI.EXPECT().Configured().Return(false)
	testHelper.mockGemini.EXPECT().Configured().Return(false)
	testHelper.mockAnthropic.EXPECT().Configured().Return(true)

	failingSystem := "You investigate GL vs subledger variances."
	testHelper.mockAnthropic.EXPECT().CreateMessage(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, system, _ string) (string, error) {
			if strings.HasPrefix(system, failingSystem) {
				return "", assert.AnError
			}
			return "skill output", nil
		}).Times(4)

	run, err := testHelper.srv.AgentRun.DoCreateAgentRun(context.TODO(), testRequest(t))
	require.NoError(t, err)

	assert.Equal(t, models.ProviderStatusCompleted, run.Anthropic.Status)
	require.Len(t, run.Anthropic.Skills, 4)

	investigator := run.Anthropic.Skills[services.SkillVarianceInvestigator]
	assert.NotEmpty(t, investigator.Error)
	assert.Empty(t, investigator.Output)

	mapper := run.Anthropic.Skills[services.SkillColumnMapper]
	assert.Equal(t, "skill output", mapper.Output)
	assert.Empty(t, mapper.Error)
}

func TestAgentRunService_NarrativeFailureDowngradesToNull(t *testing.T) {
	testHelper := serviceTestHelper(t)

	testHelper.mockOpenAI.EXPECT().Configured().Return(false)
	testHelper.mockAnthropic.EXPECT().Configured().Return(false)
	testHelper.mockGemini.EXPECT().Configured().Return(true)
	testHelper.mockGemini.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("", assert.AnError)

	run, err := testHelper.srv.AgentRun.DoCreateAgentRun(context.TODO(), testRequest(t))
	require.NoError(t, err)

	assert.Equal(t, models.ProviderStatusFailed, run.Gemini.Status)
	assert.Nil(t, run.Gemini.Narrative)
	assert.NotEmpty(t, run.Gemini.Error)
	require.NotNil(t, run.ToolOutput)
}

func TestAgentRunService_NarrativeSuccess(t *testing.T) {
	testHelper := serviceTestHelper(t)

	testHelper.mockOpenAI.EXPECT().Configured().Return(false)
	testHelper.mockAnthropic.EXPECT().Configured().Return(false)
	testHelper.mockGemini.EXPECT().Configured().Return(true)
	testHelper.mockGemini.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("ledgers reconcile", nil)

	run, err := testHelper.srv.AgentRun.DoCreateAgentRun(context.TODO(), testRequest(t))
	require.NoError(t, err)

	assert.Equal(t, models.ProviderStatusCompleted, run.Gemini.Status)
	require.NotNil(t, run.Gemini.Narrative)
	assert.Equal(t, "ledgers reconcile", *run.Gemini.Narrative)
}
