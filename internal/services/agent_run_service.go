package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ledgerpilot/go-gl-recon/internal/common"
	"github.com/ledgerpilot/go-gl-recon/internal/common/log"
	"github.com/ledgerpilot/go-gl-recon/internal/common/openaiclient"
	"github.com/ledgerpilot/go-gl-recon/internal/common/validation"
	"github.com/ledgerpilot/go-gl-recon/internal/models"
	"github.com/ledgerpilot/go-gl-recon/internal/monitoring"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type AgentRunService interface {
	DoCreateAgentRun(ctx context.Context, req models.DoCreateAgentRunRequest) (*models.AgentRun, error)
}

type agentRun service

// DoCreateAgentRun executes the full pipeline: deterministic engine first, then
// each provider in turn. Provider failures are isolated to their own result slot;
// the deterministic output is always present in the response.
func (s *agentRun) DoCreateAgentRun(ctx context.Context, req models.DoCreateAgentRunRequest) (res *models.AgentRun, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	run := &models.AgentRun{
		RunID: uuid.NewString(),
	}

	toolOutput := s.srv.reconEngine.Run(ctx, req.Payload)
	run.ToolOutput = &toolOutput
	s.appendTimeline(run, models.StageReconEngine, models.StageStatusCompleted,
		fmt.Sprintf("%d reconciliation key(s), %d roll-forward entrie(s)",
			len(toolOutput.Reconciliations), len(toolOutput.RollForward)))

	run.OpenAI = s.runToolCallingProvider(ctx, req, run)
	run.Anthropic = s.runSkillProvider(ctx, req, run)
	run.Gemini = s.runNarrativeProvider(ctx, run)

	return run, nil
}

func (s *agentRun) appendTimeline(run *models.AgentRun, stage, status, detail string) {
	run.Timeline = append(run.Timeline, models.TimelineEntry{
		Stage:     stage,
		Status:    status,
		Detail:    detail,
		Timestamp: common.Now(),
	})
}

func (s *agentRun) observeStage(start time.Time, provider, stage, status string) {
	s.srv.metrics.GetProviderStagePrometheus().Record(time.Since(start), provider, stage, status)
}

// runToolCallingProvider drives the supervisor and reviewer stages over the
// assistants protocol. A reviewer failure keeps the supervisor result.
func (s *agentRun) runToolCallingProvider(ctx context.Context, req models.DoCreateAgentRunRequest, run *models.AgentRun) *models.ProviderResult {
	if !s.srv.openaiClient.Configured() {
		s.appendTimeline(run, models.StageSupervisor, models.StageStatusSkipped, "openai not configured")
		s.appendTimeline(run, models.StageReviewer, models.StageStatusSkipped, "openai not configured")
		return &models.ProviderResult{
			Status: models.ProviderStatusSkipped,
			Detail: "provider not configured",
		}
	}

	result := &models.ProviderResult{Status: models.ProviderStatusCompleted}

	start := time.Now()
	supervisorText, err := s.runSupervisor(ctx, req, run)
	if err != nil {
		log.Error(ctx, "supervisor stage failed", log.String("provider", models.ProviderOpenAI), log.Err(err))
		s.observeStage(start, models.ProviderOpenAI, models.StageSupervisor, models.ProviderStatusFailed)
		s.appendTimeline(run, models.StageSupervisor, models.StageStatusCompleted, err.Error())
		s.appendTimeline(run, models.StageReviewer, models.StageStatusSkipped, "supervisor stage failed")
		result.Status = models.ProviderStatusFailed
		result.Error = err.Error()
		return result
	}
	result.Supervisor = supervisorText
	s.observeStage(start, models.ProviderOpenAI, models.StageSupervisor, models.ProviderStatusCompleted)
	s.appendTimeline(run, models.StageSupervisor, models.StageStatusCompleted, "supervisor summary collected")

	start = time.Now()
	reviewerText, err := s.runReviewer(ctx, supervisorText, run)
	if err != nil {
		log.Error(ctx, "reviewer stage failed", log.String("provider", models.ProviderOpenAI), log.Err(err))
		s.observeStage(start, models.ProviderOpenAI, models.StageReviewer, models.ProviderStatusFailed)
		s.appendTimeline(run, models.StageReviewer, models.StageStatusCompleted, err.Error())
		result.Status = models.ProviderStatusFailed
		result.Error = err.Error()
		return result
	}
	result.Reviewer = reviewerText
	s.observeStage(start, models.ProviderOpenAI, models.StageReviewer, models.ProviderStatusCompleted)
	s.appendTimeline(run, models.StageReviewer, models.StageStatusCompleted, "review note collected")

	return result
}

func (s *agentRun) runSupervisor(ctx context.Context, req models.DoCreateAgentRunRequest, run *models.AgentRun) (text string, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	payloadJSON, err := json.Marshal(req.Payload)
	if err != nil {
		return "", err
	}

	prompt := buildSupervisorPrompt(req.UserPrompt, string(payloadJSON))
	tools := []openaiclient.ToolDefinition{reconToolDefinition()}

	return s.runAssistantStage(ctx, assistantStage{
		run:          run,
		stage:        models.StageSupervisor,
		instructions: supervisorInstructions,
		prompt:       prompt,
		tools:        tools,
	})
}

func (s *agentRun) runReviewer(ctx context.Context, supervisorText string, run *models.AgentRun) (text string, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	outputJSON, err := json.Marshal(run.ToolOutput)
	if err != nil {
		return "", err
	}

	return s.runAssistantStage(ctx, assistantStage{
		run:          run,
		stage:        models.StageReviewer,
		instructions: reviewerInstructions,
		prompt:       buildReviewerPrompt(supervisorText, string(outputJSON)),
	})
}

// assistantStage is one pass of the thread/run protocol. A stage with no tools
// attached must never receive a requires_action.
type assistantStage struct {
	run          *models.AgentRun
	stage        string
	instructions string
	prompt       string
	tools        []openaiclient.ToolDefinition
}

func (s *agentRun) runAssistantStage(ctx context.Context, st assistantStage) (string, error) {
	client := s.srv.openaiClient

	assistantName := s.srv.conf.Providers.OpenAI.AssistantName
	if st.stage == models.StageReviewer {
		assistantName += "-reviewer"
	}

	assistant, err := client.CreateAssistant(ctx, assistantName, st.instructions, st.tools)
	if err != nil {
		return "", err
	}

	thread, err := client.CreateThread(ctx)
	if err != nil {
		return "", err
	}

	if err = client.AddMessage(ctx, thread.ID, "user", st.prompt); err != nil {
		return "", err
	}

	providerRun, err := client.CreateRun(ctx, thread.ID, assistant.ID)
	if err != nil {
		return "", err
	}

	if err = s.pollRun(ctx, st, thread.ID, providerRun.ID); err != nil {
		return "", err
	}

	message, err := client.LatestAssistantMessage(ctx, thread.ID)
	if err != nil {
		return "", err
	}

	return message.Text(), nil
}

// pollRun polls the run status under the shared retryer, bounded by the
// configured poll deadline and the caller's context.
func (s *agentRun) pollRun(ctx context.Context, st assistantStage, threadID, runID string) error {
	pollCtx, cancel := context.WithTimeout(ctx, s.srv.conf.Providers.OpenAI.PollDeadline)
	defer cancel()

	return s.srv.retryer.Retry(pollCtx, func() error {
		current, err := s.srv.openaiClient.GetRun(pollCtx, threadID, runID)
		if err != nil {
			return err
		}

		switch current.Status {
		case openaiclient.RunStatusQueued, openaiclient.RunStatusInProgress:
			return common.ErrProviderTimeout

		case openaiclient.RunStatusRequiresAction:
			if err := s.handleRequiredAction(pollCtx, st, current); err != nil {
				return s.srv.retryer.StopRetryWithErr(err)
			}
			return common.ErrProviderTimeout

		case openaiclient.RunStatusCompleted:
			return nil

		default:
			if openaiclient.IsTerminalFailure(current.Status) {
				return s.srv.retryer.StopRetryWithErr(&models.ProviderRunFailedError{
					Provider: models.ProviderOpenAI,
					RunID:    current.ID,
					Status:   current.Status,
				})
			}
			return common.ErrProviderTimeout
		}
	})
}

// handleRequiredAction executes every pending tool call and submits the outputs.
// Each run_reconciliation call re-runs the engine; the latest recomputation
// replaces the run's authoritative tool output.
func (s *agentRun) handleRequiredAction(ctx context.Context, st assistantStage, providerRun openaiclient.Run) error {
	if providerRun.RequiredAction == nil {
		return nil
	}

	toolCalls := providerRun.RequiredAction.SubmitToolOutputs.ToolCalls
	if len(st.tools) == 0 && len(toolCalls) > 0 {
		return &models.ToolCallNotPermittedError{
			Provider: models.ProviderOpenAI,
			Stage:    st.stage,
			Tool:     toolCalls[0].Function.Name,
		}
	}

	outputs := make([]openaiclient.ToolOutput, 0, len(toolCalls))
	for _, call := range toolCalls {
		output, err := s.executeToolCall(ctx, st, call)
		if err != nil {
			return err
		}
		outputs = append(outputs, openaiclient.ToolOutput{
			ToolCallID: call.ID,
			Output:     output,
		})
	}

	_, err := s.srv.openaiClient.SubmitToolOutputs(ctx, providerRun.ThreadID, providerRun.ID, outputs)
	return err
}

func (s *agentRun) executeToolCall(ctx context.Context, st assistantStage, call openaiclient.ToolCall) (string, error) {
	if call.Function.Name != toolNameRunReconciliation {
		return "", &models.ToolCallNotPermittedError{
			Provider: models.ProviderOpenAI,
			Stage:    st.stage,
			Tool:     call.Function.Name,
		}
	}

	if call.Function.Arguments == "" {
		return "", common.ErrEmptyToolArguments
	}

	var args models.ToolCallArguments
	if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
		return "", models.GetErrMap(models.ErrKeyToolArgumentsInvalid, err.Error())
	}

	if err := validation.ValidateStruct(args); err != nil {
		return "", models.GetErrMap(models.ErrKeyToolArgumentsInvalid, err.Error())
	}

	toolOutput := s.srv.reconEngine.Run(ctx, args.ToPayload())
	st.run.ToolOutput = &toolOutput

	log.Info(ctx, "reconciliation recomputed from tool call",
		log.String("stage", st.stage),
		log.Int("reconciliations", len(toolOutput.Reconciliations)))

	raw, err := json.Marshal(toolOutput)
	if err != nil {
		return "", err
	}

	return string(raw), nil
}

// runSkillProvider fans the fixed skill set out over the direct-invocation
// provider. A failing skill records its error in its own slot and never fails
// the fan-out.
func (s *agentRun) runSkillProvider(ctx context.Context, req models.DoCreateAgentRunRequest, run *models.AgentRun) *models.ProviderResult {
	if !s.srv.anthropicClient.Configured() {
		s.appendTimeline(run, models.StageSkills, models.StageStatusSkipped, "anthropic not configured")
		return &models.ProviderResult{
			Status: models.ProviderStatusSkipped,
			Detail: "provider not configured",
		}
	}

	start := time.Now()
	outputJSON, err := json.Marshal(run.ToolOutput)
	if err != nil {
		s.observeStage(start, models.ProviderAnthropic, models.StageSkills, models.ProviderStatusFailed)
		s.appendTimeline(run, models.StageSkills, models.StageStatusCompleted, err.Error())
		return &models.ProviderResult{Status: models.ProviderStatusFailed, Error: err.Error()}
	}

	results := make([]models.SkillResult, len(skillNames))

	g := new(errgroup.Group)
	g.SetLimit(s.srv.conf.Providers.Anthropic.SkillConcurrency)
	for i, name := range skillNames {
		g.Go(func() error {
			text, err := s.srv.anthropicClient.CreateMessage(ctx, skillSystemPrompts[name], buildSkillPrompt(req.UserPrompt, string(outputJSON)))
			if err != nil {
				log.Warn(ctx, "skill invocation failed", log.String("skill", name), log.Err(err))
				results[i] = models.SkillResult{Error: err.Error()}
				return nil
			}
			results[i] = models.SkillResult{Output: text}
			return nil
		})
	}
	_ = g.Wait()

	skills := make(map[string]models.SkillResult, len(skillNames))
	failed := 0
	for i, name := range skillNames {
		skills[name] = results[i]
		if results[i].Error != "" {
			failed++
		}
	}

	s.observeStage(start, models.ProviderAnthropic, models.StageSkills, models.ProviderStatusCompleted)
	s.appendTimeline(run, models.StageSkills, models.StageStatusCompleted,
		fmt.Sprintf("%d skill(s) invoked, %d failed", len(skillNames), failed))

	return &models.ProviderResult{
		Status: models.ProviderStatusCompleted,
		Skills: skills,
	}
}

// runNarrativeProvider asks for a single closing narrative. Any failure is
// logged and the narrative stays null.
func (s *agentRun) runNarrativeProvider(ctx context.Context, run *models.AgentRun) *models.ProviderResult {
	if !s.srv.geminiClient.Configured() {
		s.appendTimeline(run, models.StageNarrative, models.StageStatusSkipped, "gemini not configured")
		return &models.ProviderResult{
			Status: models.ProviderStatusSkipped,
			Detail: "provider not configured",
		}
	}

	start := time.Now()
	outputJSON, err := json.Marshal(run.ToolOutput)
	if err == nil {
		var text string
		text, err = s.srv.geminiClient.Generate(ctx, buildNarrativePrompt(string(outputJSON)))
		if err == nil {
			s.observeStage(start, models.ProviderGemini, models.StageNarrative, models.ProviderStatusCompleted)
			s.appendTimeline(run, models.StageNarrative, models.StageStatusCompleted, "narrative synthesized")
			return &models.ProviderResult{
				Status:    models.ProviderStatusCompleted,
				Narrative: &text,
			}
		}
	}

	log.Error(ctx, "narrative synthesis failed", log.Err(err))
	s.observeStage(start, models.ProviderGemini, models.StageNarrative, models.ProviderStatusFailed)
	s.appendTimeline(run, models.StageNarrative, models.StageStatusCompleted, "narrative unavailable")
	return &models.ProviderResult{
		Status: models.ProviderStatusFailed,
		Error:  models.GetErrMap(models.ErrKeyNarrativeFailed, err.Error()).Error(),
	}
}
