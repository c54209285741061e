package models

import (
	"time"
)

// Pipeline stage identifiers, in execution order.
const (
	StageReconEngine = "reconciliation_engine"
	StageSupervisor  = "supervisor"
	StageReviewer    = "reviewer"
	StageSkills      = "skill_invocation"
	StageNarrative   = "narrative_synthesis"
)

// Timeline entry statuses.
const (
	StageStatusCompleted = "completed"
	StageStatusSkipped   = "skipped"
)

// Provider result statuses. A provider failure never removes the stage from the
// timeline; the entry stays completed and the failure lives in the provider result.
const (
	ProviderStatusCompleted = "completed"
	ProviderStatusSkipped   = "skipped"
	ProviderStatusFailed    = "failed"
)

// Provider field names in the run response.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// DoCreateAgentRunRequest is the inbound body of POST /v1/agent/runs.
type DoCreateAgentRunRequest struct {
	UserPrompt string           `json:"userPrompt" validate:"required"`
	Payload    CanonicalPayload `json:"payload" validate:"required"`
}

// TimelineEntry records one stage of the run. Entries are append-only; a recorded
// entry is never overwritten.
type TimelineEntry struct {
	Stage     string    `json:"stage"`
	Status    string    `json:"status"`
	Detail    string    `json:"detail"`
	Timestamp time.Time `json:"timestamp"`
}

// SkillResult is the outcome of one stateless skill invocation.
type SkillResult struct {
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ProviderResult holds one provider's contribution to the run. Only the fields
// relevant to that provider's protocol are populated.
type ProviderResult struct {
	Status     string                 `json:"status"`
	Detail     string                 `json:"detail,omitempty"`
	Supervisor string                 `json:"supervisor,omitempty"`
	Reviewer   string                 `json:"reviewer,omitempty"`
	Skills     map[string]SkillResult `json:"skills,omitempty"`
	Narrative  *string                `json:"narrative,omitempty"`
	Error      string                 `json:"error,omitempty"`
}

// AgentRun is the assembled result of one orchestration call. It is request-scoped
// and never persisted by this service.
type AgentRun struct {
	RunID      string          `json:"runId"`
	Timeline   []TimelineEntry `json:"timeline"`
	OpenAI     *ProviderResult `json:"openai"`
	Anthropic  *ProviderResult `json:"anthropic"`
	Gemini     *ProviderResult `json:"gemini"`
	ToolOutput *ToolOutput     `json:"toolOutput"`
}
