package services

import (
	"encoding/json"
	"fmt"

	"github.com/ledgerpilot/go-gl-recon/internal/common/openaiclient"
)

const toolNameRunReconciliation = "run_reconciliation"

// Skill identifiers for the direct-invocation provider. The set is fixed;
// callers cannot register skills at runtime.
const (
	SkillColumnMapper           = "column-mapper"
	SkillVarianceInvestigator   = "variance-investigator"
	SkillRollforwardCommentator = "rollforward-commentator"
	SkillDataQualityAuditor     = "data-quality-auditor"
)

var skillNames = []string{
	SkillColumnMapper,
	SkillVarianceInvestigator,
	SkillRollforwardCommentator,
	SkillDataQualityAuditor,
}

var balanceRecordSchema = `{
	"type": "object",
	"properties": {
		"account":  {"type": "string"},
		"period":   {"type": "string"},
		"amount":   {"type": "number"},
		"currency": {"type": "string"}
	},
	"required": ["account", "amount"]
}`

var reconToolParameters = json.RawMessage(fmt.Sprintf(`{
	"type": "object",
	"properties": {
		"gl_balances":        {"type": "array", "items": %s},
		"subledger_balances": {"type": "array", "items": %s},
		"transactions": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"account":   {"type": "string"},
					"debit":     {"type": "number"},
					"credit":    {"type": "number"},
					"amount":    {"type": "number"},
					"booked_at": {"type": "string"},
					"metadata":  {"type": "object"}
				}
			}
		},
		"ordered_periods":       {"type": "array", "items": {"type": "string"}},
		"activity_by_period":    {"type": "object", "additionalProperties": {"type": "number"}},
		"adjustments_by_period": {"type": "object", "additionalProperties": {"type": "number"}}
	},
	"required": ["gl_balances", "subledger_balances"]
}`, balanceRecordSchema, balanceRecordSchema))

func reconToolDefinition() openaiclient.ToolDefinition {
	return openaiclient.ToolDefinition{
		Type: "function",
		Function: openaiclient.FunctionDefinition{
			Name:        toolNameRunReconciliation,
			Description: "Recompute the deterministic GL vs subledger reconciliation from revised balances, transactions and period overrides. Returns the full tool output: per-key variance classification, roll-forward schedule and normalized transactions.",
			Parameters:  reconToolParameters,
		},
	}
}

const supervisorInstructions = `You are a financial close supervisor. You are given a general ledger vs subledger reconciliation computed by a deterministic engine. Review the figures, and when the user's request implies revised inputs (corrected balances, excluded transactions, period overrides), call the run_reconciliation tool with the revised inputs instead of estimating numbers yourself. Summarize material variances, their likely drivers, and the follow-ups the close team should perform. Never invent balances that are not in the data.`

const reviewerInstructions = `You are an independent reviewer of a financial close supervisor's reconciliation summary. You have no tools. Check the summary against the attached deterministic tool output: flag any figure that does not match, any material variance left unaddressed, and any unsupported claim. Respond with a concise review note.`

// skillSystemPrompts keys must cover every entry of skillNames.
var skillSystemPrompts = map[string]string{
	SkillColumnMapper:           `You map raw ledger export columns onto the canonical reconciliation fields (account, period, amount, debit, credit, booked_at). Given a reconciliation tool output, report which canonical fields appear populated, which look defaulted, and what source columns they most plausibly came from.`,
	SkillVarianceInvestigator:   `You investigate GL vs subledger variances. For each non-balanced reconciliation in the tool output, rank the plausible causes (timing differences, one-sided postings, duplicated entries, sign flips) using the supporting transaction counts and amounts.`,
	SkillRollforwardCommentator: `You write roll-forward commentary for close documentation. For each roll-forward entry in the tool output, expand its movement line into one audit-ready sentence tying opening balance, activity, adjustments and closing balance together.`,
	SkillDataQualityAuditor:     `You audit reconciliation input quality. From the tool output's transactions and notes, report date substitutions, missing accounts or periods, and any pattern that would degrade the reliability of the variance classification.`,
}

func buildSupervisorPrompt(userPrompt, payloadJSON string) string {
	return fmt.Sprintf("%s\n\nCanonical reconciliation payload:\n%s", userPrompt, payloadJSON)
}

func buildReviewerPrompt(supervisorText, toolOutputJSON string) string {
	return fmt.Sprintf("Supervisor summary:\n%s\n\nDeterministic tool output:\n%s", supervisorText, toolOutputJSON)
}

func buildSkillPrompt(userPrompt, toolOutputJSON string) string {
	return fmt.Sprintf("User request:\n%s\n\nReconciliation tool output:\n%s", userPrompt, toolOutputJSON)
}

func buildNarrativePrompt(toolOutputJSON string) string {
	return fmt.Sprintf("Write a short narrative for a financial close package summarizing this reconciliation result. Plain prose, no markdown, at most two paragraphs. State whether the ledgers reconcile, name the material variances and the roll-forward movements worth attention.\n\n%s", toolOutputJSON)
}
