package models

import (
	"errors"
	"fmt"
)

type (
	MapErrs     map[string]ErrorDetail
	ErrorDetail struct {
		Code         string `json:"code,omitempty"`
		ErrorMessage error  `json:"message,omitempty"`
	}
)

func (e ErrorDetail) Error() string {
	return fmt.Sprintf("code: %s, message: %v", e.Code, e.ErrorMessage)
}

// Error keys used across the service.
const (
	ErrKeyPayloadInvalid       = "payload_invalid"
	ErrKeyToolArgumentsInvalid = "tool_arguments_invalid"
	ErrKeyProviderRunFailed    = "provider_run_failed"
	ErrKeyToolCallNotPermitted = "tool_call_not_permitted"
	ErrKeyNarrativeFailed      = "narrative_synthesis_failed"
)

var MapErrors = MapErrs{
	ErrKeyPayloadInvalid: {
		Code:         "GLR4001",
		ErrorMessage: errors.New("canonical payload failed validation"),
	},
	ErrKeyToolArgumentsInvalid: {
		Code:         "GLR4002",
		ErrorMessage: errors.New("tool call arguments failed validation"),
	},
	ErrKeyProviderRunFailed: {
		Code:         "GLR5001",
		ErrorMessage: errors.New("provider run reached a terminal failure state"),
	},
	ErrKeyToolCallNotPermitted: {
		Code:         "GLR5002",
		ErrorMessage: errors.New("provider attempted a tool call it is not authorized for"),
	},
	ErrKeyNarrativeFailed: {
		Code:         "GLR5003",
		ErrorMessage: errors.New("narrative synthesis failed"),
	},
}

func GetErrMap(code string, args ...string) ErrorDetail {
	v, ok := MapErrors[code]
	if !ok {
		return ErrorDetail{
			Code:         code,
			ErrorMessage: errors.New("unknown error mapping"),
		}
	}
	if len(args) > 0 {
		v.ErrorMessage = fmt.Errorf("%s caused by %s", v.ErrorMessage, args[0])
	}

	return v
}

// ProviderRunFailedError is raised when a tool-calling provider's run terminates in
// failed, cancelled or expired. It is surfaced per provider and never aborts the
// deterministic result or the other providers.
type ProviderRunFailedError struct {
	Provider string
	RunID    string
	Status   string
}

func (e *ProviderRunFailedError) Error() string {
	return fmt.Sprintf("provider %s run %s terminated with status %s", e.Provider, e.RunID, e.Status)
}

// ToolCallNotPermittedError is raised when a stage that has no tools attached
// still receives a tool-call request. Fatal to that stage only.
type ToolCallNotPermittedError struct {
	Provider string
	Stage    string
	Tool     string
}

func (e *ToolCallNotPermittedError) Error() string {
	return fmt.Sprintf("provider %s stage %s attempted unauthorized tool call %q", e.Provider, e.Stage, e.Tool)
}
