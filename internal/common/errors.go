package common

import (
	"errors"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrDataNotFound        = errors.New("data not found")
	ErrInternalServerError = errors.New("internal server error")
	ErrInvalidFormatDate   = errors.New("invalid format date")
	ErrProviderTimeout     = errors.New("provider polling deadline exceeded")
	ErrEmptyToolArguments  = errors.New("tool call arguments are empty")
)
