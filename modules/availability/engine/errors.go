package engine

import "errors"

// Validation errors, detected before any computation begins and returned
// to the caller unmodified. The engine never coerces invalid input.
var (
	ErrInvalidWindow       = errors.New("engine: window start must be before window end")
	ErrInvalidGranularity  = errors.New("engine: granularity must be greater than zero")
	ErrEmptyParticipantSet = errors.New("engine: participant set must not be empty")
)
