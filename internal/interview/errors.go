package interview

import (
	"errors"
	"fmt"
)

var (
	ErrNoStructuredList = errors.New("no structured list found")
	ErrUnparseable      = errors.New("could not parse structured list")
	ErrEmptyResult      = errors.New("empty or invalid result")
	ErrInvalidState     = errors.New("invalid session state")
)

// GenerationError is returned when a question set could not be produced.
// RawResponse and the two parse errors are kept for diagnostics.
type GenerationError struct {
	Reason      string
	RawResponse string
	LiteralErr  error
	JSONErr     error
	Cause       error
}

func (e *GenerationError) Error() string {
	msg := fmt.Sprintf("question generation failed: %s", e.Reason)
	if e.LiteralErr != nil || e.JSONErr != nil {
		msg = fmt.Sprintf("%s (literal parse: %v; json parse: %v)", msg, e.LiteralErr, e.JSONErr)
	}
	if e.Cause != nil && e.Cause.Error() != e.Reason {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// InvalidStateError reports a submitAnswer call on a finished session.
type InvalidStateError struct {
	Position int
	Total    int
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid session state: position %d of %d, session is complete", e.Position, e.Total)
}

func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}
