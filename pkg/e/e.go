package e

import (
	"context"
	"errors"
	"fmt"
)

func Wrap(message string, err error) error {
	return fmt.Errorf("%s: %w", message, err)
}

var (
	ErrValidation      = errors.New("validation failed")
	ErrLocation        = errors.New("location unavailable")
	ErrNotFound        = errors.New("not found")
	ErrService         = errors.New("remote service error")
	ErrSessionNotFound = errors.New("session not found")
	ErrSuperseded      = errors.New("resolution superseded")
	ErrConflict        = errors.New("conflict")
	ErrDeadline        = errors.New("deadline exceeded")
	ErrCanceled        = errors.New("context canceled")
)

// ValidationError names the client-side precondition that was not met.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (v *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Reason)
}

func (v *ValidationError) Unwrap() error { return ErrValidation }

// Device sensor failure reasons.
const (
	ReasonPermissionDenied = "permission_denied"
	ReasonUnavailable      = "unavailable"
	ReasonTimeout          = "timeout"
)

type LocationError struct {
	Reason string
}

func (l *LocationError) Error() string {
	return "device location: " + l.Reason
}

func (l *LocationError) Unwrap() error { return ErrLocation }

// WrapError classifies transport errors of remote calls. Anything that is not
// a context error becomes ErrService.
func WrapError(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %w", op, ErrService, ErrDeadline)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, ErrCanceled)
	}
	if errors.Is(err, ErrService) || errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %v", op, ErrService, err)
}

// Kind is the stable, user-facing name of an error class.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrLocation):
		return "location"
	case errors.Is(err, ErrSessionNotFound):
		return "session_not_found"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrSuperseded):
		return "superseded"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrService):
		return "service"
	default:
		return "internal"
	}
}
