package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// TaskErrorType categorizes the failures that can occur around effect execution.
type TaskErrorType string

const (
	// MisuseError marks programming errors: an abstract Perform, missing
	// handlers, an effect reaching the reducer. These are never recovered.
	MisuseError     TaskErrorType = "misuse"
	EffectError     TaskErrorType = "effect"
	ValidationError TaskErrorType = "validation"
	NotFoundError   TaskErrorType = "not_found"
	InternalError   TaskErrorType = "internal"
)

// ErrNotImplemented is raised by the base task when it is performed directly.
var ErrNotImplemented = &TaskError{
	Type:    MisuseError,
	Message: "perform is not implemented: concrete tasks must provide their own Perform",
	Code:    http.StatusInternalServerError,
}

// TaskError provides structured error information with HTTP status suggestions
type TaskError struct {
	Type    TaskErrorType  `json:"type"`
	Message string         `json:"message"`
	Code    int            `json:"code"`
	Details map[string]any `json:"details,omitempty"`
	Cause   error          `json:"-"`
}

func (e *TaskError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *TaskError) Unwrap() error {
	return e.Cause
}

func firstDetails(details []map[string]any) map[string]any {
	if len(details) > 0 {
		return details[0]
	}
	return nil
}

func NewMisuseError(message string, details ...map[string]any) *TaskError {
	return &TaskError{
		Type:    MisuseError,
		Message: message,
		Code:    http.StatusInternalServerError,
		Details: firstDetails(details),
	}
}

// NewEffectError wraps the error returned by a capability call.
func NewEffectError(message string, cause error, details ...map[string]any) *TaskError {
	return &TaskError{
		Type:    EffectError,
		Message: message,
		Code:    http.StatusBadGateway,
		Details: firstDetails(details),
		Cause:   cause,
	}
}

func NewValidationError(message string, details ...map[string]any) *TaskError {
	return &TaskError{
		Type:    ValidationError,
		Message: message,
		Code:    http.StatusBadRequest,
		Details: firstDetails(details),
	}
}

func NewNotFoundError(message string) *TaskError {
	return &TaskError{
		Type:    NotFoundError,
		Message: message,
		Code:    http.StatusNotFound,
	}
}

func NewInternalError(message string) *TaskError {
	return &TaskError{
		Type:    InternalError,
		Message: message,
		Code:    http.StatusInternalServerError,
	}
}

// IsTaskError reports whether err, or any error it wraps, is a TaskError.
func IsTaskError(err error) (*TaskError, bool) {
	var taskErr *TaskError
	if stderrors.As(err, &taskErr) {
		return taskErr, true
	}
	return nil, false
}
