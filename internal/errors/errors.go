// Package errors provides structured error types for the installer.
// Every error carries a category, a code and, where it helps, a hint that
// the CLI renders before exiting with the matching status.
//
//nolint:revive // Package name intentionally shadows stdlib errors for convenience.
package errors

import "errors"

// Category represents the classification of an error.
type Category string

const (
	CategoryConfig     Category = "config"
	CategoryValidation Category = "validation"
	CategoryProcess    Category = "process"
	CategoryFile       Category = "file"
)

// Code represents a machine-readable error code.
type Code string

const (
	// Config errors (E2xx)
	CodeConfigParse      Code = "E201"
	CodeValidationFailed Code = "E202"

	// Install step errors (E3xx)
	CodeToolNotFound  Code = "E301"
	CodeProcessFailed Code = "E302"
	CodeCopyFailed    Code = "E303"
)

// Exit statuses used when no child process status is available.
const (
	ExitFailure  = 1
	ExitNotFound = 127
)

// Error is the base error type.
type Error struct {
	// Category classifies the error type.
	Category Category `json:"category"`

	// Code is a machine-readable error code.
	Code Code `json:"code,omitempty"`

	// Message is a short description of the error.
	Message string `json:"message"`

	// Details contains additional context information.
	Details map[string]any `json:"details,omitempty"`

	// Hint provides actionable advice for the user.
	Hint string `json:"hint,omitempty"`

	// Cause is the underlying error.
	Cause error `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error.
// It matches if the target is an *Error with the same Code (if both have codes).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Code != "" && t.Code != "" {
		return e.Code == t.Code
	}
	return e.Category == t.Category && e.Message == t.Message
}

// WithHint sets the hint and returns the error for chaining.
func (e *Error) WithHint(hint string) *Error {
	e.Hint = hint
	return e
}

// WithDetail adds a detail and returns the error for chaining.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// ExitCode maps err to the process exit status.
// A failed child process propagates its own status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var procErr *ProcessError
	if errors.As(err, &procErr) && procErr.ExitCode > 0 {
		return procErr.ExitCode
	}

	var notFound *ToolNotFoundError
	if errors.As(err, &notFound) {
		return ExitNotFound
	}

	return ExitFailure
}
