//nolint:revive // Package name intentionally shadows stdlib errors for convenience.
package errors

import "fmt"

// ProcessError represents a child process that exited with a non-zero status.
type ProcessError struct {
	Base Error `json:"error"`

	// Command is the command line that was executed.
	Command string `json:"command"`

	// ExitCode is the child's exit status.
	ExitCode int `json:"exitCode"`
}

// NewProcessError creates a ProcessError.
func NewProcessError(command string, exitCode int, cause error) *ProcessError {
	return &ProcessError{
		Base: Error{
			Category: CategoryProcess,
			Code:     CodeProcessFailed,
			Message:  fmt.Sprintf("command exited with status %d", exitCode),
			Cause:    cause,
		},
		Command:  command,
		ExitCode: exitCode,
	}
}

// Error implements the error interface.
func (e *ProcessError) Error() string {
	return e.Command + ": " + e.Base.Error()
}

// Unwrap returns the underlying error.
func (e *ProcessError) Unwrap() error {
	return e.Base.Cause
}

// Is reports whether the target error matches this error by code.
func (e *ProcessError) Is(target error) bool {
	t, ok := target.(*ProcessError)
	if !ok {
		return false
	}
	return e.Base.Code == t.Base.Code
}

// ToolNotFoundError represents an executable that could not be launched.
type ToolNotFoundError struct {
	Base Error `json:"error"`

	// Tool is the executable name or path that failed to start.
	Tool string `json:"tool"`
}

// NewToolNotFoundError creates a ToolNotFoundError.
func NewToolNotFoundError(tool string, cause error) *ToolNotFoundError {
	return &ToolNotFoundError{
		Base: Error{
			Category: CategoryProcess,
			Code:     CodeToolNotFound,
			Message:  fmt.Sprintf("%s could not be started", tool),
			Cause:    cause,
		},
		Tool: tool,
	}
}

// WithHint sets the hint.
func (e *ToolNotFoundError) WithHint(hint string) *ToolNotFoundError {
	e.Base.Hint = hint
	return e
}

// Error implements the error interface.
func (e *ToolNotFoundError) Error() string {
	return e.Base.Error()
}

// Unwrap returns the underlying error.
func (e *ToolNotFoundError) Unwrap() error {
	return e.Base.Cause
}

// Is reports whether the target error matches this error by code.
func (e *ToolNotFoundError) Is(target error) bool {
	t, ok := target.(*ToolNotFoundError)
	if !ok {
		return false
	}
	return e.Base.Code == t.Base.Code
}

// CopyError represents a failure copying the stub configuration file.
type CopyError struct {
	Base Error `json:"error"`

	// Source is the file being copied.
	Source string `json:"source"`

	// Destination is the target path.
	Destination string `json:"destination"`
}

// NewCopyError creates a CopyError.
func NewCopyError(source, destination string, cause error) *CopyError {
	return &CopyError{
		Base: Error{
			Category: CategoryFile,
			Code:     CodeCopyFailed,
			Message:  "failed to copy stub file",
			Cause:    cause,
		},
		Source:      source,
		Destination: destination,
	}
}

// Error implements the error interface.
func (e *CopyError) Error() string {
	return e.Base.Error()
}

// Unwrap returns the underlying error.
func (e *CopyError) Unwrap() error {
	return e.Base.Cause
}

// Is reports whether the target error matches this error by code.
func (e *CopyError) Is(target error) bool {
	t, ok := target.(*CopyError)
	if !ok {
		return false
	}
	return e.Base.Code == t.Base.Code
}
