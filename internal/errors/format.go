//nolint:revive // Package name intentionally shadows stdlib errors for convenience.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
)

// Formatter formats errors for CLI output.
type Formatter struct {
	NoColor bool
	Writer  io.Writer

	errorColor    *color.Color
	codeColor     *color.Color
	valueColor    *color.Color
	hintColor     *color.Color
	expectedColor *color.Color
	gotColor      *color.Color
	dimColor      *color.Color
}

// NewFormatter creates a new Formatter.
func NewFormatter(w io.Writer, noColor bool) *Formatter {
	if noColor {
		color.NoColor = true
	}

	return &Formatter{
		NoColor:       noColor,
		Writer:        w,
		errorColor:    color.New(color.FgRed, color.Bold),
		codeColor:     color.New(color.FgRed),
		valueColor:    color.New(color.FgCyan),
		hintColor:     color.New(color.FgGreen),
		expectedColor: color.New(color.FgYellow),
		gotColor:      color.New(color.FgRed),
		dimColor:      color.New(color.FgHiBlack),
	}
}

// formatErrorHeader writes the error header with code.
// Format: "Error [E301]: message" or "Error: message" if no code.
func (f *Formatter) formatErrorHeader(sb *strings.Builder, code Code, message string) {
	sb.WriteString(f.errorColor.Sprint("Error"))
	if code != "" {
		sb.WriteString(" ")
		sb.WriteString(f.codeColor.Sprintf("[%s]", code))
	}
	sb.WriteString(f.errorColor.Sprint(": "))
	sb.WriteString(message)
	sb.WriteString("\n")
}

// Format formats an error for CLI display.
func (f *Formatter) Format(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	var procErr *ProcessError
	var notFoundErr *ToolNotFoundError
	var copyErr *CopyError
	var configErr *ConfigError
	var valErr *ValidationError
	var baseErr *Error

	switch {
	case errors.As(err, &procErr):
		f.formatProcessError(&sb, procErr)
	case errors.As(err, &notFoundErr):
		f.formatToolNotFoundError(&sb, notFoundErr)
	case errors.As(err, &copyErr):
		f.formatCopyError(&sb, copyErr)
	case errors.As(err, &configErr):
		f.formatConfigError(&sb, configErr)
	case errors.As(err, &valErr):
		f.formatValidationError(&sb, valErr)
	case errors.As(err, &baseErr):
		f.formatErrorHeader(&sb, baseErr.Code, baseErr.Message)
		f.formatCause(&sb, baseErr.Cause)
		f.formatTrailer(&sb, baseErr)
	default:
		sb.WriteString(f.errorColor.Sprint("Error: "))
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatJSON formats an error as JSON.
func (f *Formatter) FormatJSON(err error) ([]byte, error) {
	if err == nil {
		return nil, nil
	}

	var procErr *ProcessError
	var notFoundErr *ToolNotFoundError
	var copyErr *CopyError
	var configErr *ConfigError
	var valErr *ValidationError
	var baseErr *Error

	switch {
	case errors.As(err, &procErr):
		return json.MarshalIndent(procErr, "", "  ")
	case errors.As(err, &notFoundErr):
		return json.MarshalIndent(notFoundErr, "", "  ")
	case errors.As(err, &copyErr):
		return json.MarshalIndent(copyErr, "", "  ")
	case errors.As(err, &configErr):
		return json.MarshalIndent(configErr, "", "  ")
	case errors.As(err, &valErr):
		return json.MarshalIndent(valErr, "", "  ")
	case errors.As(err, &baseErr):
		return json.MarshalIndent(baseErr, "", "  ")
	default:
		return json.MarshalIndent(map[string]string{"error": err.Error()}, "", "  ")
	}
}

func (f *Formatter) formatProcessError(sb *strings.Builder, err *ProcessError) {
	f.formatErrorHeader(sb, err.Base.Code, err.Base.Message)
	sb.WriteString("\n")
	f.formatField(sb, "Command: ", f.valueColor.Sprint(err.Command))
	f.formatField(sb, "Status:  ", f.gotColor.Sprintf("%d", err.ExitCode))
	f.formatTrailer(sb, &err.Base)
}

func (f *Formatter) formatToolNotFoundError(sb *strings.Builder, err *ToolNotFoundError) {
	f.formatErrorHeader(sb, err.Base.Code, err.Base.Message)
	sb.WriteString("\n")
	f.formatField(sb, "Tool: ", f.valueColor.Sprint(err.Tool))
	f.formatCause(sb, err.Base.Cause)
	f.formatTrailer(sb, &err.Base)
}

func (f *Formatter) formatCopyError(sb *strings.Builder, err *CopyError) {
	f.formatErrorHeader(sb, err.Base.Code, err.Base.Message)
	sb.WriteString("\n")
	f.formatField(sb, "From: ", f.valueColor.Sprint(err.Source))
	f.formatField(sb, "To:   ", f.valueColor.Sprint(err.Destination))
	f.formatCause(sb, err.Base.Cause)
	f.formatTrailer(sb, &err.Base)
}

func (f *Formatter) formatConfigError(sb *strings.Builder, err *ConfigError) {
	f.formatErrorHeader(sb, err.Base.Code, err.Base.Message)
	sb.WriteString("\n")

	if err.File != "" {
		f.formatField(sb, "File: ", f.valueColor.Sprint(err.File))
	}
	if err.Line > 0 {
		loc := fmt.Sprintf("%d", err.Line)
		if err.Column > 0 {
			loc += fmt.Sprintf(":%d", err.Column)
		}
		f.formatField(sb, "Line: ", loc)
	}

	f.formatCause(sb, err.Base.Cause)
	f.formatTrailer(sb, &err.Base)
}

func (f *Formatter) formatValidationError(sb *strings.Builder, err *ValidationError) {
	f.formatErrorHeader(sb, err.Base.Code, err.Base.Message)
	sb.WriteString("\n")

	if err.Field != "" {
		f.formatField(sb, "Field:    ", err.Field)
	}
	if err.Expected != "" {
		f.formatField(sb, "Expected: ", f.expectedColor.Sprint(err.Expected))
	}
	if err.Got != "" {
		f.formatField(sb, "Got:      ", f.gotColor.Sprint(err.Got))
	}

	f.formatTrailer(sb, &err.Base)
}

func (f *Formatter) formatField(sb *strings.Builder, label, value string) {
	sb.WriteString("  ")
	sb.WriteString(f.dimColor.Sprint(label))
	sb.WriteString(value)
	sb.WriteString("\n")
}

func (f *Formatter) formatCause(sb *strings.Builder, cause error) {
	if cause == nil {
		return
	}
	sb.WriteString("\n  ")
	sb.WriteString(f.dimColor.Sprint("Cause: "))
	sb.WriteString(cause.Error())
	sb.WriteString("\n")
}

// formatTrailer writes details (sorted by key) and the hint.
func (f *Formatter) formatTrailer(sb *strings.Builder, err *Error) {
	if len(err.Details) > 0 {
		keys := make([]string, 0, len(err.Details))
		for k := range err.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteString("\n")
		for _, k := range keys {
			f.formatField(sb, k+": ", fmt.Sprint(err.Details[k]))
		}
	}

	if err.Hint != "" {
		sb.WriteString("\n")
		sb.WriteString(f.hintColor.Sprint("Hint: "))
		lines := strings.Split(err.Hint, "\n")
		sb.WriteString(lines[0])
		sb.WriteString("\n")
		for _, line := range lines[1:] {
			sb.WriteString("      ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
}
