// Package ui renders the installer's own console output.
package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Style holds common output styling for CLI commands.
type Style struct {
	Info *color.Color
	Path *color.Color
}

// NewStyle creates a new Style with standard colors.
func NewStyle() *Style {
	return &Style{
		Info: color.New(color.FgGreen),
		Path: color.New(color.FgCyan),
	}
}

// Printer writes progress lines around the output of child processes.
type Printer struct {
	w     io.Writer
	style *Style
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w:     w,
		style: NewStyle(),
	}
}

// Info prints an informational line, such as the command about to run.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.w, p.style.Info.Sprintf(format, args...))
}

// Copying announces the stub copy.
func (p *Printer) Copying(src, dst string) {
	fmt.Fprintf(p.w, "%s %s %s %s\n",
		p.style.Info.Sprint("Copying file"),
		p.style.Path.Sprint(src),
		p.style.Info.Sprint("into"),
		p.style.Path.Sprint(dst))
}

// Output writes one line of child process output unchanged.
func (p *Printer) Output(line string) {
	fmt.Fprintln(p.w, line)
}
