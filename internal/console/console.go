// Package console writes user-facing status lines, styled with lipgloss when
// the destination is a terminal, and shows a spinner while the assistant works.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const (
	colorHeader  = "13"
	colorSuccess = "10"
	colorWarning = "11"
	colorError   = "9"
)

// Options controls styling.
type Options struct {
	NoColor bool
}

// Console is the diagnostics sink shared by every command. Reports go to
// stdout unstyled; status lines are styled, errors and warnings go to stderr.
type Console struct {
	stdout         io.Writer
	stderr         io.Writer
	colorEnabled   bool
	spinnerEnabled bool
	headerStyle    lipgloss.Style
	successStyle   lipgloss.Style
	warningStyle   lipgloss.Style
	errorStyle     lipgloss.Style
}

// New builds a Console over the given writers.
func New(stdout io.Writer, stderr io.Writer, options Options) *Console {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	stdoutRenderer := lipgloss.NewRenderer(stdout)
	stderrRenderer := lipgloss.NewRenderer(stderr)
	return &Console{
		stdout:         stdout,
		stderr:         stderr,
		colorEnabled:   !options.NoColor,
		spinnerEnabled: IsTerminal(stderr),
		headerStyle:    stdoutRenderer.NewStyle().Foreground(lipgloss.Color(colorHeader)),
		successStyle:   stdoutRenderer.NewStyle().Foreground(lipgloss.Color(colorSuccess)),
		warningStyle:   stderrRenderer.NewStyle().Foreground(lipgloss.Color(colorWarning)),
		errorStyle:     stderrRenderer.NewStyle().Foreground(lipgloss.Color(colorError)),
	}
}

// IsTerminal reports whether writer is an interactive terminal.
func IsTerminal(writer io.Writer) bool {
	fileHandle, isFile := writer.(*os.File)
	if !isFile {
		return false
	}
	return term.IsTerminal(int(fileHandle.Fd()))
}

// Stdout returns the report destination.
func (console *Console) Stdout() io.Writer {
	return console.stdout
}

// Header announces the start of a command.
func (console *Console) Header(message string) {
	console.writeLine(console.stdout, console.headerStyle, message)
}

// Success reports a completed step.
func (console *Console) Success(message string) {
	console.writeLine(console.stdout, console.successStyle, message)
}

// Warning reports a recoverable problem.
func (console *Console) Warning(message string) {
	console.writeLine(console.stderr, console.warningStyle, message)
}

// Error reports a failed step that does not abort the program.
func (console *Console) Error(message string) {
	console.writeLine(console.stderr, console.errorStyle, message)
}

// Print writes report text verbatim followed by a newline.
func (console *Console) Print(text string) {
	_, _ = fmt.Fprintln(console.stdout, text)
}

func (console *Console) writeLine(writer io.Writer, style lipgloss.Style, message string) {
	if console.colorEnabled {
		message = style.Render(message)
	}
	_, _ = fmt.Fprintln(writer, message)
}
