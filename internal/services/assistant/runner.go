// Package assistant runs the external AI chat tool and turns its replies into clean text.
package assistant

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/temirov/alchemist/internal/sanitize"
)

const (
	// DefaultExecutable is the Amazon Q Developer CLI.
	DefaultExecutable = "q"

	// DefaultTimeout bounds a single query.
	DefaultTimeout = 300 * time.Second

	// VersionTimeout bounds the dependency check.
	VersionTimeout = 10 * time.Second
)

const (
	promptFilePattern    = "alchemist-prompt-*.txt"
	versionArgument      = "--version"
	processWaitDelay     = 2 * time.Second
	errorEmptyExecutable = "assistant executable not configured"
	errorCreatePrompt    = "create prompt file: %w"
	errorWritePrompt     = "write prompt file: %w"
	errorStart           = "start %s: %w"
	errorTimeoutFormat   = "%w after %s"
)

// DefaultArguments are passed to DefaultExecutable on every query.
var DefaultArguments = []string{"chat", "--trust-all-tools"}

// Runner sends a prompt to the assistant and returns its raw reply.
type Runner interface {
	Run(ctx context.Context, prompt string) (string, error)
}

// Configuration describes how the assistant process is started.
type Configuration struct {
	Executable string
	Arguments  []string
	Timeout    time.Duration
}

// DefaultConfiguration returns the Amazon Q invocation with the standard timeout.
func DefaultConfiguration() Configuration {
	return Configuration{
		Executable: DefaultExecutable,
		Arguments:  append([]string(nil), DefaultArguments...),
		Timeout:    DefaultTimeout,
	}
}

// ExecRunner runs the assistant as a child process, feeding the prompt on
// standard input from a temporary file.
type ExecRunner struct {
	configuration Configuration
}

// NewExecRunner constructs an ExecRunner. A zero timeout selects DefaultTimeout.
func NewExecRunner(configuration Configuration) *ExecRunner {
	if configuration.Timeout <= 0 {
		configuration.Timeout = DefaultTimeout
	}
	return &ExecRunner{configuration: configuration}
}

// Executable returns the configured program name.
func (runner *ExecRunner) Executable() string {
	return runner.configuration.Executable
}

// Run executes one query. The returned text is trimmed and stripped of
// invalid UTF-8 but otherwise unprocessed.
func (runner *ExecRunner) Run(ctx context.Context, prompt string) (string, error) {
	executable := strings.TrimSpace(runner.configuration.Executable)
	if executable == "" {
		return "", fmt.Errorf("%w: %s", ErrExecution, errorEmptyExecutable)
	}

	promptFile, createError := os.CreateTemp("", promptFilePattern)
	if createError != nil {
		return "", fmt.Errorf("%w: "+errorCreatePrompt, ErrExecution, createError)
	}
	defer func() {
		_ = promptFile.Close()
		_ = os.Remove(promptFile.Name())
	}()
	if _, writeError := promptFile.WriteString(prompt); writeError != nil {
		return "", fmt.Errorf("%w: "+errorWritePrompt, ErrExecution, writeError)
	}
	if _, seekError := promptFile.Seek(0, io.SeekStart); seekError != nil {
		return "", fmt.Errorf("%w: "+errorWritePrompt, ErrExecution, seekError)
	}

	timeoutContext, cancel := context.WithTimeout(ctx, runner.configuration.Timeout)
	defer cancel()

	stdoutBytes, stderrBytes, waitError := runProcess(timeoutContext, executable, runner.configuration.Arguments, promptFile)
	if errors.Is(timeoutContext.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		return "", fmt.Errorf(errorTimeoutFormat, ErrTimeout, runner.configuration.Timeout)
	}
	if waitError != nil {
		var exitError *exec.ExitError
		if errors.As(waitError, &exitError) && ctx.Err() == nil {
			return "", &ToolFailureError{
				ExitCode: exitError.ExitCode(),
				Stderr:   sanitize.Clean(strings.ToValidUTF8(string(stderrBytes), "")),
			}
		}
		return "", fmt.Errorf("%w: %w", ErrExecution, waitError)
	}
	return strings.TrimSpace(strings.ToValidUTF8(string(stdoutBytes), "")), nil
}

// Version runs the assistant with --version and returns its trimmed output.
func (runner *ExecRunner) Version(ctx context.Context) (string, error) {
	executable := strings.TrimSpace(runner.configuration.Executable)
	if executable == "" {
		return "", fmt.Errorf("%w: %s", ErrExecution, errorEmptyExecutable)
	}
	versionContext, cancel := context.WithTimeout(ctx, VersionTimeout)
	defer cancel()

	stdoutBytes, stderrBytes, waitError := runProcess(versionContext, executable, []string{versionArgument}, nil)
	if waitError != nil {
		var exitError *exec.ExitError
		if errors.As(waitError, &exitError) {
			return "", &ToolFailureError{ExitCode: exitError.ExitCode(), Stderr: sanitize.Clean(string(stderrBytes))}
		}
		return "", fmt.Errorf("%w: %w", ErrExecution, waitError)
	}
	return strings.TrimSpace(sanitize.Clean(string(stdoutBytes))), nil
}

// runProcess runs the program with its output collected by exec. When ctx
// ends, the process is killed and Wait closes the output pipes after
// processWaitDelay even if a grandchild still holds them open.
func runProcess(ctx context.Context, executable string, arguments []string, stdin io.Reader) ([]byte, []byte, error) {
	command := exec.CommandContext(ctx, executable, arguments...)
	command.Stdin = stdin
	command.WaitDelay = processWaitDelay

	var stdoutBuffer, stderrBuffer bytes.Buffer
	command.Stdout = &stdoutBuffer
	command.Stderr = &stderrBuffer
	if startError := command.Start(); startError != nil {
		return nil, nil, fmt.Errorf(errorStart, executable, startError)
	}
	waitError := command.Wait()
	return stdoutBuffer.Bytes(), stderrBuffer.Bytes(), waitError
}
