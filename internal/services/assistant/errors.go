package assistant

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout reports that the assistant did not finish before the deadline.
	ErrTimeout = errors.New("assistant timed out")
	// ErrToolFailed reports that the assistant exited with a non-zero status.
	ErrToolFailed = errors.New("assistant exited with an error")
	// ErrExecution reports that the assistant could not be launched or its I/O failed.
	ErrExecution = errors.New("assistant execution failed")
)

// ToolFailureError carries the exit status and sanitized stderr of a failed run.
type ToolFailureError struct {
	ExitCode int
	Stderr   string
}

func (failure *ToolFailureError) Error() string {
	if failure.Stderr == "" {
		return fmt.Sprintf("%s: exit status %d", ErrToolFailed, failure.ExitCode)
	}
	return fmt.Sprintf("%s: exit status %d: %s", ErrToolFailed, failure.ExitCode, failure.Stderr)
}

func (failure *ToolFailureError) Unwrap() error {
	return ErrToolFailed
}
