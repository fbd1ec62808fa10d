package assistant

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/alchemist/internal/sanitize"
)

const (
	// FailedResponseMessage replaces the reply when the assistant exits with an error.
	FailedResponseMessage = "Error: Failed to get response from the assistant"

	// UnexpectedErrorMessage replaces the reply on timeouts and launch failures.
	UnexpectedErrorMessage = "Error: Unexpected error during processing"
)

const (
	queryDescription        = "Querying assistant..."
	toolErrorLogFormat      = "Assistant error: %s"
	executionErrorLogFormat = "Command execution error: %v"
)

// ActivityIndicator is notified while a query is in flight.
type ActivityIndicator interface {
	Start(description string) (stop func())
}

type silentIndicator struct{}

func (silentIndicator) Start(string) func() { return func() {} }

// Client is the caller-facing query API. It never returns an error; failures
// are logged and replaced by a fixed message.
type Client struct {
	runner    Runner
	logger    *zap.Logger
	indicator ActivityIndicator
}

// NewClient wires a Runner with a logger and an optional activity indicator.
func NewClient(runner Runner, logger *zap.Logger, indicator ActivityIndicator) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if indicator == nil {
		indicator = silentIndicator{}
	}
	return &Client{runner: runner, logger: logger, indicator: indicator}
}

// Query sends prompt to the assistant and returns the sanitized reply.
func (client *Client) Query(ctx context.Context, prompt string) string {
	stopIndicator := client.indicator.Start(queryDescription)
	response, runError := client.runner.Run(ctx, prompt)
	stopIndicator()

	if runError == nil {
		return sanitize.Clean(response)
	}
	var toolFailure *ToolFailureError
	if errors.As(runError, &toolFailure) {
		client.logger.Error(fmt.Sprintf(toolErrorLogFormat, toolFailure.Stderr))
		return FailedResponseMessage
	}
	client.logger.Error(fmt.Sprintf(executionErrorLogFormat, runError))
	return UnexpectedErrorMessage
}
