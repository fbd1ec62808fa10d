// Package commands runs each alchemist command: it reads the target, builds the
// prompt, queries the assistant and writes the formatted reply.
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/temirov/alchemist/internal/config"
	"github.com/temirov/alchemist/internal/console"
	"github.com/temirov/alchemist/internal/output"
	"github.com/temirov/alchemist/internal/services/clipboard"
	"github.com/temirov/alchemist/internal/tokenizer"
	"github.com/temirov/alchemist/internal/types"
	"github.com/temirov/alchemist/internal/utils"
)

var (
	// ErrPathNotFound reports a command target that does not exist.
	ErrPathNotFound = errors.New("path does not exist")
	// ErrFileRead reports a target file that could not be read.
	ErrFileRead = errors.New("file could not be read")
	// ErrUnsupportedCommand reports a command without a handler.
	ErrUnsupportedCommand = errors.New("unsupported command")
)

const (
	errorPathFormat        = "%w: %s"
	errorStatPathFormat    = "inspect %s: %w"
	errorAbsolutePath      = "resolve absolute path for %s: %w"
	errorReadFileFormat    = "%w: %s: %v"
	errorCommandFormat     = "%w: %s"
	errorUnsupportedFormat = "unsupported %s format %q"
	errorIgnorePatterns    = "load ignore patterns for %s: %w"
	errorCreateDirectory   = "create directory %s: %w"

	warningTokenCountFormat = "Warning: failed to count prompt tokens: %v"
	warningCopyFormat       = "Warning: failed to copy output to clipboard: %v"
	messageTokenCountFormat = "Prompt size: %d tokens (%s)"
	messageCopied           = "Output copied to clipboard"
	directoryPermissions    = 0o755
)

// Querier sends a prompt to the assistant and returns its sanitized reply.
// Failures come back as fixed error text rather than error values.
type Querier interface {
	Query(ctx context.Context, prompt string) string
}

// Dependencies holds everything the orchestrator needs from the outside.
// Copier is used by --copy and may be nil. TokenCounter, when set, logs the
// size of every prompt. Paths drives the ignore patterns of directory walks.
type Dependencies struct {
	Assistant    Querier
	Console      *console.Console
	Logger       *zap.Logger
	Copier       clipboard.Copier
	TokenCounter tokenizer.Counter
	Paths        config.PathConfiguration
	Clock        func() time.Time
}

// Request selects a command and carries its options. Only the options that
// belong to Command are read.
type Request struct {
	Command   types.Command
	Analyze   types.AnalyzeOptions
	Document  types.DocumentOptions
	Refactor  types.RefactorOptions
	Optimize  types.OptimizeOptions
	Dashboard types.DashboardOptions
	Setup     types.SetupOptions
	Transmute types.TransmuteOptions
}

type commandHandler func(ctx context.Context, request Request) error

// Orchestrator dispatches commands to their handlers.
type Orchestrator struct {
	assistant    Querier
	console      *console.Console
	logger       *zap.Logger
	copier       clipboard.Copier
	tokenCounter tokenizer.Counter
	paths        config.PathConfiguration
	clock        func() time.Time
	handlers     map[types.Command]commandHandler
}

// NewOrchestrator wires the handler table.
func NewOrchestrator(dependencies Dependencies) *Orchestrator {
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	outputConsole := dependencies.Console
	if outputConsole == nil {
		outputConsole = console.New(os.Stdout, os.Stderr, console.Options{})
	}
	clock := dependencies.Clock
	if clock == nil {
		clock = time.Now
	}
	orchestrator := &Orchestrator{
		assistant:    dependencies.Assistant,
		console:      outputConsole,
		logger:       logger,
		copier:       dependencies.Copier,
		tokenCounter: dependencies.TokenCounter,
		paths:        dependencies.Paths,
		clock:        clock,
	}
	orchestrator.handlers = map[types.Command]commandHandler{
		types.CommandAnalyze: func(ctx context.Context, request Request) error {
			return orchestrator.Analyze(ctx, request.Analyze)
		},
		types.CommandDocument: func(ctx context.Context, request Request) error {
			return orchestrator.Document(ctx, request.Document)
		},
		types.CommandRefactor: func(ctx context.Context, request Request) error {
			return orchestrator.Refactor(ctx, request.Refactor)
		},
		types.CommandOptimize: func(ctx context.Context, request Request) error {
			return orchestrator.Optimize(ctx, request.Optimize)
		},
		types.CommandDashboard: func(ctx context.Context, request Request) error {
			return orchestrator.Dashboard(ctx, request.Dashboard)
		},
		types.CommandSetup: func(ctx context.Context, request Request) error {
			return orchestrator.Setup(ctx, request.Setup)
		},
		types.CommandTransmute: func(ctx context.Context, request Request) error {
			return orchestrator.Transmute(ctx, request.Transmute)
		},
	}
	return orchestrator
}

// Execute runs the handler registered for request.Command.
func (orchestrator *Orchestrator) Execute(ctx context.Context, request Request) error {
	handler, registered := orchestrator.handlers[request.Command]
	if !registered {
		return fmt.Errorf(errorCommandFormat, ErrUnsupportedCommand, request.Command)
	}
	return handler(ctx, request)
}

// validatePath confirms that path exists and records whether it is a directory.
func validatePath(path string) (types.ValidatedPath, error) {
	info, statError := os.Stat(path)
	if statError != nil {
		if errors.Is(statError, os.ErrNotExist) {
			return types.ValidatedPath{}, fmt.Errorf(errorPathFormat, ErrPathNotFound, path)
		}
		return types.ValidatedPath{}, fmt.Errorf(errorStatPathFormat, path, statError)
	}
	absolutePath, absoluteError := filepath.Abs(path)
	if absoluteError != nil {
		return types.ValidatedPath{}, fmt.Errorf(errorAbsolutePath, path, absoluteError)
	}
	return types.ValidatedPath{InputPath: path, AbsolutePath: absolutePath, IsDir: info.IsDir()}, nil
}

// readSourceFile returns the file content with invalid UTF-8 bytes dropped.
//
// #nosec G304
func readSourceFile(path string) (string, error) {
	content, readError := os.ReadFile(path)
	if readError != nil {
		return "", fmt.Errorf(errorReadFileFormat, ErrFileRead, path, readError)
	}
	return strings.ToValidUTF8(string(content), ""), nil
}

func (orchestrator *Orchestrator) ignorePatterns(root string) ([]string, error) {
	patterns, loadError := config.LoadRecursiveIgnorePatterns(root, orchestrator.paths.Exclude, orchestrator.paths.IgnoreOptions())
	if loadError != nil {
		return nil, fmt.Errorf(errorIgnorePatterns, root, loadError)
	}
	return patterns, nil
}

func (orchestrator *Orchestrator) query(ctx context.Context, prompt string) string {
	if orchestrator.tokenCounter != nil {
		tokenCount, countError := orchestrator.tokenCounter.CountString(prompt)
		if countError != nil {
			orchestrator.logger.Warn(fmt.Sprintf(warningTokenCountFormat, countError))
		} else {
			orchestrator.logger.Info(fmt.Sprintf(messageTokenCountFormat, tokenCount, orchestrator.tokenCounter.Name()))
		}
	}
	return orchestrator.assistant.Query(ctx, prompt)
}

func (orchestrator *Orchestrator) timestamp() string {
	return utils.FormatTimestamp(orchestrator.clock())
}

// deliver writes content to outputPath, or to stdout when no path is given,
// and optionally copies it to the clipboard.
func (orchestrator *Orchestrator) deliver(content string, outputPath string, copyToClipboard bool, savedFormat string) error {
	if outputPath != "" {
		if writeError := output.WriteFile(outputPath, content); writeError != nil {
			return writeError
		}
		orchestrator.console.Success(fmt.Sprintf(savedFormat, outputPath))
	} else {
		orchestrator.console.Print(content)
	}
	if copyToClipboard && orchestrator.copier != nil {
		if copyError := orchestrator.copier.Copy(content); copyError != nil {
			orchestrator.console.Warning(fmt.Sprintf(warningCopyFormat, copyError))
		} else {
			orchestrator.console.Success(messageCopied)
		}
	}
	return nil
}

func ensureDirectory(path string) error {
	if makeError := os.MkdirAll(path, directoryPermissions); makeError != nil {
		return fmt.Errorf(errorCreateDirectory, path, makeError)
	}
	return nil
}
