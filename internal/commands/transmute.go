package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/temirov/alchemist/internal/config"
	"github.com/temirov/alchemist/internal/types"
)

const (
	headerTransmuteFormat  = "✨ Transmuting '%s' - Running full code alchemy..."
	messageTransmuteDone   = "✨ Transmutation complete! Outputs in '%s'"
	transmuteAnalysisFile  = "analysis.md"
	transmuteDocsDirectory = "docs"
	transmuteRefactorFile  = "refactoring.md"
	transmuteOptimizeFile  = "optimizations.md"
	transmuteDashboardFile = "PROJECT_DASHBOARD.md"
	errorTransmuteStep     = "transmute %s: %w"
)

type transmuteStep struct {
	command types.Command
	run     func(ctx context.Context) error
}

// Transmute runs every applicable command against one target. A file gets an
// analysis, documentation, refactoring and optimization suggestions, and a
// dashboard of its parent directory. A directory gets a dashboard only.
// Steps that report a problem on the console do not stop the sequence; a
// returned error aborts the remaining steps.
func (orchestrator *Orchestrator) Transmute(ctx context.Context, options types.TransmuteOptions) error {
	target, validationError := validatePath(options.Path)
	if validationError != nil {
		return validationError
	}
	orchestrator.console.Header(fmt.Sprintf(headerTransmuteFormat, options.Path))

	outputDirectory := options.OutputDir
	if outputDirectory == "" {
		outputDirectory = config.DefaultTransmuteOutput
	}
	if directoryError := ensureDirectory(outputDirectory); directoryError != nil {
		return directoryError
	}

	for _, step := range orchestrator.transmuteSteps(target, outputDirectory) {
		if stepError := step.run(ctx); stepError != nil {
			return fmt.Errorf(errorTransmuteStep, step.command, stepError)
		}
	}
	orchestrator.console.Success(fmt.Sprintf(messageTransmuteDone, outputDirectory))
	return nil
}

func (orchestrator *Orchestrator) transmuteSteps(target types.ValidatedPath, outputDirectory string) []transmuteStep {
	dashboardFile := filepath.Join(outputDirectory, transmuteDashboardFile)
	if target.IsDir {
		return []transmuteStep{
			{command: types.CommandDashboard, run: func(ctx context.Context) error {
				return orchestrator.Dashboard(ctx, types.DashboardOptions{Path: target.InputPath, Output: dashboardFile})
			}},
		}
	}
	return []transmuteStep{
		{command: types.CommandAnalyze, run: func(ctx context.Context) error {
			return orchestrator.Analyze(ctx, types.AnalyzeOptions{
				Path:   target.InputPath,
				Output: filepath.Join(outputDirectory, transmuteAnalysisFile),
				Format: types.FormatMarkdown,
			})
		}},
		{command: types.CommandDocument, run: func(ctx context.Context) error {
			return orchestrator.Document(ctx, types.DocumentOptions{
				Path:      target.InputPath,
				OutputDir: filepath.Join(outputDirectory, transmuteDocsDirectory),
				Format:    types.FormatMarkdown,
			})
		}},
		{command: types.CommandRefactor, run: func(ctx context.Context) error {
			return orchestrator.Refactor(ctx, types.RefactorOptions{
				Path:   target.InputPath,
				Output: filepath.Join(outputDirectory, transmuteRefactorFile),
			})
		}},
		{command: types.CommandOptimize, run: func(ctx context.Context) error {
			return orchestrator.Optimize(ctx, types.OptimizeOptions{
				Path:        target.InputPath,
				Output:      filepath.Join(outputDirectory, transmuteOptimizeFile),
				Security:    true,
				Performance: true,
			})
		}},
		{command: types.CommandDashboard, run: func(ctx context.Context) error {
			return orchestrator.Dashboard(ctx, types.DashboardOptions{
				Path:   filepath.Dir(target.AbsolutePath),
				Output: dashboardFile,
			})
		}},
	}
}
