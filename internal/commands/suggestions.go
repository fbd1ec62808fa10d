package commands

import (
	"context"
	"fmt"

	"github.com/temirov/alchemist/internal/output"
	"github.com/temirov/alchemist/internal/prompt"
	"github.com/temirov/alchemist/internal/types"
)

const (
	headerRefactorFormat  = "🔄 Analyzing '%s' for refactoring opportunities..."
	headerOptimizeFormat  = "⚡ Analyzing '%s' for optimization opportunities..."
	savedSuggestionFormat = "Suggestions saved to '%s'"
	errorRefactorFileOnly = "Error: Refactoring currently supports single files only."
	errorOptimizeFileOnly = "Error: Optimization currently supports single files only."
	warningAutoApply      = "Warning: Auto-apply not implemented yet. Review suggestions manually."
)

// Refactor asks for refactoring suggestions for a single file.
func (orchestrator *Orchestrator) Refactor(ctx context.Context, options types.RefactorOptions) error {
	target, validationError := validatePath(options.Path)
	if validationError != nil {
		return validationError
	}
	orchestrator.console.Header(fmt.Sprintf(headerRefactorFormat, options.Path))
	if target.IsDir {
		orchestrator.console.Error(errorRefactorFileOnly)
		return nil
	}

	content, readError := readSourceFile(options.Path)
	if readError != nil {
		return readError
	}
	response := orchestrator.query(ctx, prompt.Refactor(options.Path, content))
	rendered := output.RenderBanner(output.RefactoringTitle, options.Path, response)
	if deliverError := orchestrator.deliver(rendered, options.Output, options.Copy, savedSuggestionFormat); deliverError != nil {
		return deliverError
	}
	if options.Apply {
		orchestrator.console.Warning(warningAutoApply)
	}
	return nil
}

// Optimize asks for security and/or performance improvements for a single
// file. Selecting neither area selects both.
func (orchestrator *Orchestrator) Optimize(ctx context.Context, options types.OptimizeOptions) error {
	target, validationError := validatePath(options.Path)
	if validationError != nil {
		return validationError
	}
	orchestrator.console.Header(fmt.Sprintf(headerOptimizeFormat, options.Path))
	if target.IsDir {
		orchestrator.console.Error(errorOptimizeFileOnly)
		return nil
	}

	content, readError := readSourceFile(options.Path)
	if readError != nil {
		return readError
	}
	focus := prompt.Focus(options.Security, options.Performance)
	response := orchestrator.query(ctx, prompt.Optimize(options.Path, focus, content))
	rendered := output.RenderBanner(output.OptimizationTitle(focus), options.Path, response)
	return orchestrator.deliver(rendered, options.Output, options.Copy, savedSuggestionFormat)
}
