package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/temirov/alchemist/internal/extract"
	"github.com/temirov/alchemist/internal/prompt"
	"github.com/temirov/alchemist/internal/scaffold"
	"github.com/temirov/alchemist/internal/types"
	"github.com/temirov/alchemist/internal/utils"
)

const (
	headerSetupFormat      = "🏗️ Setting up project structure for '%s'..."
	messageCreatedFormat   = "Created: %s"
	messageUpdatedFormat   = "Updated: %s (+%d -%d lines)"
	messageUnchangedFormat = "Unchanged: %s"
	messageWouldCreate     = "Would create: %s (+%d lines)"
	messageWouldOverwrite  = "Would overwrite: %s (+%d -%d lines)"
	messageSetupCompleted  = "Project setup completed!"
	messageDryRunCompleted = "Dry run completed, no files were written."
	warningNoFilesFound    = "Warning: the assistant reply did not contain any files."
	errorProjectType       = "unsupported project type %q"
	errorScaffoldFormat    = "write project files into %s: %w"
)

var supportedProjectTypes = []string{
	types.ProjectTypePython,
	types.ProjectTypeNode,
	types.ProjectTypeJava,
	types.ProjectTypeGeneral,
}

// Setup asks the assistant for the files of a new project and writes them
// below options.Path, which is created when missing. The project name
// defaults to the base name of the absolute target path.
func (orchestrator *Orchestrator) Setup(ctx context.Context, options types.SetupOptions) error {
	projectType := options.ProjectType
	if projectType == "" {
		projectType = types.ProjectTypeGeneral
	}
	if !utils.ContainsString(supportedProjectTypes, projectType) {
		return fmt.Errorf(errorProjectType, projectType)
	}
	orchestrator.console.Header(fmt.Sprintf(headerSetupFormat, options.Path))

	if !options.DryRun {
		if directoryError := ensureDirectory(options.Path); directoryError != nil {
			return directoryError
		}
	}
	projectName := options.Name
	if projectName == "" {
		absolutePath, absoluteError := filepath.Abs(options.Path)
		if absoluteError != nil {
			return fmt.Errorf(errorAbsolutePath, options.Path, absoluteError)
		}
		projectName = filepath.Base(absolutePath)
	}

	response := orchestrator.query(ctx, prompt.Setup(projectType, projectName))
	files := extract.Files(response)
	if len(files) == 0 {
		orchestrator.console.Warning(warningNoFilesFound)
	}

	writer := scaffold.NewWriter(options.Path, scaffold.Options{DryRun: options.DryRun, Logger: orchestrator.logger})
	results, writeError := writer.Write(files)
	for _, result := range results {
		orchestrator.reportScaffoldResult(result, options.DryRun)
	}
	if writeError != nil {
		return fmt.Errorf(errorScaffoldFormat, options.Path, writeError)
	}

	if options.DryRun {
		orchestrator.console.Success(messageDryRunCompleted)
		return nil
	}
	orchestrator.console.Success(messageSetupCompleted)
	return nil
}

// Rejected files are already reported by the scaffold writer.
func (orchestrator *Orchestrator) reportScaffoldResult(result scaffold.Result, dryRun bool) {
	switch result.Action {
	case scaffold.ActionCreate:
		if dryRun {
			orchestrator.console.Print(fmt.Sprintf(messageWouldCreate, result.TargetPath, result.LinesAdded))
			return
		}
		orchestrator.console.Success(fmt.Sprintf(messageCreatedFormat, result.TargetPath))
	case scaffold.ActionOverwrite:
		if dryRun {
			orchestrator.console.Print(fmt.Sprintf(messageWouldOverwrite, result.TargetPath, result.LinesAdded, result.LinesRemoved))
			return
		}
		orchestrator.console.Success(fmt.Sprintf(messageUpdatedFormat, result.TargetPath, result.LinesAdded, result.LinesRemoved))
	case scaffold.ActionUnchanged:
		orchestrator.console.Print(fmt.Sprintf(messageUnchangedFormat, result.TargetPath))
	}
}
