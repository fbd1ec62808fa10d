package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/alchemist/internal/config"
	"github.com/temirov/alchemist/internal/output"
	"github.com/temirov/alchemist/internal/prompt"
	"github.com/temirov/alchemist/internal/stats"
	"github.com/temirov/alchemist/internal/types"
	"github.com/temirov/alchemist/internal/utils"
)

const (
	headerDashboardFormat = "📊 Generating project dashboard for '%s'..."
	savedDashboardFormat  = "Dashboard saved to '%s'"
	messageStatsGathered  = "Project statistics gathered"
	errorGatherStats      = "gather statistics for %s: %w"
)

// Dashboard gathers statistics for a project directory and writes the
// assistant's dashboard built from them. A file target yields empty
// statistics named after the file.
func (orchestrator *Orchestrator) Dashboard(ctx context.Context, options types.DashboardOptions) error {
	target, validationError := validatePath(options.Path)
	if validationError != nil {
		return validationError
	}
	orchestrator.console.Header(fmt.Sprintf(headerDashboardFormat, options.Path))

	projectStats := stats.ProjectStats{
		ProjectName: filepath.Base(target.AbsolutePath),
		FileTypes:   map[string]int{},
	}
	if target.IsDir {
		ignorePatterns, patternError := orchestrator.ignorePatterns(target.AbsolutePath)
		if patternError != nil {
			return patternError
		}
		gathered, gatherError := stats.Gather(target.AbsolutePath, stats.Options{IgnorePatterns: ignorePatterns, Logger: orchestrator.logger})
		if gatherError != nil {
			return fmt.Errorf(errorGatherStats, options.Path, gatherError)
		}
		projectStats = gathered
	}
	orchestrator.logger.Debug(messageStatsGathered,
		zap.String("project", projectStats.ProjectName),
		zap.Int("files", projectStats.FileCount),
		zap.Int("directories", projectStats.DirectoryCount),
		zap.Int("lines", projectStats.TotalLines),
		zap.String("largest_file", projectStats.LargestFile.Name),
		zap.String("largest_size", utils.FormatFileSize(projectStats.LargestFile.Size)),
	)

	dashboardPrompt, promptError := prompt.Dashboard(options.Path, projectStats)
	if promptError != nil {
		return promptError
	}
	response := orchestrator.query(ctx, dashboardPrompt)

	outputPath := options.Output
	if outputPath == "" {
		outputPath = config.DefaultDashboardOutput
	}
	if writeError := output.WriteFile(outputPath, response); writeError != nil {
		return writeError
	}
	orchestrator.console.Success(fmt.Sprintf(savedDashboardFormat, outputPath))
	return nil
}
