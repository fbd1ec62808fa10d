// Package prompt assembles the requests sent to the assistant for each command.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/temirov/alchemist/internal/stats"
)

// DirectoryListingLimit caps how many paths a directory analysis prompt lists.
const DirectoryListingLimit = 50

const (
	pathKindFile      = "file"
	pathKindDirectory = "directory"

	analyzeIntroTemplate      = "I'm going to share a %s with you for analysis. Path: %s\n\n"
	analyzeFileTemplate       = "Here's the content of %s:\n\n```\n%s\n```\n\n"
	analyzeDirectoryTemplate  = "Directory analysis for %s. File list:\n\n"
	analyzeOverflowTemplate   = "\n... and %d more files."
	analyzeClosingInstruction = "\n\nProvide detailed assessment of code quality, structure, and organization."
	documentTemplate          = "Generate documentation for %s:\n\n```\n%s\n```"
	refactorTemplate          = "Suggest refactoring for %s:\n\n```\n%s\n```"
	optimizeTemplate          = "Suggest %s optimizations for %s:\n\n```\n%s\n```"
	dashboardTemplate         = "Generate project dashboard for %s with stats: %s"
	setupTemplate             = "Setup %s project '%s' structure with config files"
	errorEncodeStats          = "encode project stats: %w"
)

// AnalyzeFile asks for a quality assessment of one file.
func AnalyzeFile(path string, content string) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, analyzeIntroTemplate, pathKindFile, path)
	fmt.Fprintf(&builder, analyzeFileTemplate, path, content)
	builder.WriteString(analyzeClosingInstruction)
	return builder.String()
}

// AnalyzeDirectory asks for a quality assessment of a directory described by
// its file list. Only the first DirectoryListingLimit paths are included.
func AnalyzeDirectory(path string, relativeFiles []string) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, analyzeIntroTemplate, pathKindDirectory, path)
	fmt.Fprintf(&builder, analyzeDirectoryTemplate, path)
	listedFiles := relativeFiles
	if len(listedFiles) > DirectoryListingLimit {
		listedFiles = listedFiles[:DirectoryListingLimit]
	}
	builder.WriteString(strings.Join(listedFiles, "\n"))
	if remaining := len(relativeFiles) - len(listedFiles); remaining > 0 {
		fmt.Fprintf(&builder, analyzeOverflowTemplate, remaining)
	}
	builder.WriteString(analyzeClosingInstruction)
	return builder.String()
}

// Document asks for documentation of one file.
func Document(path string, content string) string {
	return fmt.Sprintf(documentTemplate, path, content)
}

// Refactor asks for refactoring suggestions for one file.
func Refactor(path string, content string) string {
	return fmt.Sprintf(refactorTemplate, path, content)
}

// Optimize asks for optimizations of one file in the given focus, for example
// "security and performance".
func Optimize(path string, focus string, content string) string {
	return fmt.Sprintf(optimizeTemplate, focus, path, content)
}

// Dashboard asks for a project dashboard seeded with gathered statistics.
func Dashboard(path string, projectStats stats.ProjectStats) (string, error) {
	encodedStats, encodeError := json.Marshal(projectStats)
	if encodeError != nil {
		return "", fmt.Errorf(errorEncodeStats, encodeError)
	}
	return fmt.Sprintf(dashboardTemplate, path, encodedStats), nil
}

// Setup asks for the files of a new project.
func Setup(projectType string, projectName string) string {
	return fmt.Sprintf(setupTemplate, projectType, projectName)
}

// Focus joins the selected optimization areas. With neither selected both apply.
func Focus(security bool, performance bool) string {
	var areas []string
	if security {
		areas = append(areas, "security")
	}
	if performance {
		areas = append(areas, "performance")
	}
	if len(areas) == 0 {
		areas = []string{"security", "performance"}
	}
	return strings.Join(areas, " and ")
}
