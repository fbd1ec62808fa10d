package commands

import (
	"context"
	"fmt"

	"github.com/temirov/alchemist/internal/output"
	"github.com/temirov/alchemist/internal/prompt"
	"github.com/temirov/alchemist/internal/stats"
	"github.com/temirov/alchemist/internal/types"
)

const (
	headerAnalyzeFormat  = "🔍 Analyzing code at '%s'..."
	savedAnalysisFormat  = "Analysis results saved to '%s'"
	errorListFilesFormat = "list files in %s: %w"
	analyzeFormatSubject = "analysis"
)

// Analyze asks for a quality assessment of a file or directory. Files are sent
// in full; directories are described by their file list.
func (orchestrator *Orchestrator) Analyze(ctx context.Context, options types.AnalyzeOptions) error {
	format := options.Format
	if format == "" {
		format = types.FormatText
	}
	switch format {
	case types.FormatText, types.FormatJSON, types.FormatMarkdown:
	default:
		return fmt.Errorf(errorUnsupportedFormat, analyzeFormatSubject, format)
	}

	target, validationError := validatePath(options.Path)
	if validationError != nil {
		return validationError
	}
	orchestrator.console.Header(fmt.Sprintf(headerAnalyzeFormat, options.Path))

	var analysisPrompt string
	if target.IsDir {
		ignorePatterns, patternError := orchestrator.ignorePatterns(target.AbsolutePath)
		if patternError != nil {
			return patternError
		}
		relativeFiles, listError := stats.ListFiles(target.AbsolutePath, stats.Options{IgnorePatterns: ignorePatterns, Logger: orchestrator.logger})
		if listError != nil {
			return fmt.Errorf(errorListFilesFormat, options.Path, listError)
		}
		analysisPrompt = prompt.AnalyzeDirectory(options.Path, relativeFiles)
	} else {
		content, readError := readSourceFile(options.Path)
		if readError != nil {
			return readError
		}
		analysisPrompt = prompt.AnalyzeFile(options.Path, content)
	}

	response := orchestrator.query(ctx, analysisPrompt)

	var rendered string
	switch format {
	case types.FormatJSON:
		encoded, encodeError := output.RenderAnalysisJSON(options.Path, orchestrator.timestamp(), response)
		if encodeError != nil {
			return encodeError
		}
		rendered = encoded
	case types.FormatMarkdown:
		rendered = output.RenderMarkdownReport(output.MarkdownAnalysisTitle, options.Path, orchestrator.timestamp(), response)
	default:
		rendered = output.RenderBanner(output.AnalysisTitle, options.Path, response)
	}
	return orchestrator.deliver(rendered, options.Output, options.Copy, savedAnalysisFormat)
}
