package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/temirov/alchemist/internal/config"
	"github.com/temirov/alchemist/internal/output"
	"github.com/temirov/alchemist/internal/prompt"
	"github.com/temirov/alchemist/internal/types"
)

const (
	headerDocumentFormat  = "📝 Generating documentation for '%s'..."
	savedDocumentFormat   = "Documentation saved to '%s'"
	errorDocumentFileOnly = "Error: Documentation generation currently supports single files only."
	documentFormatSubject = "documentation"
	markdownExtension     = ".md"
	htmlExtension         = ".html"
)

// Document writes generated documentation for a single file into the output
// directory as <base>.md or <base>.html.
func (orchestrator *Orchestrator) Document(ctx context.Context, options types.DocumentOptions) error {
	format := options.Format
	if format == "" {
		format = types.FormatMarkdown
	}
	if format != types.FormatMarkdown && format != types.FormatHTML {
		return fmt.Errorf(errorUnsupportedFormat, documentFormatSubject, format)
	}

	target, validationError := validatePath(options.Path)
	if validationError != nil {
		return validationError
	}
	orchestrator.console.Header(fmt.Sprintf(headerDocumentFormat, options.Path))

	outputDirectory := options.OutputDir
	if outputDirectory == "" {
		outputDirectory = config.DefaultDocumentOutput
	}
	if directoryError := ensureDirectory(outputDirectory); directoryError != nil {
		return directoryError
	}
	if target.IsDir {
		orchestrator.console.Error(errorDocumentFileOnly)
		return nil
	}

	content, readError := readSourceFile(options.Path)
	if readError != nil {
		return readError
	}
	response := orchestrator.query(ctx, prompt.Document(options.Path, content))

	baseName := filepath.Base(options.Path)
	var outputPath, rendered string
	if format == types.FormatHTML {
		html, renderError := output.RenderHTMLDocument(baseName, response)
		if renderError != nil {
			return renderError
		}
		outputPath = filepath.Join(outputDirectory, baseName+htmlExtension)
		rendered = html
	} else {
		outputPath = filepath.Join(outputDirectory, baseName+markdownExtension)
		rendered = output.RenderMarkdownDocument(baseName, response)
	}
	if writeError := output.WriteFile(outputPath, rendered); writeError != nil {
		return writeError
	}
	orchestrator.console.Success(fmt.Sprintf(savedDocumentFormat, outputPath))
	return nil
}
