// Package output renders assistant replies into the report formats written by
// the commands: banner text, JSON envelopes, Markdown and HTML documents.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/alchemist/internal/types"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	bannerRuleWidth     = 50
	bannerRuleCharacter = "="
	bannerTitleFormat   = "%s FOR: %s\n"

	markdownTitleFormat   = "# %s\n\n"
	markdownPathFormat    = "**Path:** `%s`  \n"
	markdownDateFormat    = "**Date:** %s\n\n"
	markdownResultsFormat = "## Results\n\n%s\n"
	documentHeadingFormat = "# Documentation for %s\n\n"
	errorEncodeEnvelope   = "encode analysis envelope: %w"
	errorCreateParent     = "create directory for %s: %w"
	errorWriteReport      = "write %s: %w"
	reportFilePermissions = 0o644
	reportDirectoryPerms  = 0o755
)

// Report titles used in banners.
const (
	AnalysisTitle         = "CODE ANALYSIS RESULTS"
	RefactoringTitle      = "REFACTORING SUGGESTIONS"
	OptimizationsSuffix   = "OPTIMIZATIONS"
	MarkdownAnalysisTitle = "Code Analysis Results"
)

// OptimizationTitle returns the banner title for an optimization focus such as
// "security and performance".
func OptimizationTitle(focus string) string {
	return strings.ToUpper(focus) + " " + OptimizationsSuffix
}

// RenderBanner frames body between two rules under a "<TITLE> FOR: <path>" line.
func RenderBanner(title string, path string, body string) string {
	rule := strings.Repeat(bannerRuleCharacter, bannerRuleWidth)
	var builder strings.Builder
	fmt.Fprintf(&builder, bannerTitleFormat, title, path)
	builder.WriteString(rule + "\n")
	builder.WriteString(body + "\n")
	builder.WriteString(rule + "\n")
	return builder.String()
}

// RenderAnalysisJSON encodes the analysis envelope as indented JSON.
func RenderAnalysisJSON(path string, analysisDate string, results string) (string, error) {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent(indentPrefix, indentSpacer)
	envelope := types.AnalysisEnvelope{Path: path, AnalysisDate: analysisDate, Results: results}
	if encodeError := encoder.Encode(envelope); encodeError != nil {
		return "", fmt.Errorf(errorEncodeEnvelope, encodeError)
	}
	return strings.TrimSuffix(buffer.String(), "\n"), nil
}

// RenderMarkdownReport wraps content in a titled Markdown report.
func RenderMarkdownReport(title string, path string, reportDate string, content string) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, markdownTitleFormat, title)
	fmt.Fprintf(&builder, markdownPathFormat, path)
	fmt.Fprintf(&builder, markdownDateFormat, reportDate)
	fmt.Fprintf(&builder, markdownResultsFormat, content)
	return builder.String()
}

// RenderMarkdownDocument returns the documentation file for baseName.
func RenderMarkdownDocument(baseName string, content string) string {
	return fmt.Sprintf(documentHeadingFormat, baseName) + content
}

// WriteFile writes content to path, creating missing parent directories.
func WriteFile(path string, content string) error {
	if parent := filepath.Dir(path); parent != "" && parent != "." {
		if makeError := os.MkdirAll(parent, reportDirectoryPerms); makeError != nil {
			return fmt.Errorf(errorCreateParent, path, makeError)
		}
	}
	if writeError := os.WriteFile(path, []byte(content), reportFilePermissions); writeError != nil {
		return fmt.Errorf(errorWriteReport, path, writeError)
	}
	return nil
}
