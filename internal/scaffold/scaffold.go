// Package scaffold writes files extracted from an assistant reply into a
// project directory without letting any of them escape it.
package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/temirov/alchemist/internal/extract"
)

// Action describes what happened, or would happen, to one extracted file.
type Action string

const (
	ActionCreate    Action = "create"
	ActionOverwrite Action = "overwrite"
	ActionUnchanged Action = "unchanged"
	ActionRejected  Action = "rejected"
)

const (
	filePermissions      = 0o644
	directoryPermissions = 0o755
	parentSegment        = ".."

	warningEmptyPath    = "Warning: skipping file with an empty path"
	warningAbsolutePath = "Warning: skipping absolute path %s"
	warningEscapingPath = "Warning: skipping path %s that escapes the project directory"
	warningDotenvFormat = "Warning: %s is not a valid dotenv file: %v"
	errorJoinFormat     = "resolve %s inside %s: %w"
	errorReadFormat     = "read existing %s: %w"
	errorMkdirFormat    = "create directory for %s: %w"
	errorWriteFormat    = "write %s: %w"
)

// Result reports the outcome for one extracted file.
type Result struct {
	RelativePath string
	TargetPath   string
	Action       Action
	LinesAdded   int
	LinesRemoved int
	Warnings     []string
}

// Options tunes a Writer.
type Options struct {
	DryRun bool
	Logger *zap.Logger
}

// Writer places extracted files below a root directory.
type Writer struct {
	root   string
	dryRun bool
	logger *zap.Logger
}

// NewWriter constructs a Writer rooted at root.
func NewWriter(root string, options Options) *Writer {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{root: root, dryRun: options.DryRun, logger: logger}
}

// Write stores every file in order. Absolute paths and paths that climb out of
// the root are rejected with a warning rather than an error. In dry-run mode
// nothing touches the disk and the results describe the pending changes.
func (writer *Writer) Write(files []extract.File) ([]Result, error) {
	results := make([]Result, 0, len(files))
	for _, file := range files {
		result, writeError := writer.writeOne(file)
		if writeError != nil {
			return results, writeError
		}
		results = append(results, result)
	}
	return results, nil
}

func (writer *Writer) writeOne(file extract.File) (Result, error) {
	result := Result{RelativePath: file.Path}
	relativePath, rejection := validateRelativePath(file.Path)
	if rejection != "" {
		writer.logger.Warn(rejection)
		result.Action = ActionRejected
		result.Warnings = append(result.Warnings, rejection)
		return result, nil
	}

	targetPath, joinError := securejoin.SecureJoin(writer.root, relativePath)
	if joinError != nil {
		return result, fmt.Errorf(errorJoinFormat, file.Path, writer.root, joinError)
	}
	result.TargetPath = targetPath

	if filepath.Base(relativePath) == extract.EnvExampleFileName {
		if _, parseError := godotenv.Unmarshal(file.Content); parseError != nil {
			warning := fmt.Sprintf(warningDotenvFormat, file.Path, parseError)
			writer.logger.Warn(warning)
			result.Warnings = append(result.Warnings, warning)
		}
	}

	existingContent, readError := os.ReadFile(targetPath)
	switch {
	case readError == nil:
		if string(existingContent) == file.Content {
			result.Action = ActionUnchanged
			return result, nil
		}
		result.Action = ActionOverwrite
		result.LinesAdded, result.LinesRemoved = LineChanges(string(existingContent), file.Content)
	case errors.Is(readError, fs.ErrNotExist):
		result.Action = ActionCreate
		result.LinesAdded = countLines(file.Content)
	default:
		return result, fmt.Errorf(errorReadFormat, targetPath, readError)
	}

	if writer.dryRun {
		return result, nil
	}
	if mkdirError := os.MkdirAll(filepath.Dir(targetPath), directoryPermissions); mkdirError != nil {
		return result, fmt.Errorf(errorMkdirFormat, targetPath, mkdirError)
	}
	if writeError := os.WriteFile(targetPath, []byte(file.Content), filePermissions); writeError != nil {
		return result, fmt.Errorf(errorWriteFormat, targetPath, writeError)
	}
	return result, nil
}

// validateRelativePath returns the cleaned OS path, or a warning explaining
// why the path cannot be used.
func validateRelativePath(path string) (string, string) {
	trimmedPath := strings.TrimSpace(path)
	if trimmedPath == "" {
		return "", warningEmptyPath
	}
	if filepath.IsAbs(trimmedPath) || strings.HasPrefix(trimmedPath, "/") || strings.HasPrefix(trimmedPath, "\\") || filepath.VolumeName(trimmedPath) != "" {
		return "", fmt.Sprintf(warningAbsolutePath, path)
	}
	cleanedPath := filepath.Clean(filepath.FromSlash(trimmedPath))
	if cleanedPath == parentSegment || strings.HasPrefix(cleanedPath, parentSegment+string(filepath.Separator)) || cleanedPath == "." {
		return "", fmt.Sprintf(warningEscapingPath, path)
	}
	return cleanedPath, ""
}
