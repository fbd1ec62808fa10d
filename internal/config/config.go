// Package config loads application settings from YAML files and turns ignore
// files into exclusion patterns for directory walks.
package config

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/alchemist/internal/utils"
)

const (
	// gitDirectoryPattern represents the pattern that matches the Git directory.
	gitDirectoryPattern = utils.GitDirectoryName + "/"
	commentPrefix       = "#"
	negationPrefix      = "!"
	anchorPrefix        = "/"
)

// IgnoreOptions selects which ignore sources contribute patterns.
type IgnoreOptions struct {
	UseGitignore  bool
	UseIgnoreFile bool
	ExcludeGit    bool
}

// IgnoreOptions resolves the path section into loader switches.
func (config PathConfiguration) IgnoreOptions() IgnoreOptions {
	return IgnoreOptions{
		UseGitignore:  config.UseGitignore != nil && *config.UseGitignore,
		UseIgnoreFile: config.UseIgnoreFile != nil && *config.UseIgnoreFile,
		ExcludeGit:    config.ExcludeGit != nil && *config.ExcludeGit,
	}
}

// LoadIgnoreFilePatterns reads an ignore file and returns its patterns. Blank
// lines, comments, and negations are skipped; a missing file yields no patterns.
//
// #nosec G304
func LoadIgnoreFilePatterns(ignoreFilePath string) ([]string, error) {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, openFileError
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", ignoreFilePath, closeError)
		}
	}()

	var ignorePatterns []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) || strings.HasPrefix(trimmedLine, negationPrefix) {
			continue
		}
		trimmedLine = strings.TrimPrefix(trimmedLine, anchorPrefix)
		if trimmedLine == "" {
			continue
		}
		ignorePatterns = append(ignorePatterns, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return ignorePatterns, nil
}

// LoadRecursiveIgnorePatterns walks rootDirectoryPath and aggregates patterns
// from every enabled ignore file. Patterns found in a nested directory are
// prefixed with that directory's path relative to the root. The .git directory
// is excluded when options.ExcludeGit is set. exclusionPatterns are appended
// after the file patterns.
func LoadRecursiveIgnorePatterns(rootDirectoryPath string, exclusionPatterns []string, options IgnoreOptions) ([]string, error) {
	var aggregatedPatterns []string

	if options.UseGitignore || options.UseIgnoreFile {
		walkFunction := func(currentDirectoryPath string, directoryEntry fs.DirEntry, walkError error) error {
			if walkError != nil {
				return walkError
			}
			if !directoryEntry.IsDir() {
				return nil
			}
			if directoryEntry.Name() == utils.GitDirectoryName && currentDirectoryPath != rootDirectoryPath {
				return filepath.SkipDir
			}

			relativeDirectory := utils.RelativePathOrSelf(currentDirectoryPath, rootDirectoryPath)
			prefix := ""
			if relativeDirectory != "." {
				prefix = relativeDirectory + "/"
			}

			var ignoreFileNames []string
			if options.UseIgnoreFile {
				ignoreFileNames = append(ignoreFileNames, utils.IgnoreFileName)
			}
			if options.UseGitignore {
				ignoreFileNames = append(ignoreFileNames, utils.GitIgnoreFileName)
			}
			for _, ignoreFileName := range ignoreFileNames {
				ignorePatterns, loadError := LoadIgnoreFilePatterns(filepath.Join(currentDirectoryPath, ignoreFileName))
				if loadError != nil {
					return fmt.Errorf("loading %s from %s: %w", ignoreFileName, currentDirectoryPath, loadError)
				}
				for _, pattern := range ignorePatterns {
					aggregatedPatterns = append(aggregatedPatterns, prefix+pattern)
				}
			}
			return nil
		}

		if walkError := filepath.WalkDir(rootDirectoryPath, walkFunction); walkError != nil {
			return nil, walkError
		}
	}

	if options.ExcludeGit {
		aggregatedPatterns = append(aggregatedPatterns, gitDirectoryPattern)
	}

	deduplicatedPatterns := utils.DeduplicatePatterns(aggregatedPatterns)
	for _, pattern := range exclusionPatterns {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern == "" {
			continue
		}
		if !utils.ContainsString(deduplicatedPatterns, trimmedPattern) {
			deduplicatedPatterns = append(deduplicatedPatterns, trimmedPattern)
		}
	}

	return deduplicatedPatterns, nil
}
