// Package stats gathers aggregate project statistics for dashboards.
package stats

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/alchemist/internal/utils"
)

const (
	// NoExtensionKey is the histogram bucket for files without an extension.
	NoExtensionKey = "no_extension"

	warningWalkFormat  = "Warning: skipping %s: %v"
	warningReadFormat  = "Warning: could not read file %s: %v"
	warningStatFormat  = "Warning: unable to stat %s: %v"
	errorRootFormat    = "inspect project root %s: %w"
	errorRootNotDir    = "project root %s is not a directory"
	errorAbsRootFormat = "resolve project root %s: %w"
)

// LargestFile describes the biggest file seen during a walk.
type LargestFile struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// ProjectStats holds aggregate counters for a directory tree.
type ProjectStats struct {
	ProjectName    string         `json:"project_name"`
	FileCount      int            `json:"file_count"`
	DirectoryCount int            `json:"directory_count"`
	FileTypes      map[string]int `json:"file_types"`
	TotalLines     int            `json:"total_lines"`
	LargestFile    LargestFile    `json:"largest_file"`
}

// Options tunes a walk.
type Options struct {
	// IgnorePatterns prune matching paths (relative to the root) before counting.
	IgnorePatterns []string
	Logger         *zap.Logger
}

// Gather walks root recursively and returns its statistics. Symbolic links are
// counted as files and never followed. Files that cannot be read contribute
// zero lines and produce a warning instead of an error.
func Gather(root string, options Options) (ProjectStats, error) {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	absoluteRoot, absoluteError := filepath.Abs(root)
	if absoluteError != nil {
		return ProjectStats{}, fmt.Errorf(errorAbsRootFormat, root, absoluteError)
	}
	rootInfo, rootError := os.Stat(absoluteRoot)
	if rootError != nil {
		return ProjectStats{}, fmt.Errorf(errorRootFormat, root, rootError)
	}
	if !rootInfo.IsDir() {
		return ProjectStats{}, fmt.Errorf(errorRootNotDir, root)
	}

	projectStats := ProjectStats{
		ProjectName: filepath.Base(absoluteRoot),
		FileTypes:   make(map[string]int),
	}
	var countCandidates []string

	walkFunction := func(currentPath string, directoryEntry fs.DirEntry, walkError error) error {
		if currentPath == absoluteRoot {
			return walkError
		}
		if walkError != nil {
			logger.Warn(fmt.Sprintf(warningWalkFormat, currentPath, walkError))
			if directoryEntry != nil && directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		relativePath := utils.RelativePathOrSelf(currentPath, absoluteRoot)
		if len(options.IgnorePatterns) > 0 && utils.ShouldIgnoreByPath(relativePath, options.IgnorePatterns) {
			if directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if directoryEntry.IsDir() {
			projectStats.DirectoryCount++
			return nil
		}
		if projectStats.recordFile(currentPath, directoryEntry.Name(), logger) {
			countCandidates = append(countCandidates, currentPath)
		}
		return nil
	}

	if walkError := filepath.WalkDir(absoluteRoot, walkFunction); walkError != nil {
		return ProjectStats{}, fmt.Errorf(errorRootFormat, root, walkError)
	}
	projectStats.TotalLines = countTextLines(countCandidates, logger)
	return projectStats, nil
}

// recordFile updates the counters for one file and reports whether it is a
// regular file whose lines should be counted.
func (projectStats *ProjectStats) recordFile(filePath string, fileName string, logger *zap.Logger) bool {
	projectStats.FileCount++
	projectStats.FileTypes[ExtensionKey(fileName)]++

	fileInfo, statError := os.Stat(filePath)
	if statError != nil {
		logger.Warn(fmt.Sprintf(warningStatFormat, filePath, statError))
		return false
	}
	if fileInfo.Size() > projectStats.LargestFile.Size {
		projectStats.LargestFile = LargestFile{Name: filePath, Size: fileInfo.Size()}
	}
	return fileInfo.Mode().IsRegular()
}

// countTextLines sums the lines of the text files among filePaths, reading up
// to GOMAXPROCS files at a time. Unreadable files add nothing and are logged.
func countTextLines(filePaths []string, logger *zap.Logger) int {
	lineCounts := make([]int, len(filePaths))
	var countGroup errgroup.Group
	countGroup.SetLimit(runtime.GOMAXPROCS(0))
	for index, filePath := range filePaths {
		countGroup.Go(func() error {
			isText, classifyError := IsTextFile(filePath, ExtensionKey(filepath.Base(filePath)))
			if classifyError != nil {
				logger.Warn(fmt.Sprintf(warningReadFormat, filePath, classifyError))
				return nil
			}
			if !isText {
				return nil
			}
			lineCount, countError := CountLines(filePath)
			if countError != nil {
				logger.Warn(fmt.Sprintf(warningReadFormat, filePath, countError))
				return nil
			}
			lineCounts[index] = lineCount
			return nil
		})
	}
	_ = countGroup.Wait()

	totalLines := 0
	for _, lineCount := range lineCounts {
		totalLines += lineCount
	}
	return totalLines
}

// ExtensionKey returns the lowercase extension of fileName without the leading
// dot, or NoExtensionKey. Leading dots are part of the name, so ".gitignore"
// has no extension while "archive.tar.gz" has "gz".
func ExtensionKey(fileName string) string {
	extension := filepath.Ext(strings.TrimLeft(fileName, "."))
	extension = strings.ToLower(strings.TrimPrefix(extension, "."))
	if extension == "" {
		return NoExtensionKey
	}
	return extension
}
