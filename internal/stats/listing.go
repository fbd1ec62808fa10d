package stats

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/alchemist/internal/utils"
)

// ListFiles returns the forward-slash paths, relative to root, of every file
// below root in walk order. Ignored directories are not descended into.
func ListFiles(root string, options Options) ([]string, error) {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	absoluteRoot, absoluteError := filepath.Abs(root)
	if absoluteError != nil {
		return nil, fmt.Errorf(errorAbsRootFormat, root, absoluteError)
	}
	var relativePaths []string
	walkError := filepath.WalkDir(absoluteRoot, func(currentPath string, directoryEntry fs.DirEntry, entryError error) error {
		if currentPath == absoluteRoot {
			return entryError
		}
		if entryError != nil {
			logger.Warn(fmt.Sprintf(warningWalkFormat, currentPath, entryError))
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
		if !directoryEntry.IsDir() {
			relativePaths = append(relativePaths, relativePath)
		}
		return nil
	})
	if walkError != nil {
		return nil, fmt.Errorf(errorRootFormat, root, walkError)
	}
	return relativePaths, nil
}
