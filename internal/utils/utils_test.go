package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/alchemist/internal/utils"
)

// textFileName defines the name of the text file used in tests.
const textFileName = "sample.txt"

// nestedDirectoryName defines the directory used for nested path tests.
const nestedDirectoryName = "subdir"

// nodeModulesDirectoryPattern defines the ignore pattern for the node_modules directory inside nestedDirectoryName.
const nodeModulesDirectoryPattern = nestedDirectoryName + "/node_modules/"

// backslashNodeModulesDirectoryPattern defines the same pattern with backslashes to verify normalization.
const backslashNodeModulesDirectoryPattern = nestedDirectoryName + `\node_modules\`

// nodeModulesFilePath defines a file inside the node_modules directory.
const nodeModulesFilePath = nestedDirectoryName + "/node_modules/index.js"

// TestDeduplicatePatterns verifies that DeduplicatePatterns removes duplicate patterns.
func TestDeduplicatePatterns(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		patterns []string
		expected []string
	}{
		{
			testName: "removes duplicates",
			patterns: []string{"a", "b", "a"},
			expected: []string{"a", "b"},
		},
		{
			testName: "keeps unique",
			patterns: []string{"a", "b"},
			expected: []string{"a", "b"},
		},
	}
	for index, testCase := range testCases {
		actual := utils.DeduplicatePatterns(testCase.patterns)
		if len(actual) != len(testCase.expected) {
			testingInstance.Errorf("case %d (%s): expected length %d, got %d", index, testCase.testName, len(testCase.expected), len(actual))
			continue
		}
		for position, value := range actual {
			if value != testCase.expected[position] {
				testingInstance.Errorf("case %d (%s): expected %s at position %d, got %s", index, testCase.testName, testCase.expected[position], position, value)
			}
		}
	}
}

// TestContainsString verifies that ContainsString locates strings in a slice.
func TestContainsString(testingInstance *testing.T) {
	if !utils.ContainsString([]string{"alpha", "beta"}, "beta") {
		testingInstance.Errorf("expected beta to be found")
	}
	if utils.ContainsString([]string{"alpha", "beta"}, "gamma") {
		testingInstance.Errorf("did not expect gamma to be found")
	}
}

// TestRelativePathOrSelf verifies relative path calculations.
func TestRelativePathOrSelf(testingInstance *testing.T) {
	temporaryRoot := testingInstance.TempDir()
	subPath := filepath.Join(temporaryRoot, textFileName)
	creationError := os.WriteFile(subPath, []byte("content"), 0600)
	if creationError != nil {
		testingInstance.Fatalf("failed to create file: %v", creationError)
	}
	testCases := []struct {
		testName string
		fullPath string
		root     string
		expected string
	}{
		{
			testName: "root path returns dot",
			fullPath: temporaryRoot,
			root:     temporaryRoot,
			expected: ".",
		},
		{
			testName: "sub path returns relative",
			fullPath: subPath,
			root:     temporaryRoot,
			expected: textFileName,
		},
	}
	for index, testCase := range testCases {
		actual := utils.RelativePathOrSelf(testCase.fullPath, testCase.root)
		if actual != testCase.expected {
			testingInstance.Errorf("case %d (%s): expected %s, got %s", index, testCase.testName, testCase.expected, actual)
		}
	}
}

// TestShouldIgnoreByPath verifies path based ignore rules.
func TestShouldIgnoreByPath(testingInstance *testing.T) {
	testCases := []struct {
		testName       string
		relativePath   string
		patterns       []string
		expectedIgnore bool
	}{
		{
			testName:       "no patterns keeps everything",
			relativePath:   "main.go",
			patterns:       nil,
			expectedIgnore: false,
		},
		{
			testName:       "wildcard matches file name",
			relativePath:   "logs/app.log",
			patterns:       []string{"*.log"},
			expectedIgnore: true,
		},
		{
			testName:       "nested directory pattern",
			relativePath:   nodeModulesFilePath,
			patterns:       []string{nodeModulesDirectoryPattern},
			expectedIgnore: true,
		},
		{
			testName:       "backslash pattern normalized",
			relativePath:   nodeModulesFilePath,
			patterns:       []string{backslashNodeModulesDirectoryPattern},
			expectedIgnore: true,
		},
		{
			testName:       "nested pattern does not match other roots",
			relativePath:   "other/" + nodeModulesFilePath,
			patterns:       []string{nodeModulesDirectoryPattern},
			expectedIgnore: false,
		},
		{
			testName:       "single segment directory pattern matches at any depth",
			relativePath:   "a/b/.git/config",
			patterns:       []string{".git/"},
			expectedIgnore: true,
		},
		{
			testName:       "multi segment file pattern needs full match",
			relativePath:   "src/config.json",
			patterns:       []string{"lib/config.json"},
			expectedIgnore: false,
		},
		{
			testName:       "empty directory pattern ignored",
			relativePath:   "src/main.go",
			patterns:       []string{"/"},
			expectedIgnore: false,
		},
	}
	for _, testCase := range testCases {
		testingInstance.Run(testCase.testName, func(t *testing.T) {
			actual := utils.ShouldIgnoreByPath(testCase.relativePath, testCase.patterns)
			if actual != testCase.expectedIgnore {
				t.Fatalf("expected %t, got %t", testCase.expectedIgnore, actual)
			}
		})
	}
}
