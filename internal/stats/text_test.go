package stats

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestCountLines verifies newline counting including an unterminated final line.
func TestCountLines(testingHandle *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected int
	}{
		{name: "empty", content: "", expected: 0},
		{name: "single newline", content: "\n", expected: 1},
		{name: "no trailing newline", content: "a\nb", expected: 2},
		{name: "trailing newline", content: "a\nb\n", expected: 2},
		{name: "blank lines", content: "\n\n\n", expected: 3},
		{name: "spans chunks", content: strings.Repeat("line\n", lineCountChunkSize), expected: lineCountChunkSize},
	}
	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(subTest *testing.T) {
			lineCount, countError := countLines(strings.NewReader(testCase.content))
			if countError != nil {
				subTest.Fatalf("countLines error: %v", countError)
			}
			if lineCount != testCase.expected {
				subTest.Fatalf("expected %d lines, got %d", testCase.expected, lineCount)
			}
		})
	}
}

// TestIsTextFile verifies extension short-circuiting and the ASCII sample heuristic.
func TestIsTextFile(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	testCases := []struct {
		name      string
		extension string
		content   string
		expected  bool
	}{
		{name: "known extension", extension: "go", content: "ééé", expected: true},
		{name: "ascii unknown extension", extension: "dat", content: "plain words", expected: true},
		{name: "mostly non ascii", extension: "dat", content: strings.Repeat("é", 50), expected: false},
		{name: "empty", extension: "dat", content: "", expected: true},
		{name: "invalid bytes only", extension: "dat", content: "\xff\xfe\xfd", expected: false},
		{name: "invalid bytes skipped", extension: "dat", content: "\xffabcdefghij", expected: true},
	}
	for testIndex, testCase := range testCases {
		testingHandle.Run(testCase.name, func(subTest *testing.T) {
			filePath := filepath.Join(rootDirectory, "sample"+string(rune('a'+testIndex)))
			if writeError := os.WriteFile(filePath, []byte(testCase.content), 0o644); writeError != nil {
				subTest.Fatalf("write: %v", writeError)
			}
			isText, classifyError := IsTextFile(filePath, testCase.extension)
			if classifyError != nil {
				subTest.Fatalf("IsTextFile error: %v", classifyError)
			}
			if isText != testCase.expected {
				subTest.Fatalf("expected %v, got %v", testCase.expected, isText)
			}
		})
	}
}
