package prompt_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/temirov/alchemist/internal/prompt"
	"github.com/temirov/alchemist/internal/stats"
)

func TestAnalyzeFile(t *testing.T) {
	actual := prompt.AnalyzeFile("main.py", "print(1)")
	expected := "I'm going to share a file with you for analysis. Path: main.py\n\n" +
		"Here's the content of main.py:\n\n```\nprint(1)\n```\n\n" +
		"\n\nProvide detailed assessment of code quality, structure, and organization."
	if actual != expected {
		t.Fatalf("unexpected prompt:\n%q\nexpected:\n%q", actual, expected)
	}
}

func TestAnalyzeDirectoryListing(t *testing.T) {
	testCases := []struct {
		name          string
		fileCount     int
		expectedLines int
		overflowLine  string
	}{
		{name: "under limit", fileCount: 3, expectedLines: 3},
		{name: "at limit", fileCount: prompt.DirectoryListingLimit, expectedLines: prompt.DirectoryListingLimit},
		{name: "over limit", fileCount: 57, expectedLines: prompt.DirectoryListingLimit, overflowLine: "... and 7 more files."},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(subTest *testing.T) {
			files := make([]string, testCase.fileCount)
			for fileIndex := range files {
				files[fileIndex] = fmt.Sprintf("pkg/file%02d.go", fileIndex)
			}
			actual := prompt.AnalyzeDirectory("src", files)
			if !strings.HasPrefix(actual, "I'm going to share a directory with you for analysis. Path: src\n\nDirectory analysis for src. File list:\n\n") {
				subTest.Fatalf("unexpected prefix: %q", actual)
			}
			if strings.Count(actual, "pkg/file") != testCase.expectedLines {
				subTest.Fatalf("expected %d listed files in %q", testCase.expectedLines, actual)
			}
			hasOverflow := strings.Contains(actual, "more files.")
			if hasOverflow != (testCase.overflowLine != "") {
				subTest.Fatalf("overflow line mismatch in %q", actual)
			}
			if testCase.overflowLine != "" && !strings.Contains(actual, "\n"+testCase.overflowLine+"\n") {
				subTest.Fatalf("missing %q in %q", testCase.overflowLine, actual)
			}
		})
	}
}

func TestSingleFilePrompts(t *testing.T) {
	if actual := prompt.Document("a.go", "x"); actual != "Generate documentation for a.go:\n\n```\nx\n```" {
		t.Fatalf("unexpected document prompt %q", actual)
	}
	if actual := prompt.Refactor("a.go", "x"); actual != "Suggest refactoring for a.go:\n\n```\nx\n```" {
		t.Fatalf("unexpected refactor prompt %q", actual)
	}
	if actual := prompt.Optimize("a.go", "security", "x"); actual != "Suggest security optimizations for a.go:\n\n```\nx\n```" {
		t.Fatalf("unexpected optimize prompt %q", actual)
	}
	if actual := prompt.Setup("python", "demo"); actual != "Setup python project 'demo' structure with config files" {
		t.Fatalf("unexpected setup prompt %q", actual)
	}
}

func TestFocus(t *testing.T) {
	testCases := []struct {
		security    bool
		performance bool
		expected    string
	}{
		{expected: "security and performance"},
		{security: true, expected: "security"},
		{performance: true, expected: "performance"},
		{security: true, performance: true, expected: "security and performance"},
	}
	for _, testCase := range testCases {
		if actual := prompt.Focus(testCase.security, testCase.performance); actual != testCase.expected {
			t.Fatalf("Focus(%v, %v) = %q, expected %q", testCase.security, testCase.performance, actual, testCase.expected)
		}
	}
}

func TestDashboardEmbedsStats(t *testing.T) {
	projectStats := stats.ProjectStats{
		ProjectName: "demo",
		FileCount:   2,
		FileTypes:   map[string]int{"go": 2},
		LargestFile: stats.LargestFile{Name: "demo/main.go", Size: 10},
	}
	actual, promptError := prompt.Dashboard("demo", projectStats)
	if promptError != nil {
		t.Fatalf("Dashboard error: %v", promptError)
	}
	expected := `Generate project dashboard for demo with stats: {"project_name":"demo","file_count":2,"directory_count":0,"file_types":{"go":2},"total_lines":0,"largest_file":{"name":"demo/main.go","size":10}}`
	if actual != expected {
		t.Fatalf("unexpected dashboard prompt:\n%s\nexpected:\n%s", actual, expected)
	}
}
