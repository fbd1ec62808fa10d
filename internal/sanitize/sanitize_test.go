package sanitize

import (
	"strings"
	"testing"
)

func TestCleanLeavesPlainTextExceptBlankLines(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "single line", input: "hello", expected: "hello"},
		{name: "blank lines dropped", input: "first\n\n   \nsecond\n", expected: "first\nsecond"},
		{name: "indentation kept", input: "def f():\n    return 1\n\n", expected: "def f():\n    return 1"},
		{name: "empty", input: "", expected: ""},
		{name: "only whitespace", input: " \n\t\n", expected: ""},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if actual := Clean(testCase.input); actual != testCase.expected {
				t.Fatalf("expected %q, got %q", testCase.expected, actual)
			}
		})
	}
}

func TestStripANSI(t *testing.T) {
	input := "\x1b[1;32mgreen\x1b[0m and \x1bMsaved \x1b[2K"
	expected := "green and saved "
	if actual := StripANSI(input); actual != expected {
		t.Fatalf("expected %q, got %q", expected, actual)
	}
}

func TestCleanRemovesChromeBlocks(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expected  string
		forbidden []string
	}{
		{
			name:      "safety banner",
			input:     "To learn more about MCP safety, see docs\nmore banner text\n━━━━━━━━━━━━━━━━━━━━━━━━\nActual answer",
			expected:  "Actual answer",
			forbidden: []string{"MCP safety", "banner text", "━"},
		},
		{
			name:      "tool trace",
			input:     "Before\n🛠️  Using tool: fs_read\n reading files\n ● Completed in 0.12s\nAfter",
			expected:  "Before\nAfter",
			forbidden: []string{"Using tool", "reading files", "Completed in"},
		},
		{
			name:      "two tool traces stay separate",
			input:     "A\n🛠️  Using tool: one\n● Completed in 1.0s\nB\n🛠️  Using tool: two\n● Completed in 2.5s\nC",
			expected:  "A\nB\nC",
			forbidden: []string{"Using tool"},
		},
		{
			name:      "help footer",
			input:     "Answer\n/help all commands  •  ctrl + j new lines  •  ctrl + k fuzzy search\n━━━━━\nTail",
			expected:  "Answer\nTail",
			forbidden: []string{"/help", "fuzzy search"},
		},
		{
			name:      "error backtrace",
			input:     "Start\nAmazon Q is having trouble responding right now:\n   0: error\n   1: more\nBacktrace omitted.\nEnd",
			expected:  "Start\nEnd",
			forbidden: []string{"trouble responding", "Backtrace"},
		},
		{
			name:      "escape codes around markers",
			input:     "\x1b[33mTo learn more about MCP safety\x1b[0m\n\x1b[2m━━━━━━━━━━━━━━━━━━━━\x1b[0m\nBody",
			expected:  "Body",
			forbidden: []string{"MCP safety"},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := Clean(testCase.input)
			if actual != testCase.expected {
				t.Fatalf("expected %q, got %q", testCase.expected, actual)
			}
			for _, forbidden := range testCase.forbidden {
				if strings.Contains(actual, forbidden) {
					t.Fatalf("expected %q to be removed from %q", forbidden, actual)
				}
			}
		})
	}
}

func TestCleanWithOpeningMarkerOnlyKeepsText(t *testing.T) {
	input := "🛠️  Using tool: fs_read\nno completion marker follows"
	if actual := Clean(input); actual != input {
		t.Fatalf("expected unmatched marker to be kept, got %q", actual)
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	inputs := []string{
		"plain\n\ntext",
		"\x1b[1mBold\x1b[0m\n\n🛠️  Using tool: x\n● Completed in 0.1s\nrest\n",
		"Answer\n/help all commands • ctrl + k fuzzy search\nline\nTail",
		"x\x1b\x1b[0m[31my",
	}
	for _, input := range inputs {
		once := Clean(input)
		twice := Clean(once)
		if once != twice {
			t.Fatalf("Clean not idempotent: %q then %q", once, twice)
		}
	}
	if nested := StripANSI("x\x1b\x1b[0m[31my"); nested != "xy" {
		t.Fatalf("expected nested escape sequences to be removed, got %q", nested)
	}
}
