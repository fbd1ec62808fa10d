// Package sanitize removes terminal control sequences and assistant chrome
// (banners, tool traces, help footers, backtraces) from captured tool output.
package sanitize

import (
	"regexp"
	"strings"
)

const lineSeparator = "\n"

var (
	// ESC followed by a single-character sequence or a CSI sequence.
	ansiEscapePattern = regexp.MustCompile(`\x1B(?:[@-Z\\-_]|\[[0-?]*[ -/]*[@-~])`)

	safetyBannerPattern = regexp.MustCompile(`(?s)To learn more about MCP safety.*?━━━━━━━━━━━━━━━━━━+\n`)
	toolTracePattern    = regexp.MustCompile(`(?s)🛠\x{FE0F}?\s+Using tool:.*?● Completed in \d+\.\d+s`)
	helpFooterPattern   = regexp.MustCompile(`(?s)\n/help all commands.*?• ctrl \+ k fuzzy search\n[^\n]*\n`)
	backtracePattern    = regexp.MustCompile(`(?s)Amazon Q is having trouble responding right now:.*?Backtrace omitted\.?`)
)

type chromeRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Applied in order after escape sequences are gone.
var chromeRules = []chromeRule{
	{pattern: safetyBannerPattern},
	{pattern: toolTracePattern},
	{pattern: helpFooterPattern, replacement: lineSeparator},
	{pattern: backtracePattern},
}

// StripANSI removes ANSI/VT100 escape sequences from text.
func StripANSI(text string) string {
	// Removing one sequence can join its neighbors into a new one.
	for {
		stripped := ansiEscapePattern.ReplaceAllString(text, "")
		if stripped == text {
			return stripped
		}
		text = stripped
	}
}

// StripChrome removes the known assistant banners, traces, footers, and
// backtraces. Markers that are absent leave the text untouched.
func StripChrome(text string) string {
	cleaned := text
	for _, rule := range chromeRules {
		cleaned = rule.pattern.ReplaceAllLiteralString(cleaned, rule.replacement)
	}
	return cleaned
}

// DropBlankLines removes every empty or whitespace-only line.
func DropBlankLines(text string) string {
	lines := strings.Split(text, lineSeparator)
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, lineSeparator)
}

// Clean returns text with escape sequences and chrome removed and blank lines dropped.
// Clean(Clean(x)) == Clean(x).
func Clean(text string) string {
	return DropBlankLines(StripChrome(StripANSI(text)))
}
