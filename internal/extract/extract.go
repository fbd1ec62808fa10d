// Package extract recovers file definitions (path plus content) from free-form
// assistant replies. Fenced code blocks annotated with a file name are the primary
// source; when none are present a small set of well-known files is recovered from
// prose markers instead.
package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

const (
	// ReadmeFileName is produced by the README heading fallback.
	ReadmeFileName = "README.md"
	// GitIgnoreFileName is produced by the "For .gitignore:" fallback.
	GitIgnoreFileName = ".gitignore"
	// EnvExampleFileName is produced by the "For .env.example:" fallback.
	EnvExampleFileName = ".env.example"

	fenceDelimiter       = "```"
	fallbackMatchTimeout = 2 * time.Second

	// Submatch indexes of fencedFilePattern.
	fenceMarkerGroup  = 1
	fenceBareGroup    = 2
	commentMarkGroup  = 3
	fenceContentGroup = 4
)

// File is a single extracted file definition.
type File struct {
	Path    string
	Content string
}

// An opening fence names its file either on the fence line ("```python file: app.py",
// "```app.py") or as a comment on the first line inside the block ("# file: app.py").
var fencedFilePattern = regexp.MustCompile(
	"(?ms)^[ \\t]*```[^\\n]*?" +
		`(?:file:[ \t]*(\S+)|(\S+\.[\w.]+)|\n[ \t]*(?:#|//|--)[ \t]*file:[ \t]*(\S+))` +
		`[ \t]*\n(.*?)` +
		"^[ \\t]*```[ \\t]*$",
)

type fallbackRule struct {
	fileName string
	pattern  *regexp2.Regexp
}

var fallbackRules = []fallbackRule{
	{
		fileName: ReadmeFileName,
		pattern:  compileFallback(`^#{1,6}[ \t]+[^\n]*README[^\n]*\n(.*?)(?=\n#[ \t]|\z)`),
	},
	{
		fileName: GitIgnoreFileName,
		pattern:  compileFallback(`(?:For )?\.gitignore:[ \t]*\n(.*?)(?=\n[A-Z][a-z]*[ ,:]|\z)`),
	},
	{
		fileName: EnvExampleFileName,
		pattern:  compileFallback(`(?:For )?\.env\.example:[ \t]*\n(.*?)(?=\n[A-Z][a-z]*[ ,:]|\z)`),
	},
}

func compileFallback(pattern string) *regexp2.Regexp {
	compiled := regexp2.MustCompile(pattern, regexp2.Singleline|regexp2.Multiline)
	compiled.MatchTimeout = fallbackMatchTimeout
	return compiled
}

// Files extracts file definitions from sanitized assistant output.
// Entries keep the order in which a path first appears; a later block for the
// same path replaces the content but not the position. Paths are returned as
// written by the assistant and are not validated.
func Files(text string) []File {
	files := FencedFiles(text)
	if len(files) > 0 {
		return files
	}
	return FallbackFiles(text)
}

// FencedFiles returns files defined by annotated fenced code blocks.
func FencedFiles(text string) []File {
	var files []File
	positions := make(map[string]int)
	for _, submatches := range fencedFilePattern.FindAllStringSubmatch(text, -1) {
		fileName := firstNonEmpty(submatches[fenceMarkerGroup], submatches[fenceBareGroup], submatches[commentMarkGroup])
		if fileName == "" {
			continue
		}
		content := strings.TrimSpace(submatches[fenceContentGroup])
		if position, seen := positions[fileName]; seen {
			files[position].Content = content
			continue
		}
		positions[fileName] = len(files)
		files = append(files, File{Path: fileName, Content: content})
	}
	return files
}

// FallbackFiles recovers README.md, .gitignore and .env.example from prose markers.
// Each entry is present only when its marker is found.
func FallbackFiles(text string) []File {
	var files []File
	for _, rule := range fallbackRules {
		match, matchError := rule.pattern.FindStringMatch(text)
		if matchError != nil || match == nil {
			continue
		}
		body := unwrapFence(match.GroupByNumber(1).String())
		files = append(files, File{Path: rule.fileName, Content: body})
	}
	return files
}

// unwrapFence drops an opening and closing fence line surrounding body.
func unwrapFence(body string) string {
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[0]), fenceDelimiter) {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), fenceDelimiter) {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
