package scaffold

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineChanges counts the lines added and removed when before becomes after.
func LineChanges(before string, after string) (int, int) {
	differ := diffmatchpatch.New()
	beforeChars, afterChars, lineArray := differ.DiffLinesToChars(before, after)
	diffs := differ.DiffCharsToLines(differ.DiffMain(beforeChars, afterChars, false), lineArray)

	var added, removed int
	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			added += countLines(diff.Text)
		case diffmatchpatch.DiffDelete:
			removed += countLines(diff.Text)
		}
	}
	return added, removed
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	lineCount := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		lineCount++
	}
	return lineCount
}
