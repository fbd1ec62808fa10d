package utils

import (
	"fmt"
	"strings"
)

var fileSizeUnits = []string{"b", "kb", "mb", "gb", "tb", "pb"}

// FormatFileSize converts a byte length into a human-readable lower-case unit string,
// e.g. 512b, 1.5kb, 10mb.
func FormatFileSize(bytes int64) string {
	if bytes < 1024 {
		if bytes < 0 {
			bytes = 0
		}
		return fmt.Sprintf("%db", bytes)
	}
	scaled := float64(bytes)
	unitIndex := 0
	for scaled >= 1024 && unitIndex < len(fileSizeUnits)-1 {
		scaled /= 1024
		unitIndex++
	}
	precision := 0
	if scaled < 10 {
		precision = 1
	}
	formatted := strings.TrimSuffix(fmt.Sprintf("%.*f", precision, scaled), ".0")
	return formatted + fileSizeUnits[unitIndex]
}
