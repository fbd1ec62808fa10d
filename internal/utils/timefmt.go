package utils

import (
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

// FormatTimestamp returns the provided time formatted in the local time zone
// with second precision, the layout used in report headers.
func FormatTimestamp(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.In(time.Local).Format(timestampLayout)
}
