package utils_test

import (
	"testing"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/temirov/alchemist/internal/utils"
)

func TestFormatFileSize(t *testing.T) {
	testCases := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{name: "negative", bytes: -1, expected: "0b"},
		{name: "zero", bytes: 0, expected: "0b"},
		{name: "bytes", bytes: 512, expected: "512b"},
		{name: "one kilobyte", bytes: 1024, expected: "1kb"},
		{name: "fractional kilobyte", bytes: 1536, expected: "1.5kb"},
		{name: "ten megabytes", bytes: 10 * 1024 * 1024, expected: "10mb"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := utils.FormatFileSize(testCase.bytes)
			if result != testCase.expected {
				t.Fatalf("expected %s, got %s", testCase.expected, result)
			}
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	if formatted := utils.FormatTimestamp(time.Time{}); formatted != "" {
		t.Fatalf("expected empty string for zero time, got %q", formatted)
	}
	value := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.Local)
	if formatted := utils.FormatTimestamp(value); formatted != "2024-03-05 14:07:09" {
		t.Fatalf("unexpected timestamp %q", formatted)
	}
}

func TestNewApplicationLoggerRejectsUnknownLevel(t *testing.T) {
	t.Setenv(utils.LogLevelEnvironmentVariable, "loud")
	if _, err := utils.NewApplicationLogger(); err == nil {
		t.Fatalf("expected error for unknown log level")
	}
}

func TestNewApplicationLoggerHonorsLevel(t *testing.T) {
	t.Setenv(utils.LogLevelEnvironmentVariable, "debug")
	logger, err := utils.NewApplicationLogger()
	if err != nil {
		t.Fatalf("NewApplicationLogger error: %v", err)
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected debug level to be enabled")
	}
}
