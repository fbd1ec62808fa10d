package utils

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevelEnvironmentVariable overrides the default info log level.
const LogLevelEnvironmentVariable = "ALCHEMIST_LOG_LEVEL"

// NewApplicationLogger constructs a zap logger configured for human-readable console output.
// The level defaults to info and can be changed through LogLevelEnvironmentVariable.
func NewApplicationLogger() (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.DisableCaller = true
	config.DisableStacktrace = true
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.TimeKey = ""
	config.EncoderConfig.NameKey = ""
	config.EncoderConfig.CallerKey = ""
	config.EncoderConfig.MessageKey = "message"
	config.EncoderConfig.StacktraceKey = ""
	if requestedLevel := strings.TrimSpace(os.Getenv(LogLevelEnvironmentVariable)); requestedLevel != "" {
		parsedLevel, parseError := zapcore.ParseLevel(requestedLevel)
		if parseError != nil {
			return nil, parseError
		}
		config.Level = zap.NewAtomicLevelAt(parsedLevel)
	}
	return config.Build()
}
