// Package logger builds the zap loggers used across the matching engine.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger writing to stdout. JSON encoding is intended for
// service deployments, console for interactive CLI use. Debug widens the
// level from info.
func New(json bool, debug bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	encoding := "console"

	if json {
		encoding = "json"
	}

	if debug {
		level = zapcore.DebugLevel
	}

	cfg := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "msg",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
	}
	return cfg.Build()
}

// WithFields safely attaches the provided fields to the logger.
// A nil logger defaults to a no-op logger so callers never have to guard.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// MatchFields returns the standard fields attached to per-match log entries.
// Empty values are omitted to keep entries compact.
func MatchFields(profile, candidateID, jobID string) []zap.Field {
	pairs := []struct {
		key   string
		value string
	}{
		{"profile", profile},
		{"candidate_id", candidateID},
		{"job_id", jobID},
	}

	fields := make([]zap.Field, 0, len(pairs))
	for _, p := range pairs {
		value := strings.TrimSpace(p.value)
		if value == "" {
			continue
		}
		fields = append(fields, zap.String(p.key, value))
	}
	return fields
}
