package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the JSON service logger. An empty level means debug in
// development and info otherwise.
func New(level string, development bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Encoding = "json"
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true

	lvl, err := resolveLevel(level, development)
	if err != nil {
		return nil, err
	}
	cfg.Level = lvl

	built, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return built.With(zap.String("service", "transporte-xpto")), nil
}

func resolveLevel(level string, development bool) (zap.AtomicLevel, error) {
	if strings.TrimSpace(level) != "" {
		var parsed zapcore.Level
		if err := parsed.Set(level); err != nil {
			return zap.AtomicLevel{}, fmt.Errorf("invalid level %q: %w", level, err)
		}
		return zap.NewAtomicLevelAt(parsed), nil
	}
	if development {
		return zap.NewAtomicLevelAt(zapcore.DebugLevel), nil
	}
	return zap.NewAtomicLevelAt(zapcore.InfoLevel), nil
}
