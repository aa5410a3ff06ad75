// Package logging builds the zap logger used by the command line tool
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logging configuration
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // "json" or "console"
	OutputPath string // defaults to stderr
}

// New creates a logger. Logs go to stderr so that stdout carries only the report.
func New(config Config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(config.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", config.Level, err)
	}

	var zapConfig zap.Config
	switch config.Format {
	case "json":
		zapConfig = zap.NewProductionConfig()
	case "", "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapConfig.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("invalid log format %q (expected json or console)", config.Format)
	}
	zapConfig.Level = level
	zapConfig.Development = false

	output := config.OutputPath
	if output == "" {
		output = "stderr"
	}
	zapConfig.OutputPaths = []string{output}
	zapConfig.ErrorOutputPaths = []string{"stderr"}

	return zapConfig.Build()
}

// LogDataQuality logs a summary of excluded rows per reason at warn level
func LogDataQuality(logger *zap.Logger, entity string, dropped map[string]int) {
	for reason, count := range dropped {
		if count == 0 {
			continue
		}
		logger.Warn("rows excluded",
			zap.String("entity", entity),
			zap.String("reason", reason),
			zap.Int("count", count),
			zap.String("type", "data_quality"))
	}
}
