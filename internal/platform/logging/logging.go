package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"lifeos/internal/platform/config"
)

// New builds the CLI logger. It writes JSON lines to stderr.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	return build(cfg, "stderr")
}

// NewFile builds a logger for the TUI, which owns the terminal and cannot
// share stderr with log output.
func NewFile(cfg config.LogConfig, path string) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	return build(cfg, path)
}

func build(cfg config.LogConfig, sink string) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(levelOrDefault(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{sink}
	zc.ErrorOutputPaths = []string{sink}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.Sampling = nil
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Named("lifeos"), nil
}

func levelOrDefault(level string) string {
	if level == "" {
		return "info"
	}
	return level
}
