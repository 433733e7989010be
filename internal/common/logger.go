package common

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"zentra/internal/config"
)

// NewLogger builds a JSON production logger, or a console development logger
// when LOG_FORMAT=console.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.Level, err)
	}

	zc := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
