package logger

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/config"
)

func NewProductionLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	config := zap.NewProductionConfig()
	config.Level = level
	return config.Build()
}

// NewCommandLogger writes human readable logs to stderr for the command line tools.
func NewCommandLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	config := zap.NewDevelopmentConfig()
	config.Level = level
	config.DisableStacktrace = true
	return config.Build()
}

func Suggar(logger *zap.Logger) *zap.SugaredLogger {
	return logger.Sugar()
}
