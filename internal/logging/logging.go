// Package logging builds the process logger.
package logging

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tasneemkhan/portfolio/internal/config"
)

// New returns a JSON logger, or a console logger in development mode.
func New(cfg config.LogConfig) (logger *zap.Logger, err error) {
	var level zapcore.Level
	level, err = zapcore.ParseLevel(cfg.Level)
	if err != nil {
		err = errors.Wrapf(err, "invalid log level %q", cfg.Level)
		return nil, err
	}

	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableStacktrace = !cfg.Development

	logger, err = zc.Build()
	if err != nil {
		err = errors.Wrap(err, "failed to build logger")
		return nil, err
	}
	return logger, err
}
