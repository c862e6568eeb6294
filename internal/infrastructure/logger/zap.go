package logger

import (
	"fmt"

	"github.com/Berani354/Barang/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewZapLogger builds the application logger. Development mode switches to
// console output at debug level.
func NewZapLogger(cfg *config.Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.IsDevelopment() {
		zc = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOGGER_LEVEL %q: %w", cfg.Logger.Level, err)
	}
	if cfg.IsDevelopment() && level > zapcore.DebugLevel {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	if cfg.Logger.Encoding != "" {
		zc.Encoding = cfg.Logger.Encoding
	}
	zc.DisableCaller = cfg.Logger.DisableCaller
	zc.DisableStacktrace = cfg.Logger.DisableStacktrace
	// keep stdout free for command output
	zc.OutputPaths = []string{"stderr"}

	return zc.Build()
}
