package logger_test

import (
	"testing"

	"github.com/Berani354/Barang/config"
	"github.com/Berani354/Barang/internal/infrastructure/logger"
	"go.uber.org/zap/zapcore"
)

func TestNewZapLogger(t *testing.T) {
	cfg := &config.Config{AppEnv: "production", Logger: config.LoggerConfig{Level: "warn", Encoding: "json"}}
	log, err := logger.NewZapLogger(cfg)
	if err != nil {
		t.Fatalf("NewZapLogger: %v", err)
	}
	if log.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("info should be disabled at warn level")
	}
	if !log.Core().Enabled(zapcore.WarnLevel) {
		t.Fatal("warn should be enabled")
	}

	cfg.AppEnv = "development"
	dev, err := logger.NewZapLogger(cfg)
	if err != nil {
		t.Fatalf("NewZapLogger dev: %v", err)
	}
	if !dev.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("development logger should log debug")
	}
}

func TestNewZapLoggerRejectsBadLevel(t *testing.T) {
	cfg := &config.Config{Logger: config.LoggerConfig{Level: "loud"}}
	if _, err := logger.NewZapLogger(cfg); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
