package config_test

import (
	"testing"

	"github.com/Berani354/Barang/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env here
	for _, key := range []string{"APP_ENV", "INVENTORY_FILE", "INVENTORY_SHEET", "CHAT_DB_PATH", "MAX_CONTEXT_SIZE", "LOGGER_LEVEL", "LOGGER_DISABLE_CALLER", "LOGGER_DISABLE_STACKTRACE", "TELEGRAM_BOT_TOKEN", "ADMIN_PASSWORD"} {
		t.Setenv(key, "")
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.InventoryPath != "gudang.xlsx" || cfg.InventorySheet != "Sheet1" {
		t.Fatalf("unexpected inventory defaults %q %q", cfg.InventoryPath, cfg.InventorySheet)
	}
	if cfg.MaxContextSize != 20 || cfg.ChatDBPath != "data/chat.db" {
		t.Fatalf("unexpected chat defaults %d %q", cfg.MaxContextSize, cfg.ChatDBPath)
	}
	if !cfg.Logger.DisableStacktrace || cfg.Logger.Level != "info" {
		t.Fatalf("unexpected logger defaults %+v", cfg.Logger)
	}
	if err := cfg.RequireBot(); err == nil {
		t.Fatal("RequireBot should fail without a token")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "development")
	t.Setenv("INVENTORY_FILE", "/tmp/stock.xlsx")
	t.Setenv("MAX_CONTEXT_SIZE", "5")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("ADMIN_PASSWORD", "secret")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.IsDevelopment() || cfg.InventoryPath != "/tmp/stock.xlsx" || cfg.MaxContextSize != 5 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if err := cfg.RequireBot(); err != nil {
		t.Fatalf("RequireBot: %v", err)
	}
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MAX_CONTEXT_SIZE", "many")
	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for MAX_CONTEXT_SIZE=many")
	}

	t.Setenv("MAX_CONTEXT_SIZE", "")
	t.Setenv("LOGGER_DISABLE_CALLER", "maybe")
	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for LOGGER_DISABLE_CALLER=maybe")
	}
}
