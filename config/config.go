package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config application configuration
type Config struct {
	AppEnv         string
	InventoryPath  string
	InventorySheet string
	TelegramToken  string
	GeminiAPIKey   string
	AdminPassword  string
	ChatDBPath     string
	MaxContextSize int
	Logger         LoggerConfig
}

// LoggerConfig zap logger settings
type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

// IsDevelopment reports whether APP_ENV selects development defaults.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development" || c.AppEnv == "dev"
}

// Load reads .env (when present) and the environment
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "production"),
		InventoryPath:  getEnv("INVENTORY_FILE", "gudang.xlsx"),
		InventorySheet: getEnv("INVENTORY_SHEET", "Sheet1"),
		TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		ChatDBPath:     getEnv("CHAT_DB_PATH", "data/chat.db"),
		MaxContextSize: 20,
		Logger: LoggerConfig{
			Level:    getEnv("LOGGER_LEVEL", "info"),
			Encoding: getEnv("LOGGER_ENCODING", "console"),
		},
	}

	if raw := os.Getenv("MAX_CONTEXT_SIZE"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("MAX_CONTEXT_SIZE is not a non-negative integer: %q", raw)
		}
		cfg.MaxContextSize = n
	}

	var err error
	if cfg.Logger.DisableCaller, err = getEnvBool("LOGGER_DISABLE_CALLER", false); err != nil {
		return nil, err
	}
	if cfg.Logger.DisableStacktrace, err = getEnvBool("LOGGER_DISABLE_STACKTRACE", true); err != nil {
		return nil, err
	}

	if cfg.InventoryPath == "" {
		return nil, fmt.Errorf("INVENTORY_FILE is empty")
	}
	return cfg, nil
}

// RequireBot validates the settings only the Telegram bot needs
func (c *Config) RequireBot() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is empty")
	}
	if c.AdminPassword == "" {
		return fmt.Errorf("ADMIN_PASSWORD environment variable is empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s is not a boolean: %q", key, value)
	}
	return b, nil
}
