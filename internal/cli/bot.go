package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Berani354/Barang/internal/delivery/telegram"
	"github.com/Berani354/Barang/internal/domain/repository"
	"github.com/Berani354/Barang/internal/infrastructure/gemini"
	"github.com/Berani354/Barang/internal/infrastructure/storage"
	"github.com/Berani354/Barang/internal/usecase"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

type botCmd struct{}

func (*botCmd) Name() string     { return "bot" }
func (*botCmd) Synopsis() string { return "serve the inventory over a Telegram bot" }
func (*botCmd) Usage() string {
	return `gudang bot

  Runs until interrupted. Requires TELEGRAM_BOT_TOKEN and ADMIN_PASSWORD.
  GEMINI_API_KEY enables the assistant; CHAT_DB_PATH (empty for memory only)
  keeps its conversations.
`
}
func (*botCmd) SetFlags(*flag.FlagSet) {}

func (*botCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	if err := a.cfg.RequireBot(); err != nil {
		return fail(err)
	}

	chatRepo, err := openChatRepository(a.cfg.ChatDBPath, a.cfg.MaxContextSize)
	if err != nil {
		return fail(err)
	}
	defer chatRepo.Close()

	var aiRepo repository.AIRepository
	if a.cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(ctx, a.cfg.GeminiAPIKey, a.logger)
		if err != nil {
			return fail(err)
		}
		defer client.Close()
		aiRepo = client
	} else {
		a.logger.Warn("GEMINI_API_KEY is empty, assistant disabled")
	}

	assistant := usecase.NewAssistantUseCase(aiRepo, chatRepo, a.inventory, a.logger)
	admin := usecase.NewAdminUseCase(storage.NewMemoryAdminRepository(), a.cfg.AdminPassword, a.logger)

	handler, err := telegram.NewBotHandler(a.cfg.TelegramToken, a.inventory, assistant, admin, a.logger)
	if err != nil {
		return fail(err)
	}

	a.logger.Info("serving inventory",
		zap.String("bot", handler.GetBotUsername()),
		zap.String("file", a.cfg.InventoryPath),
		zap.Int("items", len(a.inventory.List(ctx))))

	if err := handler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

func openChatRepository(dbPath string, maxContextSize int) (repository.ChatRepository, error) {
	if dbPath == "" {
		return storage.NewMemoryChatRepository(maxContextSize), nil
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return storage.NewSQLiteChatRepository(dbPath, maxContextSize)
}
