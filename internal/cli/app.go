// Package cli implements the gudang command line.
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Berani354/Barang/config"
	"github.com/Berani354/Barang/internal/domain/repository"
	"github.com/Berani354/Barang/internal/infrastructure/logger"
	"github.com/Berani354/Barang/internal/infrastructure/spreadsheet"
	"github.com/Berani354/Barang/internal/infrastructure/storage"
	"github.com/Berani354/Barang/internal/usecase"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// Register the subcommands.
// A main package calls Register and then Execute on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&addCmd{}, "inventory")
	c.Register(&listCmd{}, "inventory")
	c.Register(&findCmd{}, "inventory")
	c.Register(&stockCmd{}, "inventory")
	c.Register(&removeCmd{}, "inventory")

	c.Register(&totalCmd{}, "reports")
	c.Register(&breakdownCmd{}, "reports")

	c.Register(&exportCmd{}, "spreadsheet")
	c.Register(&importCmd{}, "spreadsheet")

	c.Register(&botCmd{}, "services")
}

// a CLI invocation is short lived, package level flags are fine here
var inventoryFile = flag.String("file", "", "Path to the inventory spreadsheet (overrides INVENTORY_FILE)")

// app holds everything a command needs, opened once per invocation.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	sheet     repository.InventorySheet
	repo      repository.InventoryRepository
	inventory usecase.InventoryUseCase
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if *inventoryFile != "" {
		cfg.InventoryPath = *inventoryFile
	}

	zl, err := logger.NewZapLogger(cfg)
	if err != nil {
		return nil, err
	}

	sheet := spreadsheet.NewXLSXSheet(cfg.InventorySheet, zl)
	repo, err := storage.NewXLSXInventoryRepository(ctx, cfg.InventoryPath, sheet, zl)
	if err != nil {
		zl.Sync()
		return nil, fmt.Errorf("failed to open inventory %s: %w", cfg.InventoryPath, err)
	}

	return &app{
		cfg:       cfg,
		logger:    zl,
		sheet:     sheet,
		repo:      repo,
		inventory: usecase.NewInventoryUseCase(repo, sheet, zl),
	}, nil
}

func (a *app) Close() {
	if err := a.repo.Close(); err != nil {
		a.logger.Warn("failed to close inventory", zap.Error(err))
	}
	_ = a.logger.Sync()
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, err)
	return subcommands.ExitFailure
}
