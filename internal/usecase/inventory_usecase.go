package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Berani354/Barang/internal/domain/entity"
	"github.com/Berani354/Barang/internal/domain/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrNothingToImport is returned when an uploaded spreadsheet holds no known items.
var ErrNothingToImport = errors.New("no inventory items found in spreadsheet")

// ImportResult summarizes a spreadsheet import.
type ImportResult struct {
	Imported int
	Skipped  int
}

// InventoryUseCase inventory operations used by the CLI and the bot
type InventoryUseCase interface {
	// Add validates and stores a new item
	Add(ctx context.Context, item entity.Item) error

	// Find first case-insensitive name match
	Find(ctx context.Context, name string) (*entity.Item, bool)

	// UpdateStock adds delta to the item's stock
	UpdateStock(ctx context.Context, name string, delta int) (bool, error)

	// Remove deletes the item
	Remove(ctx context.Context, name string) (bool, error)

	// TotalValue sum of price*stock
	TotalValue(ctx context.Context) decimal.Decimal

	// List all items in insertion order
	List(ctx context.Context) []entity.Item

	// ListByCategory items of one category
	ListByCategory(ctx context.Context, category entity.Category) []entity.Item

	// Breakdown item counts and shares per category
	Breakdown(ctx context.Context) entity.Breakdown

	// InventoryAsText plain-text listing for the assistant
	InventoryAsText(ctx context.Context) string

	// Import replaces the inventory with an uploaded spreadsheet
	Import(ctx context.Context, data []byte, filename string) (ImportResult, error)

	// Export the inventory as an xlsx document
	Export(ctx context.Context) ([]byte, error)
}

type inventoryUseCase struct {
	repo   repository.InventoryRepository
	sheet  repository.InventorySheet
	logger *zap.Logger
}

// NewInventoryUseCase creates an InventoryUseCase
func NewInventoryUseCase(repo repository.InventoryRepository, sheet repository.InventorySheet, logger *zap.Logger) InventoryUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &inventoryUseCase{repo: repo, sheet: sheet, logger: logger}
}

func (u *inventoryUseCase) Add(ctx context.Context, item entity.Item) error {
	item.Name = strings.TrimSpace(item.Name)
	if err := item.Validate(); err != nil {
		return err
	}
	if err := u.repo.Add(ctx, item); err != nil {
		return err
	}
	u.logger.Info("item added",
		zap.String("name", item.Name),
		zap.String("category", string(item.Category())),
		zap.Int("stock", item.Stock))
	return nil
}

func (u *inventoryUseCase) Find(ctx context.Context, name string) (*entity.Item, bool) {
	return u.repo.Find(ctx, strings.TrimSpace(name))
}

func (u *inventoryUseCase) UpdateStock(ctx context.Context, name string, delta int) (bool, error) {
	ok, err := u.repo.UpdateStock(ctx, strings.TrimSpace(name), delta)
	if err != nil {
		return false, err
	}
	if ok {
		u.logger.Info("stock updated", zap.String("name", name), zap.Int("delta", delta))
	}
	return ok, nil
}

func (u *inventoryUseCase) Remove(ctx context.Context, name string) (bool, error) {
	ok, err := u.repo.Remove(ctx, strings.TrimSpace(name))
	if err != nil {
		return false, err
	}
	if ok {
		u.logger.Info("item removed", zap.String("name", name))
	}
	return ok, nil
}

func (u *inventoryUseCase) TotalValue(ctx context.Context) decimal.Decimal {
	return u.repo.TotalValue(ctx)
}

func (u *inventoryUseCase) List(ctx context.Context) []entity.Item {
	return u.repo.ListAll(ctx)
}

func (u *inventoryUseCase) ListByCategory(ctx context.Context, category entity.Category) []entity.Item {
	return u.repo.ListByCategory(ctx, category)
}

// Breakdown percentages are rounded to one decimal place.
func (u *inventoryUseCase) Breakdown(ctx context.Context) entity.Breakdown {
	items := u.repo.ListAll(ctx)
	out := entity.Breakdown{Total: len(items)}

	counts := make(map[entity.Category]int)
	values := make(map[entity.Category]decimal.Decimal)
	for _, item := range items {
		c := item.Category()
		counts[c]++
		values[c] = values[c].Add(item.Value())
	}

	for _, c := range entity.Categories() {
		share := entity.CategoryShare{Category: c, Count: counts[c], Value: values[c], Percent: decimal.Zero}
		if out.Total > 0 {
			share.Percent = decimal.NewFromInt(int64(counts[c])).
				Mul(decimal.NewFromInt(100)).
				DivRound(decimal.NewFromInt(int64(out.Total)), 1)
		}
		out.Shares = append(out.Shares, share)
	}
	return out
}

func (u *inventoryUseCase) InventoryAsText(ctx context.Context) string {
	items := u.repo.ListAll(ctx)
	if len(items) == 0 {
		return "The warehouse is empty."
	}

	var sb strings.Builder
	for _, c := range entity.Categories() {
		n := 0
		for _, item := range items {
			if item.Category() != c {
				continue
			}
			if n == 0 {
				fmt.Fprintf(&sb, "%s:\n", c.Label())
			}
			n++
			fmt.Fprintf(&sb, "  %d. %s\n", n, item.Describe())
		}
	}
	fmt.Fprintf(&sb, "Total inventory value: %s IDR\n", u.repo.TotalValue(ctx).StringFixed(2))
	return sb.String()
}

func (u *inventoryUseCase) Import(ctx context.Context, data []byte, filename string) (ImportResult, error) {
	contents, err := u.sheet.ReadBytes(ctx, data, filename)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	if len(contents.Items) == 0 {
		return ImportResult{Skipped: contents.Skipped}, ErrNothingToImport
	}

	if err := u.repo.ReplaceAll(ctx, contents.Items); err != nil {
		return ImportResult{}, fmt.Errorf("failed to replace inventory: %w", err)
	}

	u.logger.Info("inventory imported",
		zap.String("file", filename),
		zap.Int("items", len(contents.Items)),
		zap.Int("skipped", contents.Skipped))
	return ImportResult{Imported: len(contents.Items), Skipped: contents.Skipped}, nil
}

func (u *inventoryUseCase) Export(ctx context.Context) ([]byte, error) {
	return u.sheet.WriteBytes(ctx, u.repo.ListAll(ctx))
}
