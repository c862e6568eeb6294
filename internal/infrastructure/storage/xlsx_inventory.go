package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/Berani354/Barang/internal/domain/entity"
	"github.com/Berani354/Barang/internal/domain/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type xlsxInventoryRepository struct {
	mu     sync.Mutex
	path   string
	sheet  repository.InventorySheet
	items  []entity.Item
	report repository.LoadReport
	logger *zap.Logger
}

// NewXLSXInventoryRepository loads the inventory at path and returns a repository
// that rewrites the whole file after every mutation. A missing file is an empty
// inventory; any other read failure is returned.
func NewXLSXInventoryRepository(ctx context.Context, path string, sheet repository.InventorySheet, logger *zap.Logger) (repository.InventoryRepository, error) {
	if path == "" {
		return nil, errors.New("inventory path is empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &xlsxInventoryRepository{
		path:   path,
		sheet:  sheet,
		logger: logger.With(zap.String("inventory", path)),
	}
	if err := r.load(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *xlsxInventoryRepository) load(ctx context.Context) error {
	if _, err := os.Stat(r.path); errors.Is(err, fs.ErrNotExist) {
		r.logger.Info("inventory file does not exist, starting empty")
		return nil
	}

	contents, err := r.sheet.ReadFile(ctx, r.path)
	if err != nil {
		return fmt.Errorf("failed to load inventory %s: %w", r.path, err)
	}

	r.items = contents.Items
	r.report = repository.LoadReport{Loaded: len(contents.Items), Skipped: contents.Skipped}
	if contents.Skipped > 0 {
		r.logger.Warn("rows with unknown category were skipped",
			zap.Int("skipped", contents.Skipped),
			zap.Strings("categories", contents.SkippedTags))
	}
	r.logger.Info("inventory loaded", zap.Int("items", r.report.Loaded))
	return nil
}

// commit persists next and only then makes it the in-memory collection.
// Caller must hold r.mu.
func (r *xlsxInventoryRepository) commit(ctx context.Context, next []entity.Item) error {
	if err := r.sheet.WriteFile(ctx, r.path, next); err != nil {
		r.logger.Error("failed to persist inventory", zap.Error(err))
		return fmt.Errorf("failed to persist inventory: %w", err)
	}
	r.items = next
	return nil
}

// indexOf first case-insensitive match, -1 if none. Caller must hold r.mu.
func (r *xlsxInventoryRepository) indexOf(name string) int {
	for i, item := range r.items {
		if item.MatchesName(name) {
			return i
		}
	}
	return -1
}

func (r *xlsxInventoryRepository) snapshot() []entity.Item {
	next := make([]entity.Item, len(r.items), len(r.items)+1)
	copy(next, r.items)
	return next
}

// Add appends the item and persists the whole collection
func (r *xlsxInventoryRepository) Add(ctx context.Context, item entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.commit(ctx, append(r.snapshot(), item)); err != nil {
		return err
	}
	r.logger.Debug("item added", zap.String("name", item.Name), zap.String("category", string(item.Category())))
	return nil
}

// Find returns a copy of the first item whose name matches case-insensitively
func (r *xlsxInventoryRepository) Find(ctx context.Context, name string) (*entity.Item, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(name)
	if idx < 0 {
		return nil, false
	}
	item := r.items[idx]
	return &item, true
}

// UpdateStock adds delta to the first match's stock
func (r *xlsxInventoryRepository) UpdateStock(ctx context.Context, name string, delta int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(name)
	if idx < 0 {
		return false, nil
	}

	next := r.snapshot()
	next[idx].Stock += delta
	if err := r.commit(ctx, next); err != nil {
		return false, err
	}
	if next[idx].Stock < 0 {
		r.logger.Warn("stock went negative", zap.String("name", next[idx].Name), zap.Int("stock", next[idx].Stock))
	}
	return true, nil
}

// Remove deletes the first match
func (r *xlsxInventoryRepository) Remove(ctx context.Context, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(name)
	if idx < 0 {
		return false, nil
	}

	next := make([]entity.Item, 0, len(r.items)-1)
	next = append(next, r.items[:idx]...)
	next = append(next, r.items[idx+1:]...)
	if err := r.commit(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// TotalValue sum of price*stock
func (r *xlsxInventoryRepository) TotalValue(ctx context.Context) decimal.Decimal {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := decimal.Zero
	for _, item := range r.items {
		total = total.Add(item.Value())
	}
	return total
}

// ListAll insertion-ordered snapshot
func (r *xlsxInventoryRepository) ListAll(ctx context.Context) []entity.Item {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.snapshot()
}

// ListByCategory snapshot filtered by variant
func (r *xlsxInventoryRepository) ListByCategory(ctx context.Context, category entity.Category) []entity.Item {
	r.mu.Lock()
	defer r.mu.Unlock()

	var results []entity.Item
	for _, item := range r.items {
		if item.Category() == category {
			results = append(results, item)
		}
	}
	return results
}

// ReplaceAll swaps the whole collection and persists it
func (r *xlsxInventoryRepository) ReplaceAll(ctx context.Context, items []entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]entity.Item, len(items))
	copy(next, items)
	return r.commit(ctx, next)
}

// LoadReport result of the startup load
func (r *xlsxInventoryRepository) LoadReport() repository.LoadReport {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.report
}

// Close waits for any in-flight operation. Every mutation is already on disk.
func (r *xlsxInventoryRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return nil
}
