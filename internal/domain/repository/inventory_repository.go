package repository

import (
	"context"

	"github.com/Berani354/Barang/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LoadReport describes what the startup load read from the persisted file.
type LoadReport struct {
	Loaded  int
	Skipped int // rows with an unknown category tag
}

// InventoryRepository owns the item collection and keeps it in sync with storage
type InventoryRepository interface {
	// Add appends the item and persists the whole collection
	Add(ctx context.Context, item entity.Item) error

	// Find returns the first item whose name matches case-insensitively
	Find(ctx context.Context, name string) (*entity.Item, bool)

	// UpdateStock adds delta to the first match's stock. The delta is not clamped.
	UpdateStock(ctx context.Context, name string, delta int) (bool, error)

	// Remove deletes the first match
	Remove(ctx context.Context, name string) (bool, error)

	// TotalValue sum of price*stock
	TotalValue(ctx context.Context) decimal.Decimal

	// ListAll insertion-ordered snapshot
	ListAll(ctx context.Context) []entity.Item

	// ListByCategory snapshot filtered by variant
	ListByCategory(ctx context.Context, category entity.Category) []entity.Item

	// ReplaceAll swaps the whole collection and persists it
	ReplaceAll(ctx context.Context, items []entity.Item) error

	// LoadReport result of the startup load
	LoadReport() LoadReport

	// Close releases the repository
	Close() error
}
