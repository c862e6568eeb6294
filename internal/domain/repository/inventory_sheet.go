package repository

import (
	"context"

	"github.com/Berani354/Barang/internal/domain/entity"
)

// SheetContents is what a decoded inventory spreadsheet yields.
type SheetContents struct {
	Items       []entity.Item
	Skipped     int
	SkippedTags []string
}

// InventorySheet reads and writes the tabular inventory file
type InventorySheet interface {
	// ReadFile decodes the spreadsheet at path
	ReadFile(ctx context.Context, path string) (*SheetContents, error)

	// ReadBytes decodes an uploaded spreadsheet
	ReadBytes(ctx context.Context, data []byte, filename string) (*SheetContents, error)

	// WriteFile replaces the file at path with the given items
	WriteFile(ctx context.Context, path string, items []entity.Item) error

	// WriteBytes encodes the items as an xlsx document
	WriteBytes(ctx context.Context, items []entity.Item) ([]byte, error)
}
