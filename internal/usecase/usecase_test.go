package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Berani354/Barang/internal/domain/entity"
	"github.com/Berani354/Barang/internal/infrastructure/spreadsheet"
	"github.com/Berani354/Barang/internal/infrastructure/storage"
	"github.com/Berani354/Barang/internal/usecase"
	"github.com/shopspring/decimal"
)

func newInventory(t *testing.T) usecase.InventoryUseCase {
	t.Helper()
	sheet := spreadsheet.NewXLSXSheet("", nil)
	repo, err := storage.NewXLSXInventoryRepository(context.Background(), filepath.Join(t.TempDir(), "gudang.xlsx"), sheet, nil)
	if err != nil {
		t.Fatalf("NewXLSXInventoryRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return usecase.NewInventoryUseCase(repo, sheet, nil)
}

func seed(t *testing.T, inv usecase.InventoryUseCase) {
	t.Helper()
	ctx := context.Background()
	tv, _ := entity.NewElectronics("TV", decimal.NewFromInt(500), 2, "Acme", 1)
	radio, _ := entity.NewElectronics("Radio", decimal.NewFromInt(50), 4, "Acme", 0)
	shirt, _ := entity.NewClothing("Shirt", decimal.NewFromInt(20), 10, "M", "Cotton")
	for _, item := range []entity.Item{tv, radio, shirt} {
		if err := inv.Add(ctx, item); err != nil {
			t.Fatalf("Add(%s): %v", item.Name, err)
		}
	}
}

func TestAddRejectsInvalidItems(t *testing.T) {
	inv := newInventory(t)
	ctx := context.Background()

	err := inv.Add(ctx, entity.Item{Name: "  ", Price: decimal.NewFromInt(1), Details: entity.Clothing{}})
	if !errors.Is(err, entity.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	err = inv.Add(ctx, entity.Item{Name: "Shirt", Price: decimal.NewFromInt(1), Stock: -1, Details: entity.Clothing{}})
	if !errors.Is(err, entity.ErrNegativeStock) {
		t.Fatalf("expected ErrNegativeStock, got %v", err)
	}
	if n := len(inv.List(ctx)); n != 0 {
		t.Fatalf("invalid items must not be stored, got %d", n)
	}
}

func TestAddTrimsName(t *testing.T) {
	inv := newInventory(t)
	ctx := context.Background()
	if err := inv.Add(ctx, entity.Item{Name: " Pen ", Price: decimal.NewFromInt(1), Stock: 1, Details: entity.SchoolSupply{}}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if item, ok := inv.Find(ctx, "pen"); !ok || item.Name != "Pen" {
		t.Fatalf("Find = %+v, %v", item, ok)
	}
}

func TestTotalAndMutations(t *testing.T) {
	inv := newInventory(t)
	ctx := context.Background()
	seed(t, inv)

	if got := inv.TotalValue(ctx); !got.Equal(decimal.NewFromInt(1400)) {
		t.Fatalf("TotalValue = %s, want 1400", got)
	}
	if ok, err := inv.UpdateStock(ctx, "shirt", 5); err != nil || !ok {
		t.Fatalf("UpdateStock = %v, %v", ok, err)
	}
	if ok, err := inv.Remove(ctx, "radio"); err != nil || !ok {
		t.Fatalf("Remove = %v, %v", ok, err)
	}
	if ok, _ := inv.Remove(ctx, "radio"); ok {
		t.Fatal("second Remove should report not found")
	}
	if got := inv.TotalValue(ctx); !got.Equal(decimal.NewFromInt(1300)) {
		t.Fatalf("TotalValue = %s, want 1300", got)
	}
	if got := inv.ListByCategory(ctx, entity.CategoryElectronics); len(got) != 1 {
		t.Fatalf("expected 1 electronics item, got %d", len(got))
	}
}

func TestBreakdown(t *testing.T) {
	inv := newInventory(t)
	ctx := context.Background()

	empty := inv.Breakdown(ctx)
	if empty.Total != 0 || len(empty.Shares) != 3 || !empty.Shares[0].Percent.IsZero() {
		t.Fatalf("unexpected empty breakdown %+v", empty)
	}

	seed(t, inv)
	b := inv.Breakdown(ctx)
	if b.Total != 3 {
		t.Fatalf("Total = %d", b.Total)
	}
	want := []struct {
		category entity.Category
		count    int
		percent  string
		value    int64
	}{
		{entity.CategoryElectronics, 2, "66.7", 1200},
		{entity.CategoryClothing, 1, "33.3", 200},
		{entity.CategorySchoolSupply, 0, "0", 0},
	}
	for i, w := range want {
		s := b.Shares[i]
		if s.Category != w.category || s.Count != w.count || !s.Percent.Equal(decimal.RequireFromString(w.percent)) || !s.Value.Equal(decimal.NewFromInt(w.value)) {
			t.Fatalf("share %d = %+v, want %+v", i, s, w)
		}
	}
}

func TestInventoryAsText(t *testing.T) {
	inv := newInventory(t)
	ctx := context.Background()
	if got := inv.InventoryAsText(ctx); !strings.Contains(got, "empty") {
		t.Fatalf("unexpected text for empty inventory %q", got)
	}

	seed(t, inv)
	got := inv.InventoryAsText(ctx)
	for _, want := range []string{"Electronics:", "Clothing:", "Name: TV", "Material: Cotton", "1400.00 IDR"} {
		if !strings.Contains(got, want) {
			t.Fatalf("text missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "School supplies:") {
		t.Fatalf("empty categories should be omitted:\n%s", got)
	}
}

func TestExportImport(t *testing.T) {
	src := newInventory(t)
	ctx := context.Background()
	seed(t, src)

	data, err := src.Export(ctx)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	dst := newInventory(t)
	pen, _ := entity.NewSchoolSupply("Pen", decimal.NewFromInt(3), 1, "Ballpoint", "Pilot")
	if err := dst.Add(ctx, pen); err != nil {
		t.Fatal(err)
	}
	res, err := dst.Import(ctx, data, "export.xlsx")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Imported != 3 || res.Skipped != 0 {
		t.Fatalf("ImportResult = %+v", res)
	}
	if _, ok := dst.Find(ctx, "pen"); ok {
		t.Fatal("import should replace the existing inventory")
	}
	if !dst.TotalValue(ctx).Equal(src.TotalValue(ctx)) {
		t.Fatalf("imported total %s != exported total %s", dst.TotalValue(ctx), src.TotalValue(ctx))
	}
}

func TestImportEmptySpreadsheet(t *testing.T) {
	inv := newInventory(t)
	ctx := context.Background()
	data, err := spreadsheet.NewXLSXSheet("", nil).WriteBytes(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := inv.Import(ctx, data, "empty.xlsx"); !errors.Is(err, usecase.ErrNothingToImport) {
		t.Fatalf("expected ErrNothingToImport, got %v", err)
	}
}
