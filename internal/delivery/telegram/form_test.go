package telegram

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Berani354/Barang/internal/domain/entity"
	"github.com/shopspring/decimal"
)

func fill(t *testing.T, answers ...string) *addForm {
	t.Helper()
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	f := newAddForm(now)
	for _, a := range answers {
		if _, err := f.step(a, now); err != nil {
			t.Fatalf("step(%q): %v", a, err)
		}
	}
	return f
}

func TestAddFormElectronics(t *testing.T) {
	f := fill(t, "electronics", " TV ", "1,500.50", "2", "Acme", "1")
	if f.Stage != formStageDone {
		t.Fatalf("stage = %d, want done", f.Stage)
	}
	item, err := f.item()
	if err != nil {
		t.Fatalf("item: %v", err)
	}
	want := entity.Electronics{Brand: "Acme", WarrantyYears: 1}
	if item.Name != "TV" || !item.Price.Equal(decimal.RequireFromString("1500.50")) || item.Stock != 2 || item.Details != want {
		t.Fatalf("unexpected item %+v", item)
	}
}

func TestAddFormClothingAndSupplies(t *testing.T) {
	item, err := fill(t, "Pakaian", "Shirt", "20", "10", "M", "Cotton").item()
	if err != nil {
		t.Fatalf("clothing: %v", err)
	}
	if item.Details != (entity.Clothing{Size: "M", Material: "Cotton"}) {
		t.Fatalf("unexpected clothing %+v", item.Details)
	}

	item, err = fill(t, "school supplies", "Pen", "3", "100", "ballpoint", "Pilot").item()
	if err != nil {
		t.Fatalf("supply: %v", err)
	}
	if item.Details != (entity.SchoolSupply{Kind: "ballpoint", Brand: "Pilot"}) {
		t.Fatalf("unexpected supply %+v", item.Details)
	}
}

func TestAddFormRejectsBadAnswers(t *testing.T) {
	now := time.Now()
	f := newAddForm(now)
	if _, err := f.step("furniture", now); err == nil {
		t.Fatal("expected unknown category error")
	}
	if f.Stage != formStageNeedCategory {
		t.Fatalf("stage moved on a rejected answer: %d", f.Stage)
	}

	f = fill(t, "electronics", "TV")
	if _, err := f.step("-1", now); !errors.Is(err, entity.ErrNegativePrice) {
		t.Fatalf("negative price: got %v", err)
	}
	if _, err := f.step("cheap", now); err == nil {
		t.Fatal("expected error for non-numeric price")
	}

	f = fill(t, "electronics", "TV", "10")
	if _, err := f.step("1.5", now); err == nil {
		t.Fatal("expected error for fractional stock")
	}
	if _, err := f.step("-3", now); !errors.Is(err, entity.ErrNegativeStock) {
		t.Fatalf("negative stock: got %v", err)
	}

	f = fill(t, "electronics", "TV", "10", "1", "Acme")
	if _, err := f.step("-1", now); !errors.Is(err, entity.ErrNegativeWarranty) {
		t.Fatalf("negative warranty: got %v", err)
	}
	if _, err := f.item(); err == nil {
		t.Fatal("item() on an incomplete form should fail")
	}
}

func TestAddFormEmptyName(t *testing.T) {
	f := fill(t, "clothing")
	if _, err := f.step("   ", time.Now()); !errors.Is(err, entity.ErrEmptyName) {
		t.Fatalf("got %v, want ErrEmptyName", err)
	}
}

func TestParseStockArgs(t *testing.T) {
	cases := []struct {
		args  string
		name  string
		delta int
		ok    bool
	}{
		{"TV -2", "TV", -2, true},
		{"Smart TV +5", "Smart TV", 5, true},
		{"  Pen   10 ", "Pen", 10, true},
		{"TV", "", 0, false},
		{"TV many", "", 0, false},
		{"", "", 0, false},
	}
	for _, c := range cases {
		name, delta, err := parseStockArgs(c.args)
		if (err == nil) != c.ok {
			t.Fatalf("parseStockArgs(%q) err = %v", c.args, err)
		}
		if c.ok && (name != c.name || delta != c.delta) {
			t.Fatalf("parseStockArgs(%q) = %q, %d", c.args, name, delta)
		}
	}
}

func TestSplitMessage(t *testing.T) {
	if got := splitMessage("short", 10); len(got) != 1 || got[0] != "short" {
		t.Fatalf("unexpected split %q", got)
	}

	text := "aaaa\nbbbb\ncccc\n"
	got := splitMessage(text, 10)
	if strings.Join(got, "") != text {
		t.Fatalf("chunks lost text: %q", got)
	}
	for _, c := range got {
		if len(c) > 10 {
			t.Fatalf("chunk %q exceeds limit", c)
		}
	}

	long := strings.Repeat("x", 25)
	got = splitMessage(long, 10)
	if len(got) != 3 || strings.Join(got, "") != long {
		t.Fatalf("unexpected long split %q", got)
	}
}

func TestBreakdownText(t *testing.T) {
	if got := breakdownText(entity.Breakdown{}); got != "The warehouse is empty." {
		t.Fatalf("empty breakdown = %q", got)
	}
	got := breakdownText(entity.Breakdown{Total: 3, Shares: []entity.CategoryShare{
		{Category: entity.CategoryElectronics, Count: 2, Percent: decimal.RequireFromString("66.7")},
		{Category: entity.CategoryClothing, Count: 1, Percent: decimal.RequireFromString("33.3")},
	}})
	if !strings.Contains(got, "• Electronics: 2 (66.7%)") || !strings.Contains(got, "• Clothing: 1 (33.3%)") {
		t.Fatalf("unexpected breakdown %q", got)
	}
}

func TestIsQuotaError(t *testing.T) {
	if isQuotaError(nil) || isQuotaError(errors.New("boom")) {
		t.Fatal("false positive")
	}
	if !isQuotaError(errors.New("googleapi: Error 429: Quota exceeded")) {
		t.Fatal("quota error not detected")
	}
}

func TestReadLimited(t *testing.T) {
	data, err := readLimited(bytes.NewReader(make([]byte, 10)), 10)
	if err != nil || len(data) != 10 {
		t.Fatalf("at the limit: %d bytes, %v", len(data), err)
	}
	if _, err := readLimited(bytes.NewReader(make([]byte, 11)), 10); !errors.Is(err, errFileTooLarge) {
		t.Fatalf("over the limit: got %v, want errFileTooLarge", err)
	}
}
