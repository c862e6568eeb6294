package entity_test

import (
	"errors"
	"testing"

	"github.com/Berani354/Barang/internal/domain/entity"
	"github.com/shopspring/decimal"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		item entity.Item
		want string
	}{
		{
			name: "electronics",
			item: entity.Item{Name: "TV", Price: decimal.NewFromInt(500), Stock: 2, Details: entity.Electronics{Brand: "Acme", WarrantyYears: 1}},
			want: "Name: TV, Price: 500 IDR, Stock: 2, Brand: Acme, Warranty: 1 year(s)",
		},
		{
			name: "clothing",
			item: entity.Item{Name: "Shirt", Price: decimal.NewFromInt(20), Stock: 10, Details: entity.Clothing{Size: "M", Material: "Cotton"}},
			want: "Name: Shirt, Price: 20 IDR, Stock: 10, Size: M, Material: Cotton",
		},
		{
			name: "school supply",
			item: entity.Item{Name: "Pen", Price: decimal.RequireFromString("2.5"), Stock: 10, Details: entity.SchoolSupply{Kind: "Ballpoint", Brand: "Pilot"}},
			want: "Name: Pen, Price: 2.5 IDR, Stock: 10, Kind: Ballpoint, Brand: Pilot",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.item.Describe(); got != tc.want {
				t.Fatalf("Describe() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCategoryTagsAreDistinct(t *testing.T) {
	items := []entity.Item{
		{Details: entity.Electronics{}},
		{Details: entity.Clothing{}},
		{Details: entity.SchoolSupply{}},
	}
	seen := map[entity.Category]bool{}
	for i, item := range items {
		tag := item.Category()
		if tag != entity.Categories()[i] {
			t.Fatalf("item %d: category %q, want %q", i, tag, entity.Categories()[i])
		}
		if seen[tag] {
			t.Fatalf("duplicate tag %q", tag)
		}
		seen[tag] = true
	}
}

func TestConstructorsValidate(t *testing.T) {
	if _, err := entity.NewElectronics("", decimal.NewFromInt(1), 1, "Acme", 1); !errors.Is(err, entity.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if _, err := entity.NewClothing("Shirt", decimal.NewFromInt(-1), 1, "M", "Cotton"); !errors.Is(err, entity.ErrNegativePrice) {
		t.Fatalf("expected ErrNegativePrice, got %v", err)
	}
	if _, err := entity.NewSchoolSupply("Pen", decimal.NewFromInt(1), -3, "Ballpoint", "Pilot"); !errors.Is(err, entity.ErrNegativeStock) {
		t.Fatalf("expected ErrNegativeStock, got %v", err)
	}
	if _, err := entity.NewElectronics("TV", decimal.NewFromInt(1), 1, "Acme", -1); !errors.Is(err, entity.ErrNegativeWarranty) {
		t.Fatalf("expected ErrNegativeWarranty, got %v", err)
	}
	if err := (entity.Item{Name: "Bare", Price: decimal.Zero}).Validate(); !errors.Is(err, entity.ErrMissingDetails) {
		t.Fatalf("expected ErrMissingDetails, got %v", err)
	}

	item, err := entity.NewClothing("Shirt", decimal.NewFromInt(20), 10, "M", "Cotton")
	if err != nil {
		t.Fatalf("NewClothing: %v", err)
	}
	if item.Category() != entity.CategoryClothing {
		t.Fatalf("category = %q", item.Category())
	}
	if !item.Value().Equal(decimal.NewFromInt(200)) {
		t.Fatalf("value = %s, want 200", item.Value())
	}
}

func TestMatchesName(t *testing.T) {
	item := entity.Item{Name: "Widget"}
	for _, name := range []string{"Widget", "WIDGET", "widget"} {
		if !item.MatchesName(name) {
			t.Fatalf("expected %q to match", name)
		}
	}
	if item.MatchesName("Widgets") {
		t.Fatal("partial names must not match")
	}
}

func TestParseCategory(t *testing.T) {
	cases := map[string]entity.Category{
		"Elektronik":        entity.CategoryElectronics,
		"electronics":       entity.CategoryElectronics,
		"PAKAIAN":           entity.CategoryClothing,
		"Peralatan Sekolah": entity.CategorySchoolSupply,
		"school-supply":     entity.CategorySchoolSupply,
	}
	for in, want := range cases {
		got, ok := entity.ParseCategory(in)
		if !ok || got != want {
			t.Fatalf("ParseCategory(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}
	if _, ok := entity.ParseCategory("Furniture"); ok {
		t.Fatal("unknown category should not parse")
	}
}
