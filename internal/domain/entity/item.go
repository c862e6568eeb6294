package entity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Category is the persisted tag of an item variant.
type Category string

const (
	CategoryElectronics  Category = "Elektronik"
	CategoryClothing     Category = "Pakaian"
	CategorySchoolSupply Category = "PeralatanSekolah"
)

// Categories returns every known category in display order.
func Categories() []Category {
	return []Category{CategoryElectronics, CategoryClothing, CategorySchoolSupply}
}

// Label human readable category name
func (c Category) Label() string {
	switch c {
	case CategoryElectronics:
		return "Electronics"
	case CategoryClothing:
		return "Clothing"
	case CategorySchoolSupply:
		return "School supplies"
	}
	return string(c)
}

// ParseCategory accepts a persisted tag or an English name, case-insensitively.
func ParseCategory(s string) (Category, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(norm)
	switch norm {
	case "elektronik", "electronics", "electronic":
		return CategoryElectronics, true
	case "pakaian", "clothing", "clothes":
		return CategoryClothing, true
	case "peralatansekolah", "schoolsupply", "schoolsupplies":
		return CategorySchoolSupply, true
	}
	return "", false
}

// Validation errors
var (
	ErrEmptyName        = errors.New("item name is empty")
	ErrNegativePrice    = errors.New("item price is negative")
	ErrNegativeStock    = errors.New("item stock is negative")
	ErrNegativeWarranty = errors.New("warranty years is negative")
	ErrMissingDetails   = errors.New("item has no category details")
)

// Details is the category-specific part of an Item. Only the three variants
// in this package implement it.
type Details interface {
	Category() Category
	describe() string
	validate() error
}

// Electronics details
type Electronics struct {
	Brand         string
	WarrantyYears int
}

func (Electronics) Category() Category { return CategoryElectronics }

func (e Electronics) describe() string {
	return fmt.Sprintf("Brand: %s, Warranty: %d year(s)", e.Brand, e.WarrantyYears)
}

func (e Electronics) validate() error {
	if e.WarrantyYears < 0 {
		return ErrNegativeWarranty
	}
	return nil
}

// Clothing details
type Clothing struct {
	Size     string
	Material string
}

func (Clothing) Category() Category { return CategoryClothing }

func (c Clothing) describe() string {
	return fmt.Sprintf("Size: %s, Material: %s", c.Size, c.Material)
}

func (Clothing) validate() error { return nil }

// SchoolSupply details
type SchoolSupply struct {
	Kind  string
	Brand string
}

func (SchoolSupply) Category() Category { return CategorySchoolSupply }

func (s SchoolSupply) describe() string {
	return fmt.Sprintf("Kind: %s, Brand: %s", s.Kind, s.Brand)
}

func (SchoolSupply) validate() error { return nil }

// Item is a stocked record. Name is the case-insensitive identity key.
type Item struct {
	Name    string
	Price   decimal.Decimal
	Stock   int
	Details Details
}

// NewElectronics validated Electronics item
func NewElectronics(name string, price decimal.Decimal, stock int, brand string, warrantyYears int) (Item, error) {
	return newItem(name, price, stock, Electronics{Brand: brand, WarrantyYears: warrantyYears})
}

// NewClothing validated Clothing item
func NewClothing(name string, price decimal.Decimal, stock int, size, material string) (Item, error) {
	return newItem(name, price, stock, Clothing{Size: size, Material: material})
}

// NewSchoolSupply validated SchoolSupply item
func NewSchoolSupply(name string, price decimal.Decimal, stock int, kind, brand string) (Item, error) {
	return newItem(name, price, stock, SchoolSupply{Kind: kind, Brand: brand})
}

func newItem(name string, price decimal.Decimal, stock int, details Details) (Item, error) {
	item := Item{Name: name, Price: price, Stock: stock, Details: details}
	if err := item.Validate(); err != nil {
		return Item{}, err
	}
	return item, nil
}

// Validate checks the invariants a new item must satisfy.
func (i Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyName
	}
	if i.Price.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativePrice, i.Price)
	}
	if i.Stock < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeStock, i.Stock)
	}
	if i.Details == nil {
		return ErrMissingDetails
	}
	return i.Details.validate()
}

// Category returns the persisted tag of the item's variant.
func (i Item) Category() Category {
	if i.Details == nil {
		return ""
	}
	return i.Details.Category()
}

// Describe base fields followed by the variant fields
func (i Item) Describe() string {
	base := fmt.Sprintf("Name: %s, Price: %s IDR, Stock: %d", i.Name, i.Price.String(), i.Stock)
	if i.Details == nil {
		return base
	}
	return base + ", " + i.Details.describe()
}

// Value price * stock
func (i Item) Value() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Stock)))
}

// MatchesName case-insensitive identity check
func (i Item) MatchesName(name string) bool {
	return strings.EqualFold(i.Name, name)
}
