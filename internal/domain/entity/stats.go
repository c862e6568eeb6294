package entity

import "github.com/shopspring/decimal"

// CategoryShare is one slice of the inventory breakdown.
type CategoryShare struct {
	Category Category
	Count    int
	Percent  decimal.Decimal
	Value    decimal.Decimal
}

// Breakdown counts items per category, in Categories() order.
type Breakdown struct {
	Total  int
	Shares []CategoryShare
}
