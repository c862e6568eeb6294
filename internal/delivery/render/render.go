// Package render turns inventory data into text shared by the CLI and the bot.
package render

import (
	"fmt"
	"strings"

	"github.com/Berani354/Barang/internal/domain/entity"
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency used for every displayed price.
const Currency = money.IDR

// FormatPrice formats an amount in the display currency.
func FormatPrice(amount decimal.Decimal) string {
	cur := money.GetCurrency(Currency)
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, Currency).Display()
}

// columns per category for the grouped listing
func categoryColumns(c entity.Category) []string {
	switch c {
	case entity.CategoryElectronics:
		return []string{"Name", "Price", "Stock", "Brand", "Warranty"}
	case entity.CategoryClothing:
		return []string{"Name", "Price", "Stock", "Size", "Material"}
	case entity.CategorySchoolSupply:
		return []string{"Name", "Price", "Stock", "Kind", "Brand"}
	}
	return []string{"Name", "Price", "Stock"}
}

func categoryCells(item entity.Item) []string {
	cells := []string{item.Name, FormatPrice(item.Price), fmt.Sprint(item.Stock)}
	switch d := item.Details.(type) {
	case entity.Electronics:
		cells = append(cells, d.Brand, fmt.Sprintf("%d yr", d.WarrantyYears))
	case entity.Clothing:
		cells = append(cells, d.Size, d.Material)
	case entity.SchoolSupply:
		cells = append(cells, d.Kind, d.Brand)
	}
	return cells
}

// ItemsMarkdown renders one markdown table per category, skipping empty ones.
func ItemsMarkdown(items []entity.Item) string {
	if len(items) == 0 {
		return "_The warehouse is empty._\n"
	}

	var sb strings.Builder
	for _, c := range entity.Categories() {
		var rows [][]string
		for _, item := range items {
			if item.Category() == c {
				rows = append(rows, categoryCells(item))
			}
		}
		if len(rows) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "## %s\n\n", c.Label())
		writeTable(&sb, categoryColumns(c), rows)
		sb.WriteString("\n")
	}
	return sb.String()
}

// BreakdownMarkdown renders the per-category share table.
func BreakdownMarkdown(b entity.Breakdown) string {
	var sb strings.Builder
	rows := make([][]string, 0, len(b.Shares))
	for _, s := range b.Shares {
		rows = append(rows, []string{s.Category.Label(), fmt.Sprint(s.Count), s.Percent.StringFixed(1) + "%", FormatPrice(s.Value)})
	}
	writeTable(&sb, []string{"Category", "Items", "Share", "Value"}, rows)
	fmt.Fprintf(&sb, "\n%d item(s) in total\n", b.Total)
	return sb.String()
}

// ItemsPlain renders a compact plain-text list for chat messages.
func ItemsPlain(items []entity.Item) string {
	if len(items) == 0 {
		return "The warehouse is empty."
	}

	var sb strings.Builder
	for _, c := range entity.Categories() {
		header := false
		for _, item := range items {
			if item.Category() != c {
				continue
			}
			if !header {
				fmt.Fprintf(&sb, "\n%s\n", c.Label())
				header = true
			}
			fmt.Fprintf(&sb, "• %s\n", strings.Join(categoryCells(item), " | "))
		}
	}
	return strings.TrimLeft(sb.String(), "\n")
}

func writeTable(sb *strings.Builder, header []string, rows [][]string) {
	sb.WriteString("| " + strings.Join(header, " | ") + " |\n")
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	sb.WriteString("| " + strings.Join(sep, " | ") + " |\n")
	for _, row := range rows {
		escaped := make([]string, len(row))
		for i, cell := range row {
			escaped[i] = strings.ReplaceAll(cell, "|", `\|`)
		}
		sb.WriteString("| " + strings.Join(escaped, " | ") + " |\n")
	}
}
