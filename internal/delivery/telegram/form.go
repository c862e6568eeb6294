package telegram

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Berani354/Barang/internal/domain/entity"
	"github.com/shopspring/decimal"
)

type formStage int

const (
	formStageNeedCategory formStage = iota
	formStageNeedName
	formStageNeedPrice
	formStageNeedStock
	formStageNeedFirst
	formStageNeedSecond
	formStageDone
)

// addForm collects a new item one answer at a time
type addForm struct {
	Stage      formStage
	Category   entity.Category
	Name       string
	Price      decimal.Decimal
	Stock      int
	First      string
	Second     string
	StartedAt  time.Time
	LastUpdate time.Time
}

func newAddForm(now time.Time) *addForm {
	return &addForm{Stage: formStageNeedCategory, StartedAt: now, LastUpdate: now}
}

// attribute prompts per category, in entry order
func attributePrompts(c entity.Category) (string, string) {
	switch c {
	case entity.CategoryElectronics:
		return "Brand?", "Warranty in years?"
	case entity.CategoryClothing:
		return "Size? (e.g. S, M, L, XL)", "Material?"
	default:
		return "Kind? (e.g. pen, notebook)", "Brand?"
	}
}

func categoryPrompt() string {
	names := make([]string, 0, 3)
	for _, c := range entity.Categories() {
		names = append(names, c.Label())
	}
	return "Which category? (" + strings.Join(names, " / ") + ")"
}

// step consumes one answer and returns the next prompt. A rejected answer
// returns an error and leaves the stage unchanged.
func (f *addForm) step(input string, now time.Time) (string, error) {
	input = strings.TrimSpace(input)
	f.LastUpdate = now

	switch f.Stage {
	case formStageNeedCategory:
		c, ok := entity.ParseCategory(input)
		if !ok {
			return "", fmt.Errorf("unknown category %q", input)
		}
		f.Category = c
		f.Stage = formStageNeedName
		return "Item name?", nil
	case formStageNeedName:
		if input == "" {
			return "", entity.ErrEmptyName
		}
		f.Name = input
		f.Stage = formStageNeedPrice
		return "Price in IDR?", nil
	case formStageNeedPrice:
		price, err := decimal.NewFromString(strings.ReplaceAll(input, ",", ""))
		if err != nil {
			return "", fmt.Errorf("price %q is not a number", input)
		}
		if price.IsNegative() {
			return "", entity.ErrNegativePrice
		}
		f.Price = price
		f.Stage = formStageNeedStock
		return "Units in stock?", nil
	case formStageNeedStock:
		stock, err := strconv.Atoi(input)
		if err != nil {
			return "", fmt.Errorf("stock %q is not a whole number", input)
		}
		if stock < 0 {
			return "", entity.ErrNegativeStock
		}
		f.Stock = stock
		f.Stage = formStageNeedFirst
		first, _ := attributePrompts(f.Category)
		return first, nil
	case formStageNeedFirst:
		f.First = input
		f.Stage = formStageNeedSecond
		_, second := attributePrompts(f.Category)
		return second, nil
	case formStageNeedSecond:
		if f.Category == entity.CategoryElectronics {
			years, err := strconv.Atoi(input)
			if err != nil {
				return "", fmt.Errorf("warranty %q is not a whole number", input)
			}
			if years < 0 {
				return "", entity.ErrNegativeWarranty
			}
		}
		f.Second = input
		f.Stage = formStageDone
		return "", nil
	}
	return "", fmt.Errorf("form already complete")
}

// item builds the collected item once the form is done
func (f *addForm) item() (entity.Item, error) {
	if f.Stage != formStageDone {
		return entity.Item{}, fmt.Errorf("form is not complete")
	}
	switch f.Category {
	case entity.CategoryElectronics:
		years, err := strconv.Atoi(f.Second)
		if err != nil {
			return entity.Item{}, err
		}
		return entity.NewElectronics(f.Name, f.Price, f.Stock, f.First, years)
	case entity.CategoryClothing:
		return entity.NewClothing(f.Name, f.Price, f.Stock, f.First, f.Second)
	default:
		return entity.NewSchoolSupply(f.Name, f.Price, f.Stock, f.First, f.Second)
	}
}

// parseStockArgs splits "/stock <name> <delta>"; the name may contain spaces
func parseStockArgs(args string) (string, int, error) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return "", 0, fmt.Errorf("usage: /stock <name> <delta>")
	}
	delta, err := strconv.Atoi(strings.TrimPrefix(fields[len(fields)-1], "+"))
	if err != nil {
		return "", 0, fmt.Errorf("delta %q is not a whole number", fields[len(fields)-1])
	}
	return strings.Join(fields[:len(fields)-1], " "), delta, nil
}
