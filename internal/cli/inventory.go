package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Berani354/Barang/internal/delivery/render"
	"github.com/Berani354/Barang/internal/domain/entity"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type addCmd struct {
	category string
	name     string
	price    string
	stock    int
	brand    string
	warranty int
	size     string
	material string
	kind     string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add an item to the inventory" }
func (*addCmd) Usage() string {
	return `gudang add -category <category> -name <name> -price <price> -stock <n> [attributes]

  Adds a new item and saves the spreadsheet. Attributes depend on the category:
    electronics      -brand, -warranty (years)
    clothing         -size, -material
    school supplies  -kind, -brand

`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "category", "", "Item category: electronics, clothing or school-supplies (or Elektronik, Pakaian, PeralatanSekolah).")
	f.StringVar(&c.name, "name", "", "Item name.")
	f.StringVar(&c.price, "price", "0", "Unit price in IDR.")
	f.IntVar(&c.stock, "stock", 0, "Units in stock.")
	f.StringVar(&c.brand, "brand", "", "Brand (electronics, school supplies).")
	f.IntVar(&c.warranty, "warranty", 0, "Warranty in years (electronics).")
	f.StringVar(&c.size, "size", "", "Size (clothing).")
	f.StringVar(&c.material, "material", "", "Material (clothing).")
	f.StringVar(&c.kind, "kind", "", "Kind of supply, e.g. pen (school supplies).")
}

// item builds the item described by the flags
func (c *addCmd) item() (entity.Item, error) {
	category, ok := entity.ParseCategory(c.category)
	if !ok {
		return entity.Item{}, fmt.Errorf("unknown category %q", c.category)
	}
	price, err := decimal.NewFromString(c.price)
	if err != nil {
		return entity.Item{}, fmt.Errorf("price %q is not a number", c.price)
	}

	switch category {
	case entity.CategoryElectronics:
		return entity.NewElectronics(c.name, price, c.stock, c.brand, c.warranty)
	case entity.CategoryClothing:
		return entity.NewClothing(c.name, price, c.stock, c.size, c.material)
	default:
		return entity.NewSchoolSupply(c.name, price, c.stock, c.kind, c.brand)
	}
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	item, err := c.item()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid item: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	if err := a.inventory.Add(ctx, item); err != nil {
		return fail(err)
	}
	fmt.Println("added:", item.Describe())
	return subcommands.ExitSuccess
}

type listCmd struct {
	category string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the items in stock, grouped by category" }
func (*listCmd) Usage() string {
	return `gudang list [-category <category>]
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "category", "", "Only list this category.")
}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	items := a.inventory.List(ctx)
	if c.category != "" {
		category, ok := entity.ParseCategory(c.category)
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown category %q\n", c.category)
			return subcommands.ExitUsageError
		}
		items = a.inventory.ListByCategory(ctx, category)
	}

	printMarkdown(render.ItemsMarkdown(items))
	return subcommands.ExitSuccess
}

type findCmd struct{}

func (*findCmd) Name() string     { return "find" }
func (*findCmd) Synopsis() string { return "look up an item by name, ignoring case" }
func (*findCmd) Usage() string {
	return `gudang find <name>
`
}
func (*findCmd) SetFlags(*flag.FlagSet) {}

func (*findCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name := strings.Join(f.Args(), " ")
	if name == "" {
		fmt.Fprintln(os.Stderr, "find requires a name")
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	item, ok := a.inventory.Find(ctx, name)
	if !ok {
		fmt.Fprintf(os.Stderr, "%q not found\n", name)
		return subcommands.ExitFailure
	}
	printMarkdown(render.ItemsMarkdown([]entity.Item{*item}))
	return subcommands.ExitSuccess
}

type stockCmd struct{}

func (*stockCmd) Name() string     { return "stock" }
func (*stockCmd) Synopsis() string { return "change the stock of an item by a signed delta" }
func (*stockCmd) Usage() string {
	return `gudang stock <name> <delta>

  Adds delta (which may be negative) to the item's stock, e.g. "gudang stock TV -2".
  The result is not clamped at zero.
`
}
func (*stockCmd) SetFlags(*flag.FlagSet) {}

func (*stockCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "stock requires a name and a delta")
		return subcommands.ExitUsageError
	}
	delta, err := strconv.Atoi(strings.TrimPrefix(args[len(args)-1], "+"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "delta %q is not a whole number\n", args[len(args)-1])
		return subcommands.ExitUsageError
	}
	name := strings.Join(args[:len(args)-1], " ")

	a, err := openApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	ok, err := a.inventory.UpdateStock(ctx, name, delta)
	if err != nil {
		return fail(err)
	}
	if !ok {
		fmt.Fprintf(os.Stderr, "%q not found\n", name)
		return subcommands.ExitFailure
	}
	if item, ok := a.inventory.Find(ctx, name); ok {
		fmt.Printf("%s: %d in stock\n", item.Name, item.Stock)
	}
	return subcommands.ExitSuccess
}

type removeCmd struct{}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove an item by name" }
func (*removeCmd) Usage() string {
	return `gudang remove <name>

  Removes the first item whose name matches, ignoring case.
`
}
func (*removeCmd) SetFlags(*flag.FlagSet) {}

func (*removeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name := strings.Join(f.Args(), " ")
	if name == "" {
		fmt.Fprintln(os.Stderr, "remove requires a name")
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	ok, err := a.inventory.Remove(ctx, name)
	if err != nil {
		return fail(err)
	}
	if !ok {
		fmt.Fprintf(os.Stderr, "%q not found\n", name)
		return subcommands.ExitFailure
	}
	fmt.Printf("removed %q\n", name)
	return subcommands.ExitSuccess
}
