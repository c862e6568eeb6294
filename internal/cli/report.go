package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/Berani354/Barang/internal/delivery/render"
	"github.com/google/subcommands"
)

type totalCmd struct {
	raw bool
}

func (*totalCmd) Name() string     { return "total" }
func (*totalCmd) Synopsis() string { return "print the total inventory value (price × stock)" }
func (*totalCmd) Usage() string {
	return `gudang total [-raw]
`
}

func (c *totalCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "Print the plain decimal amount instead of formatted currency.")
}

func (c *totalCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	total := a.inventory.TotalValue(ctx)
	if c.raw {
		fmt.Println(total.String())
		return subcommands.ExitSuccess
	}
	fmt.Println(render.FormatPrice(total))
	return subcommands.ExitSuccess
}

type breakdownCmd struct{}

func (*breakdownCmd) Name() string     { return "breakdown" }
func (*breakdownCmd) Synopsis() string { return "show item counts and value per category" }
func (*breakdownCmd) Usage() string {
	return `gudang breakdown
`
}
func (*breakdownCmd) SetFlags(*flag.FlagSet) {}

func (*breakdownCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	printMarkdown(render.BreakdownMarkdown(a.inventory.Breakdown(ctx)))
	return subcommands.ExitSuccess
}
