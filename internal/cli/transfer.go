package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Berani354/Barang/internal/usecase"
	"github.com/google/subcommands"
)

type exportCmd struct{}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write a copy of the inventory spreadsheet" }
func (*exportCmd) Usage() string {
	return `gudang export <file.xlsx>
`
}
func (*exportCmd) SetFlags(*flag.FlagSet) {}

func (*exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "export requires exactly one output file")
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	data, err := a.inventory.Export(ctx)
	if err != nil {
		return fail(err)
	}
	if err := os.WriteFile(f.Arg(0), data, 0644); err != nil {
		return fail(err)
	}
	fmt.Printf("exported %d item(s) to %s\n", len(a.inventory.List(ctx)), f.Arg(0))
	return subcommands.ExitSuccess
}

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace the inventory with the items of a spreadsheet" }
func (*importCmd) Usage() string {
	return `gudang import <file.xlsx>

  Replaces the whole inventory. Rows with an unknown category are skipped; a
  spreadsheet with no known items leaves the inventory unchanged.
`
}
func (*importCmd) SetFlags(*flag.FlagSet) {}

func (*importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "import requires exactly one input file")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(f.Arg(0))
	if err != nil {
		return fail(err)
	}

	a, err := openApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	result, err := a.inventory.Import(ctx, data, filepath.Base(f.Arg(0)))
	if errors.Is(err, usecase.ErrNothingToImport) {
		fmt.Fprintf(os.Stderr, "%s: no known items (%d row(s) skipped), inventory unchanged\n", f.Arg(0), result.Skipped)
		return subcommands.ExitFailure
	}
	if err != nil {
		return fail(err)
	}
	fmt.Printf("imported %d item(s), skipped %d\n", result.Imported, result.Skipped)
	return subcommands.ExitSuccess
}
