package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type importCmd struct {
	common
	replace bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a ledger blob exported from the browser tracker" }
func (*importCmd) Usage() string {
	return `import [-db <path>] [-replace] <file.json>

  Imports a JSON array of ledger records. Numeric fields may be strings and
  ids that are not UUIDs are replaced. Without -replace the records are added
  in front of the existing investments.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.BoolVar(&c.replace, "replace", false, "replace the whole ledger with the imported records")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one input file is required.")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}

	a, err := c.open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	imported, err := a.investment.ImportLegacy(ctx, data, c.replace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing %s: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(c.stdout(), "Imported %d investments\n", len(imported))
	return subcommands.ExitSuccess
}
