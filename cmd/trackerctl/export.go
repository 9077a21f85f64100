package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/portfolio"
)

type exportCmd struct {
	common
	output string
	tag    string
	sort   string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the portfolio as CSV" }
func (*exportCmd) Usage() string {
	return `export [-db <path>] [-o <file>] [-tag <tag>] [-sort <key>]

  Writes every investment with its invested total and current value as CSV.
  Use -o - to write to standard output.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.output, "o", "", "output file (default: configured export file name, - for stdout)")
	f.StringVar(&c.tag, "tag", portfolio.FilterAll, "only export investments with this tag")
	f.StringVar(&c.sort, "sort", string(portfolio.SortNone), "sort order of the rows")
}

func (c *exportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sortKey, err := portfolio.ParseSortKey(c.sort)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, err := c.open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	output := c.output
	if output == "" {
		output = a.export.Filename()
	}

	if output == "-" {
		if err := a.export.Export(c.stdout(), c.tag, sortKey); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting portfolio: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	file, err := os.Create(output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", output, err)
		return subcommands.ExitFailure
	}

	if err := a.export.Export(file, c.tag, sortKey); err != nil {
		file.Close()
		fmt.Fprintf(os.Stderr, "Error exporting portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := file.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", output, err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(c.stdout(), "Exported portfolio to %s\n", output)
	return subcommands.ExitSuccess
}
