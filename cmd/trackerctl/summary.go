package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/portfolio"
)

type summaryCmd struct {
	common
	tag  string
	sort string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "print portfolio totals, allocation and investments" }
func (*summaryCmd) Usage() string {
	return `summary [-db <path>] [-tag <tag>] [-sort none|return|value|category|roi]

  Prints the portfolio totals and category allocation over every investment,
  followed by the investments matching -tag in -sort order.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.tag, "tag", portfolio.FilterAll, "only list investments with this tag")
	f.StringVar(&c.sort, "sort", string(portfolio.SortNone), "sort order of the investment list")
}

func (c *summaryCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	result, err := a.investment.GetPortfolio(c.tag, sortKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := writeSummary(c.stdout(), result, a.chart.FormatAmount); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing summary: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// writeSummary renders result as aligned text, formatting amounts with format.
func writeSummary(w io.Writer, result portfolio.Result, format func(float64) string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Invested\t%s\n", format(result.Totals.Invested))
	fmt.Fprintf(tw, "Current\t%s\n", format(result.Totals.Current))
	fmt.Fprintf(tw, "Profit\t%s\n", format(result.Totals.Profit))
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "Category\tValue")
	for _, slice := range result.Allocation {
		fmt.Fprintf(tw, "%s\t%s\n", slice.Label, format(slice.Total))
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "Name\tCategory\tTag\tInvested\tCurrent\tReturn")
	for _, v := range result.Views {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.2f%%\n",
			v.Name, v.Category, v.Tag, format(v.InvestedTotal), format(v.DisplayCurrentValue), v.ReturnPercent)
	}

	return tw.Flush()
}
