package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

type snapshotCmd struct {
	common
}

func (*snapshotCmd) Name() string     { return "snapshot" }
func (*snapshotCmd) Synopsis() string { return "record today's portfolio totals" }
func (*snapshotCmd) Usage() string {
	return `snapshot [-db <path>]

  Stores the current totals as today's snapshot, replacing an earlier one.
`
}

func (c *snapshotCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
}

func (c *snapshotCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := c.open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	snapshot, err := a.snapshot.Capture(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error capturing snapshot: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(c.stdout(), "Snapshot %s: invested %s, current %s (%d investments)\n",
		snapshot.Date.Format(model.DateLayout),
		a.chart.FormatAmount(snapshot.Invested),
		a.chart.FormatAmount(snapshot.Current),
		snapshot.Count)
	return subcommands.ExitSuccess
}
