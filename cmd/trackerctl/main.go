// Command trackerctl inspects and maintains an investment ledger database
// without running the HTTP server.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range commands() {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func commands() []subcommands.Command {
	return []subcommands.Command{
		&summaryCmd{},
		&exportCmd{},
		&importCmd{},
		&snapshotCmd{},
	}
}
