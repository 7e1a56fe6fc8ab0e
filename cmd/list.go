package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/immosim/renderer"
	"github.com/google/subcommands"
)

type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the building assumptions on file" }
func (*listCmd) Usage() string {
	return `ims list

  Renders the building assumptions from the portfolio file as a table.
`
}

func (*listCmd) SetFlags(f *flag.FlagSet) {}

func (p *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	buildings, err := DecodeBuildings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if len(buildings) == 0 {
		fmt.Fprintf(os.Stderr, "No buildings in %s. Add one with 'ims add'.\n", PortfolioFile())
		return subcommands.ExitSuccess
	}

	for _, b := range buildings {
		if err := b.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "Warning:", err)
		}
	}

	printMarkdown(renderer.BuildingsMarkdown(buildings))
	return subcommands.ExitSuccess
}
