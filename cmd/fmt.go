package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/immosim"
	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the portfolio file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `ims fmt

  Validates and formats the portfolio file. This command reads all
  buildings, validates them, sorts them by name, and writes them back in a
  canonical JSONL format with a stable key order, so the file diffs cleanly.
`
}

func (p *fmtCmd) SetFlags(f *flag.FlagSet) {}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	buildings, err := DecodeBuildings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	if len(buildings) == 0 {
		fmt.Fprintf(os.Stderr, "Warning: no buildings found to format.\n")
		return subcommands.ExitSuccess
	}

	for _, b := range buildings {
		if err := b.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "Warning:", err)
		}
	}

	file, err := os.Create(PortfolioFile())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rewriting portfolio file %q: %v\n", PortfolioFile(), err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	if err := immosim.EncodeBuildings(file, buildings); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing portfolio file %q: %v\n", PortfolioFile(), err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(os.Stderr, "Formatted %d buildings in %s.\n", len(buildings), PortfolioFile())
	return subcommands.ExitSuccess
}
