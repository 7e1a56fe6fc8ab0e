package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/immosim"
	"github.com/etnz/immosim/renderer"
	"github.com/google/subcommands"
)

type simulateCmd struct {
	charts bool
}

func (*simulateCmd) Name() string     { return "simulate" }
func (*simulateCmd) Synopsis() string { return "run the portfolio simulation and print the report" }
func (*simulateCmd) Usage() string {
	return `ims simulate [-charts]

  Runs the investment simulation over every building in the portfolio file
  and prints the report: per-building figures, portfolio totals, and the
  buildings whose assumptions failed validation. With -charts, also prints
  the exit value and financing bar charts.
`
}

func (p *simulateCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.charts, "charts", false, "Also print the exit value and financing charts.")
}

func (p *simulateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	buildings, err := DecodeBuildings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	s, err := immosim.Simulate(immosim.DefaultConfig(), buildings)
	if err != nil {
		if errors.Is(err, immosim.ErrEmptyPortfolio) {
			fmt.Fprintf(os.Stderr, "No buildings in %s. Add one with 'ims add'.\n", PortfolioFile())
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return subcommands.ExitFailure
	}

	for _, failure := range s.Failures {
		fmt.Fprintln(os.Stderr, "Warning: skipped", failure)
	}

	var report strings.Builder
	report.WriteString(renderer.SimulationMarkdown(s))
	if p.charts {
		report.WriteString("\n")
		report.WriteString(renderer.ExitChartMarkdown(s.Results))
		report.WriteString("\n")
		report.WriteString(renderer.FinancingChartMarkdown(s.Results))
	}
	printMarkdown(report.String())

	return subcommands.ExitSuccess
}
