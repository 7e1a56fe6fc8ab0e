package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/immosim/insee"
	"github.com/google/subcommands"
)

type indexCmd struct {
	name  string
	years int
}

func (*indexCmd) Name() string     { return "index" }
func (*indexCmd) Synopsis() string { return "fetch an INSEE rent index to suggest an indexation rate" }
func (*indexCmd) Usage() string {
	return `ims index [-name <index>] [-years <n>]

  Downloads one of the INSEE lease indices and prints its recent compound
  annual growth as a suggested indexation assumption. The suggestion is
  advisory, the simulation only uses the indexation stored on each building.
`
}

func (p *indexCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.name, "name", "ILAT", "Index to fetch: "+strings.Join(insee.IndexNames(), ", ")+".")
	f.IntVar(&p.years, "years", 3, "Number of years of history for the growth computation.")
}

func (p *indexCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	series, err := insee.Fetch(p.name, p.years)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error fetching INSEE series:", err)
		return subcommands.ExitFailure
	}

	quarter, value, err := series.Latest()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	growth, err := series.AnnualGrowth(p.years)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("%s (%s)\n", series.Libelle, series.IDBank)
	fmt.Printf("Latest: %s = %.2f\n", quarter, value)
	fmt.Printf("Suggested indexation assumption (%d-year growth): %s\n", p.years, growth)
	fmt.Printf("Apply it with: ims add -indexation %.2f ...\n", float64(growth))
	return subcommands.ExitSuccess
}
