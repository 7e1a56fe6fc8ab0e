package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/immosim"
	"github.com/google/subcommands"
)

type ratesCmd struct {
	tenor  string
	margin float64
}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "fetch the current Euribor rate to suggest a loan rate" }
func (*ratesCmd) Usage() string {
	return `ims rates [-t <tenor>] [-margin <pct>]

  Fetches the latest Euribor fixing and prints a suggested interest rate
  assumption: the fixing (floored at zero) plus a bank margin. The
  suggestion is advisory, the simulation only uses the rate stored on each
  building.
`
}

func (p *ratesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.tenor, "t", "3M", "Euribor tenor: "+strings.Join(immosim.EuriborTenors(), ", ")+".")
	f.Float64Var(&p.margin, "margin", 1.5, "Bank margin over Euribor, in percent.")
}

func (p *ratesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fixing, err := immosim.FetchEuribor(p.tenor)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error fetching Euribor:", err)
		return subcommands.ExitFailure
	}

	suggested, err := immosim.SuggestInterestRate(p.tenor, immosim.Percent(p.margin))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Euribor %s: %s\n", p.tenor, fixing.SignedString())
	fmt.Printf("Suggested rate assumption (margin %s): %s\n", immosim.Percent(p.margin), suggested)
	fmt.Printf("Apply it with: ims add -rate %.2f ...\n", float64(suggested))
	return subcommands.ExitSuccess
}
