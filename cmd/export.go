package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/immosim"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the simulation results as CSV" }
func (*exportCmd) Usage() string {
	return `ims export [-o <file>]

  Runs the simulation and writes the per-building result table as CSV, to
  stdout by default.
`
}

func (p *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.output, "o", "", "Output file. Writes to stdout by default.")
}

func (p *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	buildings, err := DecodeBuildings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	s, err := immosim.Simulate(immosim.DefaultConfig(), buildings)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	for _, failure := range s.Failures {
		fmt.Fprintln(os.Stderr, "Warning: skipped", failure)
	}

	var w io.Writer = os.Stdout
	if p.output != "" {
		file, err := os.Create(p.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", p.output, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		w = file
	}

	if err := immosim.ExportCSV(w, s.Results); err != nil {
		fmt.Fprintln(os.Stderr, "Error writing CSV:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
