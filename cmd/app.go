// Package cmd implements the CLI application to simulate a portfolio of
// income-producing buildings.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/immosim"
	"github.com/google/subcommands"
)

// Commands lists the subcommands. A main package registers them on a
// commander and executes the user-selected one.
var Commands = []subcommands.Command{
	&addCmd{},
	&listCmd{},
	&simulateCmd{},
	&exportCmd{},
	&fmtCmd{},
	&topicCmd{},
	&ratesCmd{},
	&indexCmd{},
	&assistCmd{},
	&serveCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var portfolioFile = flag.String("portfolio-file", defaultPortfolioFile(), "Path to the portfolio file containing buildings (JSONL format)")

func defaultPortfolioFile() string {
	if f := os.Getenv("IMS_PORTFOLIO_FILE"); f != "" {
		return f
	}
	return "buildings.jsonl"
}

// PortfolioFile returns the path of the app portfolio file.
func PortfolioFile() string { return *portfolioFile }

// DecodeBuildings decodes the buildings from the app portfolio file. A
// missing file is an empty portfolio.
func DecodeBuildings() ([]immosim.Building, error) {
	f, err := os.Open(*portfolioFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not open portfolio file %q: %w", *portfolioFile, err)
	}
	defer f.Close()

	buildings, err := immosim.DecodeBuildings(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode portfolio file %q: %w", *portfolioFile, err)
	}
	return buildings, nil
}

// AppendBuilding appends a single building to the app portfolio file.
func AppendBuilding(b immosim.Building) subcommands.ExitStatus {
	filename := *portfolioFile
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening portfolio file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := immosim.EncodeBuilding(f, b); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to portfolio file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended %q to %s\n", b.Name, filename)
	return subcommands.ExitSuccess
}
