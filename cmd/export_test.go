package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

func TestExport_ToFile(t *testing.T) {
	createTempPortfolio(t, testPortfolio)
	output := filepath.Join(t.TempDir(), "simulation.csv")

	cmd := &exportCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	if err := f.Parse([]string{"-o", output}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	if status := cmd.Execute(context.Background(), f); status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}

	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Failed to read exported CSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(got)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d CSV lines, want header + 1 building:\n%s", len(lines), got)
	}
	if !strings.HasPrefix(lines[0], "Name,TotalInvestment,Debt,Equity") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Tour A,") {
		t.Errorf("unexpected building row: %s", lines[1])
	}
}

func TestExport_EmptyPortfolio(t *testing.T) {
	createTempPortfolio(t, "")

	cmd := &exportCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)

	if status := cmd.Execute(context.Background(), f); status != subcommands.ExitFailure {
		t.Errorf("Expected ExitFailure on an empty portfolio, got %v", status)
	}
}
