package renderer

import (
	"bytes"
	"fmt"
	"io"

	"github.com/etnz/immosim"
	md "github.com/nao1215/markdown"
)

// SimulationMarkdown renders a full simulation report: the per-building
// result table, the portfolio totals, and the buildings that failed
// validation, when any.
func SimulationMarkdown(s *immosim.Simulation) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio Simulation")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Building", "Total Investment", "Debt", "Equity", "Total Interest", "Occupancy", "Final Revenue", "NOI", "Exit Value"},
		Rows:   [][]string{},
	}
	for _, r := range s.Results {
		table.Rows = append(table.Rows, []string{
			r.Name,
			r.TotalInvestment.String(),
			r.Debt.String(),
			r.Equity.String(),
			r.TotalInterest.String(),
			r.FinalOccupancy.String(),
			r.FinalRevenue.String(),
			r.NOI.String(),
			r.ExitValue.String(),
		})
	}
	doc.Table(table)

	doc.H2("Portfolio Totals")
	summary := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Value"},
		Rows: [][]string{
			{"Buildings", fmt.Sprintf("%d", s.Summary.Buildings)},
			{"Total Equity", s.Summary.Equity.String()},
			{"Total Debt", s.Summary.Debt.String()},
			{"Total NOI", s.Summary.NOI.String()},
			{"Projected Exit Value", s.Summary.ExitValue.String()},
		},
	}
	doc.Table(summary)

	out := doc.String()

	var b bytes.Buffer
	b.WriteString(out)
	ConditionalBlock(&b, func(w io.Writer) bool {
		if len(s.Failures) == 0 {
			return false
		}
		fmt.Fprintf(w, "\n## Skipped Buildings\n\n")
		for _, f := range s.Failures {
			fmt.Fprintf(w, "- %s\n", f.Error())
		}
		return true
	})
	return b.String()
}

// BuildingsMarkdown renders the building assumptions currently on file.
func BuildingsMarkdown(buildings []immosim.Building) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Building Assumptions")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Building", "Annual Rent", "Purchase Cap", "Exit Cap", "LTV", "Rate", "Term", "Occupancy", "Drift", "Indexation", "Capex"},
		Rows:   [][]string{},
	}
	for _, b := range buildings {
		c := b.EffectiveCurrency()
		table.Rows = append(table.Rows, []string{
			b.Name,
			b.Rent.In(c).String(),
			b.PurchaseCap.String(),
			b.ExitCap.String(),
			b.LTV.String(),
			b.InterestRate.String(),
			fmt.Sprintf("%dy", b.TermYears),
			b.Occupancy.String(),
			b.OccupancyDrift.SignedString(),
			b.Indexation.String(),
			b.Capex.In(c).String(),
		})
	}
	doc.Table(table)

	return doc.String()
}
