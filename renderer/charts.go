package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/immosim"
	md "github.com/nao1215/markdown"
)

// The two portfolio charts are rendered as fixed-width bar charts inside
// markdown code blocks, so they survive any terminal or markdown viewer.

// barWidth is the width of a full bar, in character cells.
const barWidth = 40

// ExitChartMarkdown renders the exit value of every building as a bar chart.
func ExitChartMarkdown(results []immosim.BuildingResult) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H2("Exit Value per Building")

	var chart strings.Builder
	labels := labelWidth(results)
	max := 0.0
	for _, r := range results {
		if v := r.ExitValue.AsFloat(); v > max {
			max = v
		}
	}
	for _, r := range results {
		fmt.Fprintf(&chart, "%-*s %s %s\n", labels, r.Name, bar(r.ExitValue.AsFloat(), max, '█'), r.ExitValue)
	}
	doc.CodeBlocks(md.SyntaxHighlightText, strings.TrimRight(chart.String(), "\n"))

	return doc.String()
}

// FinancingChartMarkdown renders the equity-vs-debt split of every building
// as a stacked bar chart: equity solid, debt shaded.
func FinancingChartMarkdown(results []immosim.BuildingResult) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H2("Financing per Building")
	doc.PlainText("equity `█` / debt `░`")

	var chart strings.Builder
	labels := labelWidth(results)
	max := 0.0
	for _, r := range results {
		if v := r.TotalInvestment.AsFloat(); v > max {
			max = v
		}
	}
	for _, r := range results {
		stacked := bar(r.Equity.AsFloat(), max, '█') + bar(r.Debt.AsFloat(), max, '░')
		fmt.Fprintf(&chart, "%-*s %-*s %s + %s\n", labels, r.Name, barWidth, stacked, r.Equity, r.Debt)
	}
	doc.CodeBlocks(md.SyntaxHighlightText, strings.TrimRight(chart.String(), "\n"))

	return doc.String()
}

// bar returns a run of 'fill' cells proportional to value/max, full scale
// being barWidth cells. A non-zero value always gets at least one cell.
func bar(value, max float64, fill rune) string {
	if max <= 0 || value <= 0 {
		return ""
	}
	cells := int(value/max*barWidth + 0.5)
	if cells < 1 {
		cells = 1
	}
	if cells > barWidth {
		cells = barWidth
	}
	return strings.Repeat(string(fill), cells)
}

// labelWidth returns the width of the label column: the longest name.
func labelWidth(results []immosim.BuildingResult) int {
	w := 0
	for _, r := range results {
		if len(r.Name) > w {
			w = len(r.Name)
		}
	}
	return w
}
