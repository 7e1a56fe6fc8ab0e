package immosim

import (
	"encoding/csv"
	"fmt"
	"io"
)

// this file handles the result export format: UTF-8, comma-delimited CSV
// with a header row matching the BuildingResult fields. The export is a pure
// rendering of an already computed result table, it never feeds back into
// the simulation.

// csvHeader lists the exported columns, in BuildingResult field order.
var csvHeader = []string{
	"Name",
	"TotalInvestment",
	"Debt",
	"Equity",
	"MonthlyPayment",
	"TotalInterest",
	"FinalOccupancy",
	"FinalRevenue",
	"NOI",
	"ExitValue",
}

// ExportCSV writes the result table to 'w' as CSV. Amounts are plain decimal
// numbers in major currency units, occupancy a percentage figure, both
// without unit symbols so the file loads cleanly in a spreadsheet.
func ExportCSV(w io.Writer, results []BuildingResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}
	for _, r := range results {
		record := []string{
			r.Name,
			r.TotalInvestment.Decimal().String(),
			r.Debt.Decimal().String(),
			r.Equity.Decimal().String(),
			r.MonthlyPayment.Decimal().String(),
			r.TotalInterest.Decimal().String(),
			fmt.Sprintf("%.2f", float64(r.FinalOccupancy)),
			r.FinalRevenue.Decimal().String(),
			r.NOI.Decimal().String(),
			r.ExitValue.Decimal().String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("cannot write CSV row for %q: %w", r.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
