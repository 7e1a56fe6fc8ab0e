package immosim

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// this file handles the portfolio file format: a JSONL stream, one building
// definition per line. It should remain human readable, single file and easy
// to merge.

// DecodeBuildings reads building definitions from a stream of JSONL data.
// Empty lines are skipped. The decoded list preserves file order.
func DecodeBuildings(r io.Reader) ([]Building, error) {
	var buildings []Building
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var b Building
		if err := json.Unmarshal(line, &b); err != nil {
			return nil, fmt.Errorf("cannot parse building definition %q: %w", string(line), err)
		}
		buildings = append(buildings, b)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return buildings, nil
}

// EncodeBuilding marshals a single building definition and writes it to the
// writer, followed by a newline, in JSONL format.
func EncodeBuilding(w io.Writer, b Building) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("cannot marshal building %q: %w", b.Name, err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("cannot write building %q: %w", b.Name, err)
	}
	return nil
}

// EncodeBuildings persists the building definitions to an io.Writer in
// canonical JSONL form: sorted by name, stable key order within each line.
// The sort is stable, so buildings sharing a name keep their relative order.
func EncodeBuildings(w io.Writer, buildings []Building) error {
	sorted := slices.Clone(buildings)
	slices.SortStableFunc(sorted, func(a, b Building) int {
		return strings.Compare(a.Name, b.Name)
	})
	for _, b := range sorted {
		if err := EncodeBuilding(w, b); err != nil {
			return err
		}
	}
	return nil
}
