package immosim

import (
	"fmt"
	"math"

	"github.com/PaesslerAG/jsonpath"
)

// this file fetches reference interest rates from public quote endpoints.
// The fetched figure is advisory: a starting point for the interest-rate
// assumption of a building, it never feeds the simulation directly.

// euriborSeries maps the supported Euribor tenors to their ls-tc instrument id.
var euriborSeries = map[string]string{
	"1M":  "43035",
	"3M":  "43037",
	"6M":  "43039",
	"12M": "43043",
}

// EuriborTenors lists the supported tenors for FetchEuribor.
func EuriborTenors() []string { return []string{"1M", "3M", "6M", "12M"} }

// FetchEuribor retrieves the latest quoted Euribor rate for the given tenor
// ("1M", "3M", "6M" or "12M"), in percentage points.
func FetchEuribor(tenor string) (Percent, error) {
	id, ok := euriborSeries[tenor]
	if !ok {
		return 0, fmt.Errorf("unknown Euribor tenor %q, expected one of %v", tenor, EuriborTenors())
	}

	addr := "https://www.ls-tc.de/_rpc/json/instrument/chart/dataForInstrument?instrumentId=" + id + "&series=intraday&type=mini"
	var jobj any
	if err := jwget(daily(), addr, &jobj); err != nil {
		return 0, fmt.Errorf("error in wget Euribor %s: %w", tenor, err)
	}
	path := "$.series.intraday.data[-1:][1]"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("error parsing Euribor %s: %q %w", tenor, path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	val, ok := jval.(float64)
	if !ok || math.IsNaN(val) {
		return 0, fmt.Errorf("error parsing Euribor %s: %q not a float: %v", tenor, path, jval)
	}
	return Percent(val), nil
}

// SuggestInterestRate returns the quoted Euribor rate for the tenor plus a
// bank margin, a common structure for commercial real-estate loans.
func SuggestInterestRate(tenor string, margin Percent) (Percent, error) {
	if margin < 0 {
		return 0, fmt.Errorf("margin must not be negative, got %s", margin)
	}
	base, err := FetchEuribor(tenor)
	if err != nil {
		return 0, err
	}
	// A negative Euribor still prices the loan at the margin floor.
	if base < 0 {
		base = 0
	}
	return base + margin, nil
}
