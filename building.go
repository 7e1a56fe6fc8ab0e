package immosim

import (
	"encoding/json"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Building holds the acquisition, financing and operating assumptions for a
// single office building. It is the unit of input of a simulation: one
// Building in, one BuildingResult out.
type Building struct {
	Name           string  // non-empty identifier, also the chart label
	Currency       string  // ISO 4217 code, defaults to EUR when empty
	Rent           Money   // annual gross rent at acquisition
	PurchaseCap    Percent // capitalization rate used to derive the acquisition value
	ExitCap        Percent // capitalization rate used to derive the exit value
	LTV            Percent // share of the total investment financed by debt
	InterestRate   Percent // annual fixed rate of the bank loan
	TermYears      int     // financing duration in years
	Occupancy      Percent // occupancy rate at acquisition
	OccupancyDrift Percent // signed occupancy trend, in points per year
	Indexation     Percent // annual rent escalation rate
	Capex          Money   // renovation budget added to the acquisition value
	CostRatio      Percent // operating costs as a share of realized revenue
}

// DefaultCurrency is used when a building does not state its own.
const DefaultCurrency = "EUR"

// EffectiveCurrency returns the building currency, or DefaultCurrency when unset.
func (b Building) EffectiveCurrency() string {
	if b.Currency == "" {
		return DefaultCurrency
	}
	return b.Currency
}

// InvalidInputError reports a building assumption that fails validation.
// The offending building is skipped, the rest of the simulation proceeds.
type InvalidInputError struct {
	Building string // building name, possibly empty when the name itself is invalid
	Field    string
	Reason   string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("building %q: invalid %s: %s", e.Building, e.Field, e.Reason)
}

func (b Building) invalid(field, reason string) error {
	return &InvalidInputError{Building: b.Name, Field: field, Reason: reason}
}

// Validate checks the building assumptions against the domain invariants:
// strictly positive cap rates, non-negative monetary amounts, and bounded
// ratios. It returns an *InvalidInputError naming the offending field.
func (b Building) Validate() error {
	if b.Name == "" {
		return b.invalid("name", "must not be empty")
	}
	if b.Currency != "" && money.GetCurrency(b.Currency) == nil {
		return b.invalid("currency", fmt.Sprintf("unknown currency code %q", b.Currency))
	}
	if b.Rent.IsNegative() {
		return b.invalid("rent", "must not be negative")
	}
	if b.PurchaseCap <= 0 {
		return b.invalid("purchaseCap", "must be strictly positive")
	}
	if b.ExitCap <= 0 {
		return b.invalid("exitCap", "must be strictly positive")
	}
	if b.LTV < 0 || b.LTV > 100 {
		return b.invalid("ltv", "must be between 0% and 100%")
	}
	if b.InterestRate < 0 || b.InterestRate > 100 {
		return b.invalid("interestRate", "must be between 0% and 100%")
	}
	if b.TermYears < 1 {
		return b.invalid("termYears", "must be at least 1 year")
	}
	if b.Occupancy < 0 || b.Occupancy > 100 {
		return b.invalid("occupancy", "must be between 0% and 100%")
	}
	if b.Indexation < 0 {
		return b.invalid("indexation", "must not be negative")
	}
	if b.Capex.IsNegative() {
		return b.invalid("capex", "must not be negative")
	}
	if b.CostRatio < 0 || b.CostRatio > 100 {
		return b.invalid("costRatio", "must be between 0% and 100%")
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Building with a
// stable key order, so the portfolio file stays diff-friendly.
func (b Building) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("name", b.Name)
	w.Optional("currency", b.Currency)
	w.Append("rent", b.Rent.Decimal())
	w.Append("purchaseCap", float64(b.PurchaseCap))
	w.Append("exitCap", float64(b.ExitCap))
	w.Append("ltv", float64(b.LTV))
	w.Append("interestRate", float64(b.InterestRate))
	w.Append("termYears", b.TermYears)
	w.Append("occupancy", float64(b.Occupancy))
	w.Optional("occupancyDrift", float64(b.OccupancyDrift))
	w.Optional("indexation", float64(b.Indexation))
	// Decimal() always yields an initialized decimal, zero must be tested
	// on the Money itself.
	if !b.Capex.IsZero() {
		w.Append("capex", b.Capex.Decimal())
	}
	w.Optional("costRatio", float64(b.CostRatio))
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Building.
// Monetary amounts are read as decimals and bound to the building currency.
func (b *Building) UnmarshalJSON(data []byte) error {
	var temp struct {
		Name           string          `json:"name"`
		Currency       string          `json:"currency"`
		Rent           decimal.Decimal `json:"rent"`
		PurchaseCap    float64         `json:"purchaseCap"`
		ExitCap        float64         `json:"exitCap"`
		LTV            float64         `json:"ltv"`
		InterestRate   float64         `json:"interestRate"`
		TermYears      int             `json:"termYears"`
		Occupancy      float64         `json:"occupancy"`
		OccupancyDrift float64         `json:"occupancyDrift"`
		Indexation     float64         `json:"indexation"`
		Capex          decimal.Decimal `json:"capex"`
		CostRatio      float64         `json:"costRatio"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*b = Building{
		Name:           temp.Name,
		Currency:       temp.Currency,
		Rent:           M(temp.Rent, temp.Currency),
		PurchaseCap:    Percent(temp.PurchaseCap),
		ExitCap:        Percent(temp.ExitCap),
		LTV:            Percent(temp.LTV),
		InterestRate:   Percent(temp.InterestRate),
		TermYears:      temp.TermYears,
		Occupancy:      Percent(temp.Occupancy),
		OccupancyDrift: Percent(temp.OccupancyDrift),
		Indexation:     Percent(temp.Indexation),
		Capex:          M(temp.Capex, temp.Currency),
		CostRatio:      Percent(temp.CostRatio),
	}
	return nil
}

// Equal reports whether two buildings carry the same assumptions.
func (b Building) Equal(o Building) bool {
	return b.Name == o.Name &&
		b.Currency == o.Currency &&
		b.Rent.Equal(o.Rent) &&
		b.PurchaseCap.Equal(o.PurchaseCap) &&
		b.ExitCap.Equal(o.ExitCap) &&
		b.LTV.Equal(o.LTV) &&
		b.InterestRate.Equal(o.InterestRate) &&
		b.TermYears == o.TermYears &&
		b.Occupancy.Equal(o.Occupancy) &&
		b.OccupancyDrift.Equal(o.OccupancyDrift) &&
		b.Indexation.Equal(o.Indexation) &&
		b.Capex.Equal(o.Capex) &&
		b.CostRatio.Equal(o.CostRatio)
}
