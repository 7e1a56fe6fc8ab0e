package immosim

import (
	"errors"
	"fmt"
	"math"
)

// ErrEmptyPortfolio is returned by Simulate when there is no building to
// evaluate. Callers should surface it as a warning, not abort.
var ErrEmptyPortfolio = errors.New("no buildings to simulate")

// Config holds the tunable constants of the simulation.
type Config struct {
	// OccupancyGrowth is the steepness of the logistic occupancy trajectory,
	// per point of yearly drift. It is a modeling constant, not a market
	// observable: changing it reshapes how fast occupancy converges to its bound.
	OccupancyGrowth float64

	// MaxBuildings caps the number of buildings per run. Zero means no cap.
	MaxBuildings int
}

// DefaultConfig returns the simulation constants used by the CLI and the
// form server.
func DefaultConfig() Config {
	return Config{OccupancyGrowth: 0.35, MaxBuildings: 20}
}

// BuildingResult holds the investment metrics computed for one building.
type BuildingResult struct {
	Name            string
	TotalInvestment Money   // acquisition value + capex budget
	Debt            Money
	Equity          Money
	MonthlyPayment  Money   // constant loan annuity
	TotalInterest   Money   // interest paid over the whole term
	FinalOccupancy  Percent // projected occupancy at the end of the term
	FinalRevenue    Money   // realized annual revenue at the end of the term
	NOI             Money   // annual net operating income at the end of the term
	ExitValue       Money
}

// PortfolioSummary sums the per-building results. It is derived from the
// results on every run, never stored.
type PortfolioSummary struct {
	Buildings int
	Equity    Money
	Debt      Money
	NOI       Money
	ExitValue Money
}

// Simulation is the outcome of one full run: the successful results, the
// per-building validation failures, and the portfolio totals over the
// successes only.
type Simulation struct {
	Results  []BuildingResult
	Failures []*InvalidInputError
	Summary  PortfolioSummary
}

// Simulate evaluates every building independently and aggregates the
// successes. A building failing validation is reported in Failures and
// excluded from the summary; it never aborts the run. The building list is
// owned by the caller and is not modified.
func Simulate(cfg Config, buildings []Building) (*Simulation, error) {
	if len(buildings) == 0 {
		return nil, ErrEmptyPortfolio
	}
	if cfg.MaxBuildings > 0 && len(buildings) > cfg.MaxBuildings {
		return nil, fmt.Errorf("too many buildings: %d, at most %d per run", len(buildings), cfg.MaxBuildings)
	}

	sim := &Simulation{}
	reference := "" // all valid buildings must settle in one currency to aggregate
	for _, b := range buildings {
		// Validate before the currency check: an invalid building must never
		// set the reference currency and poison the rest of the run.
		if err := b.Validate(); err != nil {
			var invalid *InvalidInputError
			if errors.As(err, &invalid) {
				sim.Failures = append(sim.Failures, invalid)
				continue
			}
			return nil, err
		}
		if c := b.EffectiveCurrency(); reference == "" {
			reference = c
		} else if c != reference {
			sim.Failures = append(sim.Failures, &InvalidInputError{
				Building: b.Name,
				Field:    "currency",
				Reason:   fmt.Sprintf("%s differs from the portfolio currency %s", c, reference),
			})
			continue
		}
		r, err := SimulateBuilding(cfg, b)
		if err != nil {
			var invalid *InvalidInputError
			if errors.As(err, &invalid) {
				sim.Failures = append(sim.Failures, invalid)
				continue
			}
			return nil, err
		}
		sim.Results = append(sim.Results, r)
	}
	sim.Summary = Aggregate(sim.Results)
	return sim, nil
}

// SimulateBuilding computes the investment metrics of a single building,
// or fails with an *InvalidInputError when the assumptions are out of bounds.
func SimulateBuilding(cfg Config, b Building) (BuildingResult, error) {
	if err := b.Validate(); err != nil {
		return BuildingResult{}, err
	}

	// Bind amounts to the effective currency so results format consistently.
	currency := b.EffectiveCurrency()
	rent := b.Rent.In(currency)
	capex := b.Capex.In(currency)

	// Acquisition and financing.
	acquisition := rent.Div(b.PurchaseCap.Factor())
	total := acquisition.Add(capex)
	debt := total.Per(b.LTV)
	equity := total.Sub(debt)

	loan := Loan{Principal: debt, AnnualRate: b.InterestRate, TermYears: b.TermYears}

	// Revenue at the end of the term: indexed rent scaled by occupancy.
	occupancy := finalOccupancy(cfg, b)
	indexed := rent.Mul(F(1).Add(b.Indexation.Factor()).Pow(b.TermYears))
	revenue := indexed.Per(occupancy)

	noi := revenue.Sub(revenue.Per(b.CostRatio)).Sub(loan.AnnualDebtService())

	return BuildingResult{
		Name:            b.Name,
		TotalInvestment: total,
		Debt:            debt,
		Equity:          equity,
		MonthlyPayment:  loan.MonthlyPayment(),
		TotalInterest:   loan.TotalInterest(),
		FinalOccupancy:  occupancy,
		FinalRevenue:    revenue,
		NOI:             noi,
		ExitValue:       revenue.Div(b.ExitCap.Factor()),
	}, nil
}

// finalOccupancy projects the occupancy rate at the end of the financing
// term. The trajectory is a logistic curve: the drift rate sets direction
// and speed, cfg.OccupancyGrowth sets the steepness, and the result is
// clamped to [0%, 100%]. At zero drift, or once occupancy sits on a bound,
// the rate holds.
func finalOccupancy(cfg Config, b Building) Percent {
	o := float64(b.Occupancy)
	d := float64(b.OccupancyDrift)
	if d == 0 || o <= 0 || o >= 100 {
		return b.Occupancy.Clamp(0, 100)
	}
	a := (100 - o) / o
	projected := 100 / (1 + a*math.Exp(-cfg.OccupancyGrowth*d*float64(b.TermYears)))
	return Percent(projected).Clamp(0, 100)
}

// Aggregate sums per-building results into portfolio totals. An empty
// result set yields a zero summary.
func Aggregate(results []BuildingResult) PortfolioSummary {
	var s PortfolioSummary
	for _, r := range results {
		s.Buildings++
		s.Equity = s.Equity.Add(r.Equity)
		s.Debt = s.Debt.Add(r.Debt)
		s.NOI = s.NOI.Add(r.NOI)
		s.ExitValue = s.ExitValue.Add(r.ExitValue)
	}
	return s
}
