package immosim

import (
	"errors"
	"testing"
)

func TestSimulateBuilding_Acquisition(t *testing.T) {
	// Scenario from the product sheet: rent=100000, purchase cap=5%,
	// LTV=60%, capex=50000.
	b := office("Tour A")
	r, err := SimulateBuilding(DefaultConfig(), b)
	if err != nil {
		t.Fatalf("SimulateBuilding() returned unexpected error: %v", err)
	}

	if want := EUR(2050000); !r.TotalInvestment.Equal(want) {
		t.Errorf("TotalInvestment = %v, want %v", r.TotalInvestment, want)
	}
	if want := EUR(1230000); !r.Debt.Equal(want) {
		t.Errorf("Debt = %v, want %v", r.Debt, want)
	}
	if want := EUR(820000); !r.Equity.Equal(want) {
		t.Errorf("Equity = %v, want %v", r.Equity, want)
	}
}

func TestSimulateBuilding_EquityPlusDebtIsTotalInvestment(t *testing.T) {
	testCases := []struct {
		name string
		ltv  Percent
	}{
		{"no leverage", 0},
		{"typical leverage", 60},
		{"odd leverage", 37.5},
		{"full leverage", 100},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := office("Tour A")
			b.LTV = tc.ltv
			r, err := SimulateBuilding(DefaultConfig(), b)
			if err != nil {
				t.Fatalf("SimulateBuilding() returned unexpected error: %v", err)
			}
			if got := r.Equity.Add(r.Debt); !got.Equal(r.TotalInvestment) {
				t.Errorf("Equity+Debt = %v, want exactly TotalInvestment = %v", got, r.TotalInvestment)
			}
		})
	}
}

func TestSimulateBuilding_NoLeverage(t *testing.T) {
	b := office("Tour A")
	b.LTV = 0
	b.CostRatio = 20
	r, err := SimulateBuilding(DefaultConfig(), b)
	if err != nil {
		t.Fatalf("SimulateBuilding() returned unexpected error: %v", err)
	}
	if !r.Debt.IsZero() {
		t.Errorf("Debt = %v, want zero at LTV=0", r.Debt)
	}
	if !r.TotalInterest.IsZero() {
		t.Errorf("TotalInterest = %v, want zero at LTV=0", r.TotalInterest)
	}
	// Without debt service the NOI is exactly revenue minus operating costs.
	want := r.FinalRevenue.Sub(r.FinalRevenue.Per(b.CostRatio))
	if !r.NOI.Equal(want) {
		t.Errorf("NOI = %v, want %v (no debt-service term)", r.NOI, want)
	}
}

func TestSimulateBuilding_LeveragedNOI(t *testing.T) {
	b := office("Tour A")
	b.InterestRate = 3.5
	b.CostRatio = 20
	r, err := SimulateBuilding(DefaultConfig(), b)
	if err != nil {
		t.Fatalf("SimulateBuilding() returned unexpected error: %v", err)
	}

	loan := Loan{Principal: r.Debt, AnnualRate: b.InterestRate, TermYears: b.TermYears}
	service := loan.AnnualDebtService()
	if service.IsZero() {
		t.Fatal("annual debt service is zero, the leverage case is not exercised")
	}
	if !r.MonthlyPayment.Equal(loan.MonthlyPayment()) {
		t.Errorf("MonthlyPayment = %v, want %v", r.MonthlyPayment, loan.MonthlyPayment())
	}

	// Revenue minus operating costs minus the annualized debt service.
	want := r.FinalRevenue.Sub(r.FinalRevenue.Per(b.CostRatio)).Sub(service)
	if !r.NOI.Equal(want) {
		t.Errorf("NOI = %v, want %v", r.NOI, want)
	}
}

func TestSimulateBuilding_ExitValueMonotonicity(t *testing.T) {
	base := office("Tour A")
	baseline, err := SimulateBuilding(DefaultConfig(), base)
	if err != nil {
		t.Fatalf("SimulateBuilding() returned unexpected error: %v", err)
	}

	t.Run("increasing in indexation", func(t *testing.T) {
		b := base
		b.Indexation = base.Indexation + 1
		r, err := SimulateBuilding(DefaultConfig(), b)
		if err != nil {
			t.Fatalf("SimulateBuilding() returned unexpected error: %v", err)
		}
		if r.ExitValue.AsFloat() <= baseline.ExitValue.AsFloat() {
			t.Errorf("ExitValue = %v at indexation %v, want more than %v", r.ExitValue, b.Indexation, baseline.ExitValue)
		}
	})

	t.Run("increasing in occupancy drift", func(t *testing.T) {
		b := base
		b.OccupancyDrift = 2
		r, err := SimulateBuilding(DefaultConfig(), b)
		if err != nil {
			t.Fatalf("SimulateBuilding() returned unexpected error: %v", err)
		}
		if r.ExitValue.AsFloat() <= baseline.ExitValue.AsFloat() {
			t.Errorf("ExitValue = %v at drift +2, want more than %v", r.ExitValue, baseline.ExitValue)
		}
	})
}

func TestSimulateBuilding_InvalidInput(t *testing.T) {
	testCases := []struct {
		name      string
		mutate    func(*Building)
		wantField string
	}{
		{"empty name", func(b *Building) { b.Name = "" }, "name"},
		{"unknown currency", func(b *Building) { b.Currency = "EURO" }, "currency"},
		{"negative rent", func(b *Building) { b.Rent = NO(-1) }, "rent"},
		{"zero purchase cap", func(b *Building) { b.PurchaseCap = 0 }, "purchaseCap"},
		{"negative exit cap", func(b *Building) { b.ExitCap = -2 }, "exitCap"},
		{"ltv above 100", func(b *Building) { b.LTV = 120 }, "ltv"},
		{"negative interest", func(b *Building) { b.InterestRate = -1 }, "interestRate"},
		{"zero term", func(b *Building) { b.TermYears = 0 }, "termYears"},
		{"occupancy above 100", func(b *Building) { b.Occupancy = 101 }, "occupancy"},
		{"negative indexation", func(b *Building) { b.Indexation = -0.5 }, "indexation"},
		{"negative capex", func(b *Building) { b.Capex = NO(-100) }, "capex"},
		{"cost ratio above 100", func(b *Building) { b.CostRatio = 150 }, "costRatio"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := office("Tour A")
			tc.mutate(&b)
			_, err := SimulateBuilding(DefaultConfig(), b)
			var invalid *InvalidInputError
			if !errors.As(err, &invalid) {
				t.Fatalf("SimulateBuilding() error = %v, want *InvalidInputError", err)
			}
			if invalid.Field != tc.wantField {
				t.Errorf("offending field = %q, want %q", invalid.Field, tc.wantField)
			}
		})
	}
}

func TestSimulate_FailureIsolation(t *testing.T) {
	bad := office("Tour B")
	bad.PurchaseCap = 0
	buildings := []Building{office("Tour A"), bad, office("Tour C")}

	sim, err := Simulate(DefaultConfig(), buildings)
	if err != nil {
		t.Fatalf("Simulate() returned unexpected error: %v", err)
	}
	if len(sim.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(sim.Results))
	}
	if len(sim.Failures) != 1 {
		t.Fatalf("got %d failures, want 1", len(sim.Failures))
	}
	if sim.Failures[0].Building != "Tour B" {
		t.Errorf("failure reported for %q, want \"Tour B\"", sim.Failures[0].Building)
	}

	// Portfolio totals are exactly the sum over the successes, the invalid
	// building contributes zero.
	want := Aggregate(sim.Results)
	if !sim.Summary.Equity.Equal(want.Equity) || !sim.Summary.ExitValue.Equal(want.ExitValue) {
		t.Errorf("Summary = %+v, want sum over successes %+v", sim.Summary, want)
	}
	if sim.Summary.Buildings != 2 {
		t.Errorf("Summary.Buildings = %d, want 2", sim.Summary.Buildings)
	}
}

func TestSimulate_EmptyPortfolio(t *testing.T) {
	_, err := Simulate(DefaultConfig(), nil)
	if !errors.Is(err, ErrEmptyPortfolio) {
		t.Errorf("Simulate(nil) error = %v, want ErrEmptyPortfolio", err)
	}
}

func TestSimulate_TooManyBuildings(t *testing.T) {
	cfg := DefaultConfig()
	buildings := make([]Building, cfg.MaxBuildings+1)
	for i := range buildings {
		buildings[i] = office("Tour")
	}
	if _, err := Simulate(cfg, buildings); err == nil {
		t.Error("Simulate() accepted more buildings than the configured cap")
	}
}

func TestSimulate_CurrencyMismatch(t *testing.T) {
	other := office("Tour B")
	other.Currency = "USD"
	other.Rent = M(100000, "USD")
	other.Capex = M(50000, "USD")

	sim, err := Simulate(DefaultConfig(), []Building{office("Tour A"), other})
	if err != nil {
		t.Fatalf("Simulate() returned unexpected error: %v", err)
	}
	if len(sim.Failures) != 1 || sim.Failures[0].Field != "currency" {
		t.Fatalf("got failures %v, want one currency failure", sim.Failures)
	}
	if len(sim.Results) != 1 {
		t.Errorf("got %d results, want 1", len(sim.Results))
	}
}

func TestSimulate_InvalidBuildingDoesNotSetCurrency(t *testing.T) {
	// An invalid building must not become the currency reference: the valid
	// buildings after it still contribute to the run.
	bad := office("Tour A")
	bad.Currency = "EURO"

	sim, err := Simulate(DefaultConfig(), []Building{bad, office("Tour B")})
	if err != nil {
		t.Fatalf("Simulate() returned unexpected error: %v", err)
	}
	if len(sim.Failures) != 1 || sim.Failures[0].Field != "currency" || sim.Failures[0].Building != "Tour A" {
		t.Fatalf("got failures %v, want one failure on Tour A's currency", sim.Failures)
	}
	if len(sim.Results) != 1 || sim.Results[0].Name != "Tour B" {
		t.Fatalf("got results %v, want Tour B alone", sim.Results)
	}
	if sim.Summary.Buildings != 1 {
		t.Errorf("Summary.Buildings = %d, want 1", sim.Summary.Buildings)
	}
}

func TestAggregate_Empty(t *testing.T) {
	s := Aggregate(nil)
	if s.Buildings != 0 || !s.Equity.IsZero() || !s.Debt.IsZero() || !s.NOI.IsZero() || !s.ExitValue.IsZero() {
		t.Errorf("Aggregate(nil) = %+v, want all-zero summary", s)
	}
}

func TestFinalOccupancy(t *testing.T) {
	cfg := DefaultConfig()
	testCases := []struct {
		name      string
		occupancy Percent
		drift     Percent
		term      int
		check     func(t *testing.T, got Percent)
	}{
		{"no drift holds", 95, 0, 7, func(t *testing.T, got Percent) {
			if !got.Equal(95) {
				t.Errorf("got %v, want 95%%", got)
			}
		}},
		{"full occupancy holds", 100, 5, 7, func(t *testing.T, got Percent) {
			if !got.Equal(100) {
				t.Errorf("got %v, want 100%%", got)
			}
		}},
		{"vacant building stays vacant", 0, 5, 7, func(t *testing.T, got Percent) {
			if !got.Equal(0) {
				t.Errorf("got %v, want 0%%", got)
			}
		}},
		{"positive drift raises occupancy", 80, 2, 7, func(t *testing.T, got Percent) {
			if got <= 80 || got > 100 {
				t.Errorf("got %v, want in (80%%, 100%%]", got)
			}
		}},
		{"negative drift lowers occupancy", 80, -2, 7, func(t *testing.T, got Percent) {
			if got >= 80 || got < 0 {
				t.Errorf("got %v, want in [0%%, 80%%)", got)
			}
		}},
		{"longer term drifts further", 80, 2, 15, func(t *testing.T, got Percent) {
			short := finalOccupancy(cfg, Building{Occupancy: 80, OccupancyDrift: 2, TermYears: 7})
			if got <= short {
				t.Errorf("got %v over 15y, want more than %v over 7y", got, short)
			}
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := finalOccupancy(cfg, Building{Occupancy: tc.occupancy, OccupancyDrift: tc.drift, TermYears: tc.term})
			tc.check(t, got)
		})
	}
}
