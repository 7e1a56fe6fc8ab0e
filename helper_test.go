package immosim

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// office returns a building with the default form assumptions, the same
// starting point a user gets when adding a building.
func office(name string) Building {
	return Building{
		Name:        name,
		Rent:        NO(100000),
		PurchaseCap: 5,
		ExitCap:     6,
		LTV:         60,
		TermYears:   7,
		Occupancy:   95,
		Indexation:  2,
		Capex:       NO(50000),
	}
}
