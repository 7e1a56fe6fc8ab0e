package immosim

// Loan models the fixed-rate bank financing of a building: a constant
// monthly annuity repaying the principal over the term.
type Loan struct {
	Principal  Money
	AnnualRate Percent
	TermYears  int
}

// Periods returns the number of monthly payments over the term.
func (l Loan) Periods() int { return l.TermYears * 12 }

// monthlyRate returns the periodic rate: annual rate / 12, as a multiplier.
func (l Loan) monthlyRate() Factor {
	return l.AnnualRate.Factor().Div(F(12))
}

// MonthlyPayment returns the constant monthly annuity. At a zero rate the
// loan amortizes straight-line: principal divided by the number of periods.
func (l Loan) MonthlyPayment() Money {
	n := l.Periods()
	if l.AnnualRate == 0 {
		return l.Principal.Div(F(n))
	}
	i := l.monthlyRate()
	// payment = P * i * (1+i)^n / ((1+i)^n - 1)
	growth := F(1).Add(i).Pow(n)
	return l.Principal.Mul(i.Mul(growth).Div(growth.Sub(F(1))))
}

// AnnualDebtService returns twelve monthly payments.
func (l Loan) AnnualDebtService() Money {
	return l.MonthlyPayment().Mul(F(12))
}

// TotalInterest returns the interest paid over the whole term:
// payment × periods − principal. A zero-rate loan pays exactly zero interest,
// returned as such rather than recomputed through the division.
func (l Loan) TotalInterest() Money {
	if l.AnnualRate == 0 {
		return l.Principal.Sub(l.Principal)
	}
	return l.MonthlyPayment().Mul(F(l.Periods())).Sub(l.Principal)
}
