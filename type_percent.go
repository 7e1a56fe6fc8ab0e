package immosim

import "fmt"

// Percent is a rate expressed in percentage points, e.g. Percent(5) is 5%.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}

// Factor returns the multiplier this percentage stands for: Percent(5).Factor() is 0.05.
func (p Percent) Factor() Factor {
	return F(float64(p)).Div(F(100))
}

// Clamp bounds p to the [lo, hi] interval.
func (p Percent) Clamp(lo, hi Percent) Percent {
	if p < lo {
		return lo
	}
	if p > hi {
		return hi
	}
	return p
}
