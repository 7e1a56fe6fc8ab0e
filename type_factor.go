package immosim

import "github.com/shopspring/decimal"

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Factor is a dimensionless multiplier, e.g. a rate or a compounding coefficient.
type Factor struct {
	value decimal.Decimal
}

func F[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Factor {
	return Factor{value: newDecimal(value)}
}

func (f Factor) Equal(g Factor) bool       { return f.value.Equal(g.value) }
func (f Factor) LessThan(g Factor) bool    { return f.value.LessThan(g.value) }
func (f Factor) GreaterThan(g Factor) bool { return f.value.GreaterThan(g.value) }
func (f Factor) Add(g Factor) Factor       { return Factor{value: f.value.Add(g.value)} }
func (f Factor) Sub(g Factor) Factor       { return Factor{value: f.value.Sub(g.value)} }
func (f Factor) Mul(g Factor) Factor       { return Factor{value: f.value.Mul(g.value)} }
func (f Factor) Div(g Factor) Factor       { return Factor{value: f.value.Div(g.value)} }
func (f Factor) IsZero() bool              { return f.value.IsZero() }
func (f Factor) IsPositive() bool          { return f.value.IsPositive() }
func (f Factor) IsNegative() bool          { return f.value.IsNegative() }
func (f Factor) String() string            { return f.value.String() }

// Pow raises f to a non-negative integer power.
func (f Factor) Pow(n int) Factor {
	return Factor{value: f.value.Pow(decimal.NewFromInt(int64(n)))}
}

// MarshalJSON implements the json.Marshaler interface.
func (f Factor) MarshalJSON() ([]byte, error) {
	return f.value.MarshalJSON()
}
func (f *Factor) UnmarshalJSON(decimalBytes []byte) error {
	return f.value.UnmarshalJSON(decimalBytes)
}
