package statement

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Amount represents a monetary value extracted from a statement.
//
// The zero value is a valid zero amount with no currency. The currency is
// weak: most statements quote every figure in a single reporting currency
// that is only discovered once (or never), so amounts with an empty currency
// combine freely with amounts that have one.
type Amount struct {
	value decimal.Decimal
	cur   string
}

func A[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T, currency string) Amount {
	return Amount{value: newDecimal(value), cur: currency}
}

func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
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
	case decimal.Decimal:
		return v
	}
	return decimal.Zero
}

// currency returns the amount's currency metadata, defaulting to a bare
// formatter when no currency is known.
func (a Amount) currency() *money.Currency {
	if a.cur == "" {
		return nil
	}
	// the Money constructor is the only way to get a never-nil currency.
	return money.New(0, a.cur).Currency()
}

// String returns the amount formatted for display, using the currency's
// conventional formatting when a currency is known.
func (a Amount) String() string {
	cur := a.currency()
	if cur == nil {
		return a.value.StringFixed(2)
	}
	dec := a.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.Round(0).IntPart())
}

func (a Amount) Currency() string            { return a.cur }
func (a Amount) Equal(b Amount) bool         { return a.value.Equal(b.value) }
func (a Amount) IsZero() bool                { return a.value.IsZero() }
func (a Amount) IsPositive() bool            { return a.value.IsPositive() }
func (a Amount) IsNegative() bool            { return a.value.IsNegative() }
func (a Amount) LessThan(b Amount) bool      { return a.value.LessThan(b.value) }
func (a Amount) GreaterThan(b Amount) bool   { return a.value.GreaterThan(b.value) }
func (a Amount) Neg() Amount                 { return Amount{value: a.value.Neg(), cur: a.cur} }
func (a Amount) Abs() Amount                 { return Amount{value: a.value.Abs(), cur: a.cur} }
func (a Amount) Add(b Amount) Amount         { return Amount{value: a.value.Add(b.value), cur: cur(a, b)} }
func (a Amount) Sub(b Amount) Amount         { return Amount{value: a.value.Sub(b.value), cur: cur(a, b)} }
func (a Amount) Float64() float64            { return a.value.InexactFloat64() }
func (a Amount) Decimal() decimal.Decimal    { return a.value }

// RelativeGap returns |a-b| / |b| as a ratio, or 0 when b is zero.
func (a Amount) RelativeGap(b Amount) float64 {
	if b.IsZero() {
		return 0
	}
	return a.value.Sub(b.value).Abs().Div(b.value.Abs()).InexactFloat64()
}

// WithCurrency returns a copy of the amount denominated in the given currency.
func (a Amount) WithCurrency(currency string) Amount {
	a.cur = currency
	return a
}

// makes the "" currency totally weak.
func cur(a, b Amount) string {
	if a.cur == "" {
		return b.cur
	}
	return a.cur
}

// MarshalJSON encodes the amount as a plain JSON number rounded to cents, the
// precision everything in the output contract is quoted at.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.value.Round(2).String()), nil
}

// SumAmounts adds up a list of amounts exactly.
func SumAmounts(amounts []Amount) Amount {
	var total Amount
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// MedianAmount returns the median of the given amounts, resisting single
// outlier corruption better than a mean would. For an even count it returns
// the exact midpoint of the two central values. It returns the zero Amount
// for an empty slice.
func MedianAmount(amounts []Amount) Amount {
	if len(amounts) == 0 {
		return Amount{}
	}
	sorted := make([]Amount, len(amounts))
	copy(sorted, amounts)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].LessThan(sorted[j-1]); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	sum := sorted[mid-1].Add(sorted[mid])
	return Amount{value: sum.value.Div(decimal.NewFromInt(2)), cur: sum.cur}
}
