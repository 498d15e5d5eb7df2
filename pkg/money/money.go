package money

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount in paise (1/100 of a rupee). Totals are always summed
// as integers; decimal is only used at the edges for rendering and parsing.
type Money int64

const paisePerRupee = 100

// Rupees converts a whole rupee amount to Money.
func Rupees(r int64) Money {
	return Money(r * paisePerRupee)
}

// Times multiplies by a quantity.
func (m Money) Times(qty int) Money {
	return m * Money(qty)
}

// Decimal returns the amount in rupees as an exact decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

func (m Money) String() string {
	return "₹" + m.Decimal().StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal().StringFixed(2)), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*m = 0
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Parse reads a rupee amount such as "499" or "12.50". More than two
// fractional digits is rejected rather than rounded.
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parse money %q: %w", s, err)
	}
	paise := d.Shift(2)
	if !paise.Equal(paise.Truncate(0)) {
		return 0, fmt.Errorf("parse money %q: more than two decimal places", s)
	}
	return Money(paise.IntPart()), nil
}

func (m Money) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *Money) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*m = 0
	case int64:
		*m = Money(v)
	case int32:
		*m = Money(v)
	case []byte:
		return m.scanString(string(v))
	case string:
		return m.scanString(v)
	default:
		return fmt.Errorf("money: cannot scan %T", value)
	}
	return nil
}

func (m *Money) scanString(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("money: %w", err)
	}
	*m = Money(d.IntPart())
	return nil
}

// PercentOff is the discount of price against original, rounded to the
// nearest whole percent. It is for display only.
func PercentOff(original, price Money) int {
	if original <= 0 || original <= price {
		return 0
	}
	diff := decimal.NewFromInt(int64(original - price)).Mul(decimal.NewFromInt(100))
	return int(diff.Div(decimal.NewFromInt(int64(original))).Round(0).IntPart())
}
