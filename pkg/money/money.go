// Package money is the single conversion point between the decimal currency
// units used on the API surface and the integer minor units (cents) used
// internally and by the payment gateway.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ToCents converts a decimal amount ("118.80") into minor units (11880).
// Amounts that are not a whole number of cents are rejected; trailing
// fractional zeros ("10.000") are fine.
func ToCents(amount decimal.Decimal) (int64, error) {
	cents := amount.Mul(hundred)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("money: amount %s has sub-cent precision", amount)
	}
	return cents.IntPart(), nil
}

// FromCents converts minor units into a two-decimal amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(hundred).Round(2)
}

// Percent applies a percentage to an amount in cents, rounding half up to the
// nearest cent. Used for tax (8% of subtotal).
func Percent(cents int64, pct int64) int64 {
	return decimal.NewFromInt(cents).
		Mul(decimal.NewFromInt(pct)).
		Div(hundred).
		Round(0).
		IntPart()
}

// Format renders cents as a display string in the given currency.
func Format(currency string, cents int64) string {
	major := FromCents(cents)
	switch currency {
	case "USD":
		return "$" + major.StringFixed(2)
	case "EUR":
		return "€" + major.StringFixed(2)
	default:
		return major.StringFixed(2) + " " + currency
	}
}
