package orders

import "github.com/amanisrajpoot/youandonly-sub000/pkg/money"

const (
	taxRatePct            = 8
	shippingFlatCents     = 1000
	freeShippingOverCents = 10000
)

type Totals struct {
	SubtotalCents int64
	TaxCents      int64
	ShippingCents int64
	TotalCents    int64
}

// ComputeTotals derives tax, shipping and total from the subtotal:
// tax is a flat 8% rounded half up to the cent, shipping is a flat fee
// waived when the subtotal exceeds 100 currency units, and
// total == subtotal + tax + shipping always.
func ComputeTotals(subtotalCents int64) Totals {
	t := Totals{
		SubtotalCents: subtotalCents,
		TaxCents:      money.Percent(subtotalCents, taxRatePct),
		ShippingCents: shippingFlatCents,
	}
	if subtotalCents > freeShippingOverCents {
		t.ShippingCents = 0
	}
	t.TotalCents = t.SubtotalCents + t.TaxCents + t.ShippingCents
	return t
}
