package orders

import "testing"

func TestComputeTotals(t *testing.T) {
	cases := []struct {
		name     string
		subtotal int64
		tax      int64
		shipping int64
		total    int64
	}{
		{"free shipping over threshold", 11000, 880, 0, 11880},
		{"flat shipping under threshold", 4000, 320, 1000, 5320},
		{"exactly at threshold still ships", 10000, 800, 1000, 11800},
		{"one cent over threshold is free", 10001, 800, 0, 10801},
		{"zero subtotal", 0, 0, 1000, 1000},
		{"fractional tax rounds down", 1031, 82, 1000, 2113}, // 82.48 cents
		{"fractional tax rounds up", 7, 1, 1000, 1008},       // 0.56 cents
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeTotals(tc.subtotal)
			if got.TaxCents != tc.tax {
				t.Errorf("tax = %d, want %d", got.TaxCents, tc.tax)
			}
			if got.ShippingCents != tc.shipping {
				t.Errorf("shipping = %d, want %d", got.ShippingCents, tc.shipping)
			}
			if got.TotalCents != tc.total {
				t.Errorf("total = %d, want %d", got.TotalCents, tc.total)
			}
			if got.TotalCents != got.SubtotalCents+got.TaxCents+got.ShippingCents {
				t.Errorf("total %d != subtotal+tax+shipping", got.TotalCents)
			}
		})
	}
}
