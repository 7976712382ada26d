package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"118.80", 11880},
		{"110", 11000},
		{"0.01", 1},
		{"0", 0},
		{"53.2", 5320},
		{"10.000", 1000},
		{"118.800", 11880},
		{"53.2000", 5320},
	}
	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.in)
		if err != nil {
			t.Fatal(err)
		}
		got, err := ToCents(d)
		if err != nil {
			t.Errorf("ToCents(%s): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ToCents(%s) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestToCentsRejectsSubCent(t *testing.T) {
	d, _ := decimal.NewFromString("10.005")
	if _, err := ToCents(d); err == nil {
		t.Error("expected error for sub-cent precision")
	}
}

func TestFromCents(t *testing.T) {
	if got := FromCents(11880).StringFixed(2); got != "118.80" {
		t.Errorf("FromCents(11880) = %s", got)
	}
	if got := FromCents(0).StringFixed(2); got != "0.00" {
		t.Errorf("FromCents(0) = %s", got)
	}
}

func TestPercent(t *testing.T) {
	cases := []struct {
		cents, pct, want int64
	}{
		{11000, 8, 880},
		{4000, 8, 320},
		{1031, 8, 82}, // 82.48 rounds down
		{7, 8, 1},     // 0.56 rounds up
		{0, 8, 0},
	}
	for _, tc := range cases {
		if got := Percent(tc.cents, tc.pct); got != tc.want {
			t.Errorf("Percent(%d, %d) = %d, want %d", tc.cents, tc.pct, got, tc.want)
		}
	}
}

func TestFormat(t *testing.T) {
	if got := Format("USD", 11880); got != "$118.80" {
		t.Errorf("Format USD = %q", got)
	}
	if got := Format("SEK", 5320); got != "53.20 SEK" {
		t.Errorf("Format SEK = %q", got)
	}
}
