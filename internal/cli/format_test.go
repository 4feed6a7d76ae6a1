package cli

import (
	"math"
	"testing"
)

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{80, "$80"},
		{1000, "$1,000"},
		{11250, "$11,250"},
		{1234.5, "$1,234.50"},
		{0.125, "$0.13"},
		{-1000, "-$1,000"},
		{-0.5, "-$0.50"},
		{1234567.891, "$1,234,567.89"},
		{1e20, "$100,000,000,000,000,000,000"},
		{-2.5e19, "-$25,000,000,000,000,000,000"},
		{math.Inf(1), "∞"},
		{math.Inf(-1), "-∞"},
		{math.NaN(), "n/a"},
	}
	for _, c := range cases {
		if got := FormatMoney(c.in); got != c.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatMoney_Currency(t *testing.T) {
	orig := Currency
	defer func() { Currency = orig }()

	Currency = "€"
	if got := FormatMoney(2500); got != "€2,500" {
		t.Errorf("FormatMoney = %q, want €2,500", got)
	}
}

func TestFormatPercent(t *testing.T) {
	cases := map[float64]string{
		20:    "20%",
		7.5:   "7.5%",
		0:     "0%",
		150:   "150%",
		33.33: "33.33%",
	}
	for in, want := range cases {
		if got := FormatPercent(in); got != want {
			t.Errorf("FormatPercent(%v) = %q, want %q", in, got, want)
		}
	}
	if got := FormatRatio(0.2); got != "20%" {
		t.Errorf("FormatRatio(0.2) = %q, want 20%%", got)
	}
	if got := FormatPercent(math.Inf(1)); got != "∞%" {
		t.Errorf("FormatPercent(+Inf) = %q, want ∞%%", got)
	}
}

func TestFormatNumber(t *testing.T) {
	if got := FormatNumber(1234567); got != "1,234,567" {
		t.Errorf("FormatNumber = %q", got)
	}
	if got := FormatNumber(-1234); got != "-1,234" {
		t.Errorf("FormatNumber = %q", got)
	}
}
