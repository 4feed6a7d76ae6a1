// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"math"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Currency is the symbol prefixed to money values.
var Currency = "$"

// FormatMoney formats a currency amount with group separators. Cents are
// shown only when the rounded amount has them. Overflowed amounts render
// as "∞" rather than a number.
// e.g., 11250 -> "$11,250", 1234.5 -> "$1,234.50", -80 -> "-$80"
func FormatMoney(v float64) string {
	if s, ok := nonFinite(v); ok {
		return s
	}

	d := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	// StringFixed keeps every digit; IntPart would wrap past int64.
	whole, cents, _ := strings.Cut(d.StringFixed(2), ".")
	n, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return sign + Currency + d.StringFixed(2)
	}
	if cents == "00" {
		return sign + Currency + humanize.BigComma(n)
	}
	return sign + Currency + humanize.BigComma(n) + "." + cents
}

// nonFinite returns the display form of NaN and ±Inf.
func nonFinite(v float64) (string, bool) {
	switch {
	case math.IsNaN(v):
		return "n/a", true
	case math.IsInf(v, 1):
		return "∞", true
	case math.IsInf(v, -1):
		return "-∞", true
	}
	return "", false
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent formats a percentage value (20 -> "20%", 7.5 -> "7.5%").
func FormatPercent(pct float64) string {
	if s, ok := nonFinite(pct); ok {
		return s + "%"
	}
	return humanize.Ftoa(decimal.NewFromFloat(pct).Round(2).InexactFloat64()) + "%"
}

// FormatRatio formats a 0-1 fraction as a percentage string.
func FormatRatio(f float64) string {
	return FormatPercent(f * 100)
}
