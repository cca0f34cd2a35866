package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 rounds an amount to cents, half away from zero.
func Round2(amount float64) float64 {
	f, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return f
}

// FormatMXN formats an amount in pesos as a string like "$1,234.56".
// Uses comma as thousands separator and dot for cents (common in Mexico).
func FormatMXN(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	neg := d.IsNegative()
	if neg {
		d = d.Neg()
	}

	s := d.StringFixed(2)
	intPart, cents := s[:len(s)-3], s[len(s)-2:]

	var b strings.Builder
	b.Grow(len(s) + len(intPart)/3 + 2)
	if neg {
		b.WriteString("-$")
	} else {
		b.WriteString("$")
	}

	// Insert separators from the left.
	rem := len(intPart) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(intPart[:rem])
	for i := rem; i < len(intPart); i += 3 {
		b.WriteByte(',')
		b.WriteString(intPart[i : i+3])
	}
	b.WriteByte('.')
	b.WriteString(cents)

	return b.String()
}

// FormatKg formats a weight with three decimals, e.g. "1.180".
func FormatKg(kg float64) string {
	return decimal.NewFromFloat(kg).StringFixed(3)
}
