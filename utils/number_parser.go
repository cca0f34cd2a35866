package utils

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseNumber parses a currency string that may use either "," or "." as
// decimal separator ("1.234,56", "1,234.56", "1234.56", "$ 185").
// Returns ok=false when the token cannot be parsed.
func ParseNumber(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsDigit(r), r == ',', r == '.', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r), r == '$', unicode.IsLetter(r):
			// currency symbols, "MXN", thin spaces
		default:
			return 0, false
		}
	}
	clean := strings.Trim(b.String(), ".,")
	if clean == "" {
		return 0, false
	}

	lastComma := strings.LastIndex(clean, ",")
	lastDot := strings.LastIndex(clean, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		// last separator is the decimal point
		if lastComma > lastDot {
			clean = strings.ReplaceAll(clean, ".", "")
			clean = strings.Replace(clean, ",", ".", 1)
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(clean, ",") > 1 {
			return 0, false
		}
		clean = strings.Replace(clean, ",", ".", 1)
	case lastDot >= 0:
		if len(clean)-lastDot-1 == 2 {
			head := strings.ReplaceAll(clean[:lastDot], ".", "")
			clean = head + clean[lastDot:]
		} else {
			clean = strings.ReplaceAll(clean, ".", "")
		}
	}

	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
