package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	priceListExtRegex = regexp.MustCompile(`(?i)\.pdf$`)
	// 2024-03-18, 2024_03_18, 18-03-2024, 18.03.24
	isoDateRegex = regexp.MustCompile(`(\d{4})[-_.](\d{1,2})[-_.](\d{1,2})`)
	dmyDateRegex = regexp.MustCompile(`(\d{1,2})[-_.](\d{1,2})[-_.](\d{2,4})`)
)

// ParsePriceListFileName extracts the list date from a supplier price-list file name.
// Examples: "LISTA DE PRECIOS 2024-03-18.pdf", "precios_18-03-24.PDF".
func ParsePriceListFileName(filename string) (time.Time, error) {
	if !priceListExtRegex.MatchString(filename) {
		return time.Time{}, fmt.Errorf("invalid price list file name %q: expected a .pdf file", filename)
	}
	name := priceListExtRegex.ReplaceAllString(strings.TrimSpace(filename), "")

	if m := isoDateRegex.FindStringSubmatch(name); m != nil {
		return buildDate(m[1], m[2], m[3])
	}
	if m := dmyDateRegex.FindStringSubmatch(name); m != nil {
		year := m[3]
		if len(year) == 2 {
			year = "20" + year
		}
		return buildDate(year, m[2], m[1])
	}
	return time.Time{}, fmt.Errorf("no date found in price list file name %q", filename)
}

func buildDate(y, m, d string) (time.Time, error) {
	year, _ := strconv.Atoi(y)
	month, _ := strconv.Atoi(m)
	day, _ := strconv.Atoi(d)
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("invalid date %s-%s-%s", y, m, d)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		return time.Time{}, fmt.Errorf("invalid date %s-%s-%s", y, m, d)
	}
	return t, nil
}
