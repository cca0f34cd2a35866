package reconciliation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"carnes-boutique/models"
)

// trailing weight with an optional unit: "1.180", "1,18 kg", "850 grs"
var weightRegex = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(kg|kgs|kilo|kilos|g|gr|grs|gramos)?\.?\s*$`)

// "chorizo x 2.5", "lomo por 1.2"
var connectorRegex = regexp.MustCompile(`(?i)\s+(x|por)$`)

// ParseWeightReports reads a distributor's chat message, one item per line,
// with the measured weight as the last number on the line. Weights are in
// kilograms unless followed by a gram unit. Blank lines are skipped.
func ParseWeightReports(text string) ([]models.WeightReport, error) {
	var reports []models.WeightReport

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(raw), "-•*·"))
		if line == "" {
			continue
		}

		loc := weightRegex.FindStringSubmatchIndex(line)
		if loc == nil {
			return nil, fmt.Errorf("%w: line %d %q: no weight found", ErrUnreadableLine, i+1, line)
		}

		name := strings.TrimSpace(strings.TrimRight(line[:loc[0]], " \t-:="))
		name = strings.TrimRight(connectorRegex.ReplaceAllString(name, ""), " \t-:=")
		if name == "" {
			return nil, fmt.Errorf("%w: line %d %q: no item name", ErrUnreadableLine, i+1, line)
		}

		value, err := strconv.ParseFloat(strings.Replace(line[loc[2]:loc[3]], ",", ".", 1), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d %q: %v", ErrUnreadableLine, i+1, line, err)
		}
		if loc[4] >= 0 && strings.HasPrefix(strings.ToLower(line[loc[4]:loc[5]]), "g") {
			value /= 1000
		}

		reports = append(reports, models.WeightReport{
			ReportedName:   name,
			ActualWeightKg: value,
		})
	}

	if len(reports) == 0 {
		return nil, ErrEmptyReport
	}
	return reports, nil
}
