package reconciliation

import (
	"fmt"
	"strconv"
	"strings"

	"carnes-boutique/models"
	"carnes-boutique/utils"
)

// FormatRecalculationMessage renders the customer-facing summary, e.g.
//
//	Res - Costilla Baby Back: 1.180 kg x $165.60/kg = $195.41
//	Embutidos - Chorizo: 3 pza x $45.00/pza = $135.00
//	Total: $330.41
//
// Amounts are rounded to cents only here.
func FormatRecalculationMessage(order *models.ReconciledOrder) string {
	if order == nil {
		return ""
	}

	var b strings.Builder
	for _, line := range order.Lines {
		quantity, unit := utils.FormatKg(line.ActualWeightKg), "kg"
		if line.MatchedItem.Unit == models.UnitPiece {
			quantity, unit = strconv.FormatFloat(line.ActualWeightKg, 'f', -1, 64), "pza"
		}
		fmt.Fprintf(&b, "%s - %s: %s %s x %s/%s = %s\n",
			line.MatchedItem.Category,
			line.MatchedItem.Name,
			quantity, unit,
			utils.FormatMXN(line.PricePerKg), unit,
			utils.FormatMXN(line.LineCost),
		)
	}
	fmt.Fprintf(&b, "Total: %s", utils.FormatMXN(order.Total))
	return b.String()
}
