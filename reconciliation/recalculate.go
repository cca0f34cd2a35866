package reconciliation

import (
	"math"

	"carnes-boutique/models"
)

// RecalculateOrder prices every weight report against the region's catalog
// prices. It is all-or-nothing: the first unmatched name, missing regional price
// or invalid weight aborts the whole order. Costs keep full precision.
func RecalculateOrder(items []models.CatalogItem, region string, reports []models.WeightReport) (*models.ReconciledOrder, error) {
	if len(reports) == 0 {
		return nil, ErrEmptyReport
	}

	order := &models.ReconciledOrder{
		Region: region,
		Lines:  make([]models.ReconciledLine, 0, len(reports)),
	}

	for _, report := range reports {
		if report.ActualWeightKg <= 0 || math.IsNaN(report.ActualWeightKg) || math.IsInf(report.ActualWeightKg, 0) {
			return nil, &InvalidWeightError{Name: report.ReportedName, Weight: report.ActualWeightKg}
		}

		item, ok := FindMenuItem(items, report.ReportedName)
		if !ok {
			return nil, &ItemNotFoundError{Name: report.ReportedName}
		}

		price, ok := item.RegionalPrice.Price(region)
		if !ok {
			return nil, &NoRegionalPriceError{Name: item.Name, ItemID: item.ID, Region: region}
		}

		lineCost := price * report.ActualWeightKg
		if math.IsInf(lineCost, 0) || math.IsInf(order.Total+lineCost, 0) {
			return nil, &InvalidWeightError{Name: report.ReportedName, Weight: report.ActualWeightKg}
		}
		order.Lines = append(order.Lines, models.ReconciledLine{
			MatchedItem:    item,
			ReportedName:   report.ReportedName,
			PricePerKg:     price,
			ActualWeightKg: report.ActualWeightKg,
			LineCost:       lineCost,
		})
		order.Total += lineCost
	}

	return order, nil
}
