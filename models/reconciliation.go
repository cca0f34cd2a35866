package models

// WeightReport is a distributor's as-weighed measurement for one ordered item
type WeightReport struct {
	ReportedName   string  `json:"reportedName"`
	ActualWeightKg float64 `json:"actualWeightKg"`
}

// ReconciledLine is one resolved line of a reconciled order.
// LineCost is kept at full precision; rounding happens only when rendering.
type ReconciledLine struct {
	MatchedItem    CatalogItem `json:"matchedItem"`
	ReportedName   string      `json:"reportedName"`
	PricePerKg     float64     `json:"pricePerKg"`
	ActualWeightKg float64     `json:"actualWeightKg"`
	LineCost       float64     `json:"lineCost"`
}

// ReconciledOrder is the recomputed order, lines in input order
type ReconciledOrder struct {
	Region string           `json:"region"`
	Lines  []ReconciledLine `json:"lines"`
	Total  float64          `json:"total"`
}

// RecalculateRequest is the body of POST /admin/orders/recalculate.
// Either Reports or Text (free-form distributor message) must be set.
type RecalculateRequest struct {
	Region  string         `json:"region"`
	Reports []WeightReport `json:"reports"`
	Text    string         `json:"text"`
	Phone   string         `json:"phone,omitempty"`
}

// RecalculateResponse is returned by the recalculation endpoints
type RecalculateResponse struct {
	Order     *ReconciledOrder `json:"order"`
	Message   string           `json:"message"`
	MessageID string           `json:"messageId,omitempty"`
}
