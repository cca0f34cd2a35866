package models

// Annotation codes
const (
	AnnotationPriceOutOfBand = "price_out_of_band"
)

// PriceAnnotation records a regional price that was suppressed during validation
type PriceAnnotation struct {
	Code    string  `json:"code"`
	Region  string  `json:"region"`
	Unit    Unit    `json:"unit"`
	Value   float64 `json:"value"`   // the suppressed price
	Floor   float64 `json:"floor"`   // band in effect when suppressed
	Ceiling float64 `json:"ceiling"`
	Reason  string  `json:"reason"`
}
