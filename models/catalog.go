package models

import "time"

// Unit is the sale basis of a catalog item
type Unit string

const (
	UnitWeight Unit = "weight" // priced per kilogram
	UnitPiece  Unit = "piece"
)

// RawPriceRecord is a single priced line recovered from a wholesale price list
type RawPriceRecord struct {
	Category       string  `json:"category"`
	ProductName    string  `json:"productName"`
	WholesalePrice float64 `json:"wholesalePrice"`
	Unit           Unit    `json:"unit"`
}

// RegionalPrices maps a region key (e.g. "regionA") to its retail price.
// A missing key means the item is unavailable in that region.
type RegionalPrices map[string]float64

// Price returns the price for a region and whether it is available
func (p RegionalPrices) Price(region string) (float64, bool) {
	v, ok := p[region]
	if !ok || v <= 0 {
		return 0, false
	}
	return v, true
}

// CatalogItem represents a single item in the catalog
type CatalogItem struct {
	ID             string            `json:"id"` // derived from category + name
	Name           string            `json:"name"`
	Category       string            `json:"category"`
	Unit           Unit              `json:"unit"`
	WholesalePrice float64           `json:"wholesalePrice"`
	RegionalPrice  RegionalPrices    `json:"regionalPrice"`
	Annotations    []PriceAnnotation `json:"annotations,omitempty"`
	ImageFileID    string            `json:"imageFileId,omitempty"` // Drive file id of the product photo
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// CatalogSnapshot is a history entry written on every catalog import
type CatalogSnapshot struct {
	ID         string        `json:"id"`
	ImportedAt time.Time     `json:"importedAt"`
	Source     string        `json:"source"`
	ItemCount  int           `json:"itemCount"`
	Items      []CatalogItem `json:"items,omitempty"`
}

// MenuData represents the data structure passed to the menu template
type MenuData struct {
	Region      string
	RegionLabel string
	GeneratedAt string
	Categories  []MenuCategory
}

// MenuCategory groups menu rows under a category heading
type MenuCategory struct {
	Name  string
	Items []MenuRow
}

// MenuRow is a single rendered menu line
type MenuRow struct {
	Name     string
	Price    string // already formatted, e.g. "$165.60"
	UnitNote string // "/kg" or "/pza"
	ImageURL string
}
