package pricing

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"carnes-boutique/logger"
	"carnes-boutique/models"
	"carnes-boutique/utils"
)

// Region keys used by the shipped configuration
const (
	RegionA = "regionA"
	RegionB = "regionB"
)

// Default sanity band in pesos
const (
	DefaultFloor   = 10.0
	DefaultCeiling = 2000.0
)

// PricingConfig represents the pricing configuration structure
type PricingConfig struct {
	Currency     string             `json:"currency"`
	Multipliers  map[string]float64 `json:"multipliers"`
	RegionLabels map[string]string  `json:"regionLabels,omitempty"`
	Band         Band               `json:"band"`
}

// Band is the [Floor, Ceiling] range a retail price must fall in to be shown
type Band struct {
	Floor   float64 `json:"floor"`
	Ceiling float64 `json:"ceiling"`
}

// DefaultConfig returns the current markups: +20% for regionA, +30% for regionB.
func DefaultConfig() PricingConfig {
	return PricingConfig{
		Currency: "MXN",
		Multipliers: map[string]float64{
			RegionA: 1.20,
			RegionB: 1.30,
		},
		RegionLabels: map[string]string{
			RegionA: "Zona A",
			RegionB: "Zona B",
		},
		Band: Band{Floor: DefaultFloor, Ceiling: DefaultCeiling},
	}
}

// LegacyMultipliers returns the earlier 1.15/1.20 markup pair.
func LegacyMultipliers() map[string]float64 {
	return map[string]float64{
		RegionA: 1.15,
		RegionB: 1.20,
	}
}

// Engine computes regional retail prices from wholesale cost.
// It holds only immutable configuration and is safe for concurrent use.
type Engine struct {
	config  PricingConfig
	regions []string // sorted region keys
}

var (
	engineInstance *Engine
	engineMu       sync.RWMutex
)

// NewEngine creates a pricing engine from an in-memory configuration
func NewEngine(config PricingConfig) (*Engine, error) {
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid pricing config: %w", err)
	}

	// Copy maps so callers cannot mutate the engine afterwards
	multipliers := make(map[string]float64, len(config.Multipliers))
	regions := make([]string, 0, len(config.Multipliers))
	for region, m := range config.Multipliers {
		multipliers[region] = m
		regions = append(regions, region)
	}
	sort.Strings(regions)
	labels := make(map[string]string, len(config.RegionLabels))
	for region, label := range config.RegionLabels {
		labels[region] = label
	}
	config.Multipliers = multipliers
	config.RegionLabels = labels

	return &Engine{config: config, regions: regions}, nil
}

// LoadEngine reads a JSON pricing config and installs it as the process engine.
// An empty path installs DefaultConfig.
func LoadEngine(configPath string) (*Engine, error) {
	config := DefaultConfig()

	if configPath != "" {
		// Resolve config path
		if !filepath.IsAbs(configPath) {
			wd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get working directory: %w", err)
			}
			configPath = filepath.Join(wd, configPath)
		}

		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read pricing config: %w", err)
		}

		config = PricingConfig{}
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse pricing config: %w", err)
		}
	}

	engine, err := NewEngine(config)
	if err != nil {
		return nil, err
	}

	engineMu.Lock()
	engineInstance = engine
	engineMu.Unlock()

	logger.Log.Info("✅ PricingEngine: pricing config loaded",
		zap.String("path", configPath),
		zap.Any("multipliers", engine.config.Multipliers),
		zap.Float64("floor", engine.config.Band.Floor),
		zap.Float64("ceiling", engine.config.Band.Ceiling),
	)
	return engine, nil
}

// GetEngine returns the process pricing engine, falling back to DefaultConfig
func GetEngine() *Engine {
	engineMu.RLock()
	e := engineInstance
	engineMu.RUnlock()
	if e != nil {
		return e
	}
	e, _ = NewEngine(DefaultConfig())
	return e
}

func validateConfig(config *PricingConfig) error {
	if config.Currency == "" {
		config.Currency = "MXN"
	}
	if config.Currency != "MXN" {
		return fmt.Errorf("unsupported currency %q: only MXN is supported", config.Currency)
	}
	if len(config.Multipliers) == 0 {
		return fmt.Errorf("multipliers are required")
	}
	for region, m := range config.Multipliers {
		if region == "" {
			return fmt.Errorf("region key must not be empty")
		}
		if m <= 0 {
			return fmt.Errorf("multiplier for %s must be positive, got %v", region, m)
		}
	}
	if config.Band.Floor == 0 && config.Band.Ceiling == 0 {
		config.Band = Band{Floor: DefaultFloor, Ceiling: DefaultCeiling}
	}
	if config.Band.Floor < 0 || config.Band.Ceiling <= config.Band.Floor {
		return fmt.Errorf("invalid band [%v, %v]", config.Band.Floor, config.Band.Ceiling)
	}
	return nil
}

// Config returns a copy of the engine configuration
func (e *Engine) Config() PricingConfig {
	c := e.config
	c.Multipliers = make(map[string]float64, len(e.config.Multipliers))
	for k, v := range e.config.Multipliers {
		c.Multipliers[k] = v
	}
	c.RegionLabels = make(map[string]string, len(e.config.RegionLabels))
	for k, v := range e.config.RegionLabels {
		c.RegionLabels[k] = v
	}
	return c
}

// Regions returns the configured region keys in sorted order
func (e *Engine) Regions() []string {
	return append([]string(nil), e.regions...)
}

// HasRegion reports whether a region is configured
func (e *Engine) HasRegion(region string) bool {
	_, ok := e.config.Multipliers[region]
	return ok
}

// RegionLabel returns the display name of a region, or the key itself
func (e *Engine) RegionLabel(region string) string {
	if label, ok := e.config.RegionLabels[region]; ok && label != "" {
		return label
	}
	return region
}

// ComputeRegionalPrices multiplies the wholesale price by each region's
// multiplier and rounds to cents, half away from zero.
func (e *Engine) ComputeRegionalPrices(wholesalePrice float64) models.RegionalPrices {
	prices := make(models.RegionalPrices, len(e.regions))
	w := decimal.NewFromFloat(wholesalePrice)
	for _, region := range e.regions {
		m := decimal.NewFromFloat(e.config.Multipliers[region])
		prices[region], _ = w.Mul(m).Round(2).Float64()
	}
	return prices
}

// ValidateCatalogItem returns a copy of item with every regional price outside
// the sanity band removed and annotated. Running it twice changes nothing more.
func (e *Engine) ValidateCatalogItem(item models.CatalogItem) models.CatalogItem {
	out := item
	out.RegionalPrice = make(models.RegionalPrices, len(item.RegionalPrice))
	for region, price := range item.RegionalPrice {
		out.RegionalPrice[region] = price
	}
	out.Annotations = append([]models.PriceAnnotation(nil), item.Annotations...)

	regions := make([]string, 0, len(out.RegionalPrice))
	for region := range out.RegionalPrice {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	band := e.config.Band
	for _, region := range regions {
		price := out.RegionalPrice[region]
		if price >= band.Floor && price <= band.Ceiling {
			continue
		}
		delete(out.RegionalPrice, region)
		out.Annotations = append(out.Annotations, models.PriceAnnotation{
			Code:    models.AnnotationPriceOutOfBand,
			Region:  region,
			Unit:    out.Unit,
			Value:   price,
			Floor:   band.Floor,
			Ceiling: band.Ceiling,
			Reason:  fmt.Sprintf("%s price %.2f outside [%.2f, %.2f]", region, price, band.Floor, band.Ceiling),
		})
	}
	return out
}

// BuildCatalogItem turns a parsed price record into a priced, validated catalog item
func (e *Engine) BuildCatalogItem(rec models.RawPriceRecord) models.CatalogItem {
	item := models.CatalogItem{
		ID:             utils.CatalogItemID(rec.Category, rec.ProductName),
		Name:           rec.ProductName,
		Category:       rec.Category,
		Unit:           rec.Unit,
		WholesalePrice: rec.WholesalePrice,
		RegionalPrice:  e.ComputeRegionalPrices(rec.WholesalePrice),
	}
	return e.ValidateCatalogItem(item)
}
