package pricing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carnes-boutique/models"
)

func newDefaultEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig())
	require.NoError(t, err)
	return e
}

func TestComputeRegionalPrices(t *testing.T) {
	e := newDefaultEngine(t)

	tests := []struct {
		name      string
		wholesale float64
		want      models.RegionalPrices
	}{
		{"round numbers", 100, models.RegionalPrices{RegionA: 120.00, RegionB: 130.00}},
		{"rounds up at the cent", 133.333, models.RegionalPrices{RegionA: 160.00, RegionB: 173.33}},
		{"costilla baby back", 138, models.RegionalPrices{RegionA: 165.60, RegionB: 179.40}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.ComputeRegionalPrices(tt.wholesale))
		})
	}
}

func TestComputeRegionalPricesRoundsHalfAwayFromZero(t *testing.T) {
	e, err := NewEngine(PricingConfig{Multipliers: map[string]float64{"flat": 1}})
	require.NoError(t, err)

	assert.Equal(t, 10.13, e.ComputeRegionalPrices(10.125)["flat"])
	assert.Equal(t, 10.14, e.ComputeRegionalPrices(10.135)["flat"])
	assert.Equal(t, 10.12, e.ComputeRegionalPrices(10.1249)["flat"])
}

func TestComputeRegionalPricesLegacyMultipliers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Multipliers = LegacyMultipliers()
	e, err := NewEngine(cfg)
	require.NoError(t, err)

	got := e.ComputeRegionalPrices(100)
	assert.Equal(t, 115.00, got[RegionA])
	assert.Equal(t, 120.00, got[RegionB])
}

func TestValidateCatalogItem(t *testing.T) {
	e := newDefaultEngine(t)

	item := models.CatalogItem{
		ID:   "res--arrachera",
		Name: "Arrachera",
		Unit: models.UnitWeight,
		RegionalPrice: models.RegionalPrices{
			"low":   5,
			"high":  2000.01,
			"ok":    500,
			"floor": 10,
			"top":   2000,
		},
	}

	once := e.ValidateCatalogItem(item)

	assert.Equal(t, models.RegionalPrices{"ok": 500, "floor": 10, "top": 2000}, once.RegionalPrice)
	require.Len(t, once.Annotations, 2)
	assert.Equal(t, "high", once.Annotations[0].Region)
	assert.Equal(t, 2000.01, once.Annotations[0].Value)
	assert.Equal(t, "low", once.Annotations[1].Region)
	assert.Equal(t, 5.0, once.Annotations[1].Value)
	for _, a := range once.Annotations {
		assert.Equal(t, models.AnnotationPriceOutOfBand, a.Code)
		assert.Equal(t, models.UnitWeight, a.Unit)
		assert.NotEmpty(t, a.Reason)
	}

	// input untouched
	assert.Len(t, item.RegionalPrice, 5)
	assert.Empty(t, item.Annotations)

	twice := e.ValidateCatalogItem(once)
	assert.Equal(t, once, twice)
}

func TestBuildCatalogItem(t *testing.T) {
	e := newDefaultEngine(t)

	t.Run("priced in both regions", func(t *testing.T) {
		item := e.BuildCatalogItem(models.RawPriceRecord{
			Category: "Res", ProductName: "Costilla Baby Back", WholesalePrice: 138, Unit: models.UnitWeight,
		})
		assert.Equal(t, "res--costilla-baby-back", item.ID)
		assert.Equal(t, models.RegionalPrices{RegionA: 165.60, RegionB: 179.40}, item.RegionalPrice)
		assert.Empty(t, item.Annotations)
	})

	t.Run("wildly wrong wholesale is hidden in one region only", func(t *testing.T) {
		// 1600 * 1.20 = 1920 stays, 1600 * 1.30 = 2080 is hidden
		item := e.BuildCatalogItem(models.RawPriceRecord{
			Category: "Wagyu", ProductName: "Ribeye A5", WholesalePrice: 1600, Unit: models.UnitWeight,
		})
		assert.Equal(t, models.RegionalPrices{RegionA: 1920}, item.RegionalPrice)
		require.Len(t, item.Annotations, 1)
		assert.Equal(t, RegionB, item.Annotations[0].Region)
	})
}

func TestNewEngineValidation(t *testing.T) {
	_, err := NewEngine(PricingConfig{Currency: "USD", Multipliers: map[string]float64{RegionA: 1.2}})
	assert.Error(t, err)

	_, err = NewEngine(PricingConfig{})
	assert.Error(t, err)

	_, err = NewEngine(PricingConfig{Multipliers: map[string]float64{RegionA: -1}})
	assert.Error(t, err)

	_, err = NewEngine(PricingConfig{Multipliers: map[string]float64{RegionA: 1.2}, Band: Band{Floor: 50, Ceiling: 10}})
	assert.Error(t, err)

	e, err := NewEngine(PricingConfig{Multipliers: map[string]float64{RegionA: 1.2}})
	require.NoError(t, err)
	assert.Equal(t, Band{Floor: DefaultFloor, Ceiling: DefaultCeiling}, e.Config().Band)
	assert.Equal(t, "MXN", e.Config().Currency)
}

func TestLoadEngine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pricing.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"currency": "MXN",
		"multipliers": {"norte": 1.25, "sur": 1.35},
		"band": {"floor": 20, "ceiling": 1500}
	}`), 0644))

	e, err := LoadEngine(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"norte", "sur"}, e.Regions())
	assert.Equal(t, models.RegionalPrices{"norte": 125, "sur": 135}, e.ComputeRegionalPrices(100))
	assert.Same(t, e, GetEngine())
	assert.Equal(t, "sur", e.RegionLabel("sur"))

	_, err = LoadEngine(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestConfigIsCopied(t *testing.T) {
	cfg := DefaultConfig()
	e, err := NewEngine(cfg)
	require.NoError(t, err)

	cfg.Multipliers[RegionA] = 9
	e.Config().Multipliers[RegionA] = 9
	assert.Equal(t, 120.0, e.ComputeRegionalPrices(100)[RegionA])
}
