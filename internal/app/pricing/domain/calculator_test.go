package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gemforge/pricing-service/internal/pkg/money"
)

// testConfig returns a small configuration with hand-checkable rates:
// 14K $35/g (white-gold x1.1), 18K disabled, natural diamonds $500/ct
// with a $100 fixed fallback, lab-grown fixed $150 only, ring size 7
// at +10% and size 4 at -50%, labor $50 + $5/g, margin 30%, floor $100.
func testConfig() *Config {
	return &Config{
		CompositionRates: []CompositionRate{
			{
				Composition:  Composition14K,
				PricePerGram: mustMoney(35, 1),
				MaterialRates: []MaterialRate{
					{Material: MaterialWhiteGold, PriceMultiplier: 1.1},
				},
				Enabled: true,
			},
			{Composition: Composition18K, PricePerGram: mustMoney(45, 1), Enabled: false},
		},
		DiamondRates: []DiamondRate{
			{Type: DiamondNatural, PricePerCarat: mustMoney(500, 1), FixedPrice: mustMoney(100, 1), Enabled: true},
			{Type: DiamondLabGrown, PricePerCarat: money.Zero(), FixedPrice: mustMoney(150, 1), Enabled: true},
			{Type: DiamondNone, PricePerCarat: money.Zero(), FixedPrice: money.Zero(), Enabled: true},
		},
		SizeAdjustments: []RingSizeAdjustment{
			{Size: "7", PercentageAdjustment: 10},
			{Size: "4", PercentageAdjustment: -50},
		},
		AdditionalCosts: AdditionalCosts{
			LaborCost:        mustMoney(50, 1),
			LaborCostPerGram: mustMoney(5, 1),
			ProfitMarginPct:  30,
			MinimumPrice:     mustMoney(100, 1),
		},
	}
}

func TestCalculator_CalculatePrice(t *testing.T) {
	calc := NewCalculator(testConfig())

	t.Run("base plus labor and margin", func(t *testing.T) {
		// 2*35=70, +50+10 labor = 130, *1.3 margin = 169
		price, err := calc.CalculatePrice(ProductSpec{Weight: 2, Composition: Composition14K})
		require.NoError(t, err)
		assert.Equal(t, "169.00", price.String())
	})

	t.Run("material multiplier applies before labor", func(t *testing.T) {
		// 5*35=175, *1.1=192.5, +50+25=267.5, *1.3=347.75
		price, err := calc.CalculatePrice(ProductSpec{
			Weight:      5,
			Composition: Composition14K,
			Material:    MaterialWhiteGold,
			DiamondType: DiamondNone,
		})
		require.NoError(t, err)
		assert.Equal(t, "347.75", price.String())
	})

	t.Run("default configuration matches documented scenario", func(t *testing.T) {
		price, err := NewCalculator(DefaultConfig()).CalculatePrice(ProductSpec{
			Weight:      5,
			Composition: Composition14K,
			Material:    MaterialWhiteGold,
		})
		require.NoError(t, err)
		assert.Equal(t, "347.75", price.String())
	})

	t.Run("unmatched material is ignored", func(t *testing.T) {
		plain, err := calc.CalculatePrice(ProductSpec{Weight: 2, Composition: Composition14K})
		require.NoError(t, err)
		withUnknown, err := calc.CalculatePrice(ProductSpec{Weight: 2, Composition: Composition14K, Material: MaterialRoseGold})
		require.NoError(t, err)
		assert.True(t, plain.Equals(withUnknown))
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		spec := ProductSpec{Weight: 3.7, Composition: Composition14K, Material: MaterialWhiteGold, RingSize: "7"}
		first, err := calc.CalculatePrice(spec)
		require.NoError(t, err)
		second, err := calc.CalculatePrice(spec)
		require.NoError(t, err)
		assert.True(t, first.Equals(second))
	})

	t.Run("increasing weight never decreases price", func(t *testing.T) {
		lighter, err := calc.CalculatePrice(ProductSpec{Weight: 5, Composition: Composition14K})
		require.NoError(t, err)
		heavier, err := calc.CalculatePrice(ProductSpec{Weight: 6, Composition: Composition14K})
		require.NoError(t, err)
		assert.False(t, heavier.LessThan(lighter))
	})
}

func TestCalculator_Preconditions(t *testing.T) {
	calc := NewCalculator(testConfig())

	t.Run("zero weight fails regardless of other fields", func(t *testing.T) {
		_, err := calc.CalculatePrice(ProductSpec{Weight: 0, Composition: Composition14K, Material: MaterialWhiteGold})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "weight", verr.Field)
	})

	t.Run("negative weight fails", func(t *testing.T) {
		_, err := calc.CalculatePrice(ProductSpec{Weight: -1, Composition: Composition14K})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "weight", verr.Field)
	})

	t.Run("missing composition fails", func(t *testing.T) {
		_, err := calc.CalculatePrice(ProductSpec{Weight: 2})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "composition", verr.Field)
	})

	t.Run("unknown composition is a configuration error", func(t *testing.T) {
		_, err := calc.CalculatePrice(ProductSpec{Weight: 2, Composition: "unknown-tier"})
		var cerr *ConfigurationError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, Composition("unknown-tier"), cerr.Composition)
	})

	t.Run("disabled composition fails even though present", func(t *testing.T) {
		_, err := calc.CalculatePrice(ProductSpec{Weight: 2, Composition: Composition18K})
		var cerr *ConfigurationError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, Composition18K, cerr.Composition)
	})
}

func TestCalculator_DiamondPricing(t *testing.T) {
	calc := NewCalculator(testConfig())

	t.Run("per-carat takes precedence over fixed price", func(t *testing.T) {
		// 70 + 500*0.5 + 60 = 380, *1.3 = 494
		price, err := calc.CalculatePrice(ProductSpec{
			Weight: 2, Composition: Composition14K,
			DiamondType: DiamondNatural, DiamondCarat: 0.5,
		})
		require.NoError(t, err)
		assert.Equal(t, "494.00", price.String())
	})

	t.Run("fixed price used when carat is zero", func(t *testing.T) {
		// 70 + 100 + 60 = 230, *1.3 = 299
		price, err := calc.CalculatePrice(ProductSpec{
			Weight: 2, Composition: Composition14K,
			DiamondType: DiamondNatural, DiamondCarat: 0,
		})
		require.NoError(t, err)
		assert.Equal(t, "299.00", price.String())
	})

	t.Run("fixed-only rate ignores carat weight", func(t *testing.T) {
		// 70 + 150 + 60 = 280, *1.3 = 364
		price, err := calc.CalculatePrice(ProductSpec{
			Weight: 2, Composition: Composition14K,
			DiamondType: DiamondLabGrown, DiamondCarat: 1,
		})
		require.NoError(t, err)
		assert.Equal(t, "364.00", price.String())
	})

	t.Run("type none contributes nothing", func(t *testing.T) {
		with, err := calc.CalculatePrice(ProductSpec{Weight: 2, Composition: Composition14K, DiamondType: DiamondNone, DiamondCarat: 2})
		require.NoError(t, err)
		without, err := calc.CalculatePrice(ProductSpec{Weight: 2, Composition: Composition14K})
		require.NoError(t, err)
		assert.True(t, with.Equals(without))
	})

	t.Run("unconfigured type contributes nothing", func(t *testing.T) {
		price, err := calc.CalculatePrice(ProductSpec{Weight: 2, Composition: Composition14K, DiamondType: "moissanite", DiamondCarat: 1})
		require.NoError(t, err)
		assert.Equal(t, "169.00", price.String())
	})
}

func TestCalculator_RingSizeAdjustment(t *testing.T) {
	calc := NewCalculator(testConfig())

	t.Run("positive adjustment applies before margin", func(t *testing.T) {
		// 130 *1.1 = 143, *1.3 = 185.9
		price, err := calc.CalculatePrice(ProductSpec{Weight: 2, Composition: Composition14K, RingSize: "7"})
		require.NoError(t, err)
		assert.Equal(t, "185.90", price.String())
	})

	t.Run("negative adjustment can drop below subtotal but floor wins", func(t *testing.T) {
		// 130 *0.5 = 65, *1.3 = 84.5, floored to 100
		price, err := calc.CalculatePrice(ProductSpec{Weight: 2, Composition: Composition14K, RingSize: "4"})
		require.NoError(t, err)
		assert.Equal(t, "100.00", price.String())
	})

	t.Run("unknown size has no effect", func(t *testing.T) {
		price, err := calc.CalculatePrice(ProductSpec{Weight: 2, Composition: Composition14K, RingSize: "11"})
		require.NoError(t, err)
		assert.Equal(t, "169.00", price.String())
	})

	t.Run("adjustment below -100 with no floor clamps at zero", func(t *testing.T) {
		cfg := testConfig()
		cfg.SizeAdjustments = []RingSizeAdjustment{{Size: "2", PercentageAdjustment: -150}}
		cfg.AdditionalCosts.MinimumPrice = money.Zero()
		require.NoError(t, cfg.Validate())

		price, err := NewCalculator(cfg).CalculatePrice(ProductSpec{Weight: 2, Composition: Composition14K, RingSize: "2"})
		require.NoError(t, err)
		assert.False(t, price.IsNegative())
		assert.Equal(t, "0.00", price.String())
	})
}

func TestCalculator_TaxInclusivePricing(t *testing.T) {
	newCalcWithTax := func(tax TaxSettings) *Calculator {
		cfg := testConfig()
		cfg.Tax = tax
		return NewCalculator(cfg)
	}

	t.Run("applied when enabled and included", func(t *testing.T) {
		calc := newCalcWithTax(TaxSettings{Enabled: true, Percentage: 5, IncludedInPrice: true})
		// 169 * 1.05 = 177.45
		price, err := calc.CalculatePrice(ProductSpec{Weight: 2, Composition: Composition14K})
		require.NoError(t, err)
		assert.Equal(t, "177.45", price.String())
	})

	t.Run("skipped when not included in price", func(t *testing.T) {
		calc := newCalcWithTax(TaxSettings{Enabled: true, Percentage: 5, IncludedInPrice: false})
		price, err := calc.CalculatePrice(ProductSpec{Weight: 2, Composition: Composition14K})
		require.NoError(t, err)
		assert.Equal(t, "169.00", price.String())
	})

	t.Run("skipped when disabled", func(t *testing.T) {
		calc := newCalcWithTax(TaxSettings{Enabled: false, Percentage: 5, IncludedInPrice: true})
		price, err := calc.CalculatePrice(ProductSpec{Weight: 2, Composition: Composition14K})
		require.NoError(t, err)
		assert.Equal(t, "169.00", price.String())
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("default configuration is valid", func(t *testing.T) {
		assert.NoError(t, DefaultConfig().Validate())
	})

	t.Run("duplicate composition rejected", func(t *testing.T) {
		cfg := testConfig()
		cfg.CompositionRates = append(cfg.CompositionRates, CompositionRate{
			Composition: Composition14K, PricePerGram: mustMoney(40, 1), Enabled: true,
		})
		assert.Error(t, cfg.Validate())
	})

	t.Run("margin above 100 rejected", func(t *testing.T) {
		cfg := testConfig()
		cfg.AdditionalCosts.ProfitMarginPct = 150
		assert.Error(t, cfg.Validate())
	})
}
