package domain

import (
	"fmt"

	"github.com/gemforge/pricing-service/internal/pkg/money"
)

// Composition identifies a metal purity tier.
type Composition string

// Supported composition tiers.
const (
	Composition10K       Composition = "10K"
	Composition12K       Composition = "12K"
	Composition14K       Composition = "14K"
	Composition18K       Composition = "18K"
	Composition22K       Composition = "22K"
	Composition24K       Composition = "24K"
	CompositionSilver925 Composition = "925-silver"
	CompositionPlatinum  Composition = "platinum"
)

// Material identifies a metal color/finish within a composition.
type Material string

// Supported materials.
const (
	MaterialYellowGold Material = "yellow-gold"
	MaterialWhiteGold  Material = "white-gold"
	MaterialRoseGold   Material = "rose-gold"
	MaterialSilver     Material = "silver"
	MaterialPlatinum   Material = "platinum"
)

// DiamondType identifies the diamond option on a piece.
type DiamondType string

// Supported diamond types.
const (
	DiamondNatural  DiamondType = "natural"
	DiamondLabGrown DiamondType = "lab-grown"
	DiamondNone     DiamondType = "none"
)

// MaterialRate is a per-material price multiplier within a composition.
type MaterialRate struct {
	Material        Material
	PriceMultiplier float64
}

// CompositionRate holds the price per gram for one composition tier
// and the material multipliers that apply within it.
type CompositionRate struct {
	Composition   Composition
	PricePerGram  *money.Money
	MaterialRates []MaterialRate
	Enabled       bool
}

// MultiplierFor returns the price multiplier for the given material.
// An unmatched or empty material yields the neutral multiplier 1.0.
func (cr *CompositionRate) MultiplierFor(material Material) float64 {
	if material == "" {
		return 1.0
	}
	for _, mr := range cr.MaterialRates {
		if mr.Material == material {
			return mr.PriceMultiplier
		}
	}
	return 1.0
}

// DiamondRate prices one diamond type, either per carat or flat.
// Per-carat pricing takes precedence when both are set and the piece
// has a carat weight.
type DiamondRate struct {
	Type          DiamondType
	PricePerCarat *money.Money
	FixedPrice    *money.Money
	Enabled       bool
}

// RingSizeAdjustment is a signed percentage applied to the running
// total for a specific ring size.
type RingSizeAdjustment struct {
	Size                 string
	PercentageAdjustment float64
}

// AdditionalCosts holds labor, margin and the minimum-price floor.
type AdditionalCosts struct {
	LaborCost        *money.Money
	LaborCostPerGram *money.Money
	ProfitMarginPct  float64
	MinimumPrice     *money.Money
}

// TaxSettings controls the optional tax-inclusive price adjustment.
type TaxSettings struct {
	Enabled         bool
	Percentage      float64
	IncludedInPrice bool
}

// Config is the pricing configuration the calculator runs against.
// It is treated as an immutable snapshot for the duration of one
// calculation; mutation happens only through the admin use cases.
type Config struct {
	CompositionRates []CompositionRate
	DiamondRates     []DiamondRate
	SizeAdjustments  []RingSizeAdjustment
	AdditionalCosts  AdditionalCosts
	Tax              TaxSettings
}

// CompositionRate returns the enabled rate entry for a composition.
// Disabled entries are invisible to pricing.
func (c *Config) CompositionRate(composition Composition) (*CompositionRate, bool) {
	for i := range c.CompositionRates {
		if c.CompositionRates[i].Composition == composition && c.CompositionRates[i].Enabled {
			return &c.CompositionRates[i], true
		}
	}
	return nil, false
}

// DiamondRate returns the enabled rate entry for a diamond type.
func (c *Config) DiamondRate(diamondType DiamondType) (*DiamondRate, bool) {
	for i := range c.DiamondRates {
		if c.DiamondRates[i].Type == diamondType && c.DiamondRates[i].Enabled {
			return &c.DiamondRates[i], true
		}
	}
	return nil, false
}

// SizeAdjustment returns the percentage adjustment for a ring size,
// or false if the size has no entry.
func (c *Config) SizeAdjustment(size string) (float64, bool) {
	for _, sa := range c.SizeAdjustments {
		if sa.Size == size {
			return sa.PercentageAdjustment, true
		}
	}
	return 0, false
}

// Validate checks structural invariants: unique compositions,
// non-negative rates, and a profit margin within [0,100].
func (c *Config) Validate() error {
	seen := make(map[Composition]bool, len(c.CompositionRates))
	for _, cr := range c.CompositionRates {
		if cr.Composition == "" {
			return fmt.Errorf("composition rate with empty composition")
		}
		if seen[cr.Composition] {
			return fmt.Errorf("duplicate composition rate for %q", cr.Composition)
		}
		seen[cr.Composition] = true
		if cr.PricePerGram == nil || cr.PricePerGram.IsNegative() {
			return fmt.Errorf("composition %q: price per gram must be non-negative", cr.Composition)
		}
	}

	seenDiamond := make(map[DiamondType]bool, len(c.DiamondRates))
	for _, dr := range c.DiamondRates {
		if seenDiamond[dr.Type] {
			return fmt.Errorf("duplicate diamond rate for %q", dr.Type)
		}
		seenDiamond[dr.Type] = true
		if dr.PricePerCarat == nil || dr.PricePerCarat.IsNegative() {
			return fmt.Errorf("diamond %q: price per carat must be non-negative", dr.Type)
		}
		if dr.FixedPrice == nil || dr.FixedPrice.IsNegative() {
			return fmt.Errorf("diamond %q: fixed price must be non-negative", dr.Type)
		}
	}

	ac := c.AdditionalCosts
	if ac.LaborCost == nil || ac.LaborCost.IsNegative() {
		return fmt.Errorf("labor cost must be non-negative")
	}
	if ac.LaborCostPerGram == nil || ac.LaborCostPerGram.IsNegative() {
		return fmt.Errorf("labor cost per gram must be non-negative")
	}
	if ac.ProfitMarginPct < 0 || ac.ProfitMarginPct > 100 {
		return fmt.Errorf("profit margin must be between 0 and 100, got %v", ac.ProfitMarginPct)
	}
	if ac.MinimumPrice == nil || ac.MinimumPrice.IsNegative() {
		return fmt.Errorf("minimum price must be non-negative")
	}

	return nil
}

func mustMoney(numerator, denominator int64) *money.Money {
	m, err := money.New(numerator, denominator)
	if err != nil {
		panic(err)
	}
	return m
}

// DefaultConfig returns the documented default configuration used when
// no configuration row exists yet.
func DefaultConfig() *Config {
	return &Config{
		CompositionRates: []CompositionRate{
			{Composition: Composition10K, PricePerGram: mustMoney(25, 1), Enabled: true, MaterialRates: defaultGoldMaterials()},
			{Composition: Composition12K, PricePerGram: mustMoney(30, 1), Enabled: true, MaterialRates: defaultGoldMaterials()},
			{Composition: Composition14K, PricePerGram: mustMoney(35, 1), Enabled: true, MaterialRates: defaultGoldMaterials()},
			{Composition: Composition18K, PricePerGram: mustMoney(45, 1), Enabled: true, MaterialRates: defaultGoldMaterials()},
			{Composition: Composition22K, PricePerGram: mustMoney(55, 1), Enabled: true, MaterialRates: defaultGoldMaterials()},
			{Composition: Composition24K, PricePerGram: mustMoney(65, 1), Enabled: true, MaterialRates: defaultGoldMaterials()},
			{Composition: CompositionSilver925, PricePerGram: mustMoney(2, 1), Enabled: true, MaterialRates: []MaterialRate{
				{Material: MaterialSilver, PriceMultiplier: 1.0},
			}},
			{Composition: CompositionPlatinum, PricePerGram: mustMoney(60, 1), Enabled: true, MaterialRates: []MaterialRate{
				{Material: MaterialPlatinum, PriceMultiplier: 1.0},
			}},
		},
		DiamondRates: []DiamondRate{
			{Type: DiamondNatural, PricePerCarat: mustMoney(500, 1), FixedPrice: money.Zero(), Enabled: true},
			{Type: DiamondLabGrown, PricePerCarat: mustMoney(200, 1), FixedPrice: money.Zero(), Enabled: true},
			{Type: DiamondNone, PricePerCarat: money.Zero(), FixedPrice: money.Zero(), Enabled: true},
		},
		SizeAdjustments: []RingSizeAdjustment{},
		AdditionalCosts: AdditionalCosts{
			LaborCost:        mustMoney(50, 1),
			LaborCostPerGram: mustMoney(5, 1),
			ProfitMarginPct:  30,
			MinimumPrice:     mustMoney(100, 1),
		},
		Tax: TaxSettings{Enabled: false, Percentage: 0, IncludedInPrice: false},
	}
}

func defaultGoldMaterials() []MaterialRate {
	return []MaterialRate{
		{Material: MaterialYellowGold, PriceMultiplier: 1.0},
		{Material: MaterialWhiteGold, PriceMultiplier: 1.1},
		{Material: MaterialRoseGold, PriceMultiplier: 1.05},
	}
}
