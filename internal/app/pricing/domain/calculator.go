package domain

import (
	"math"
	"math/big"

	"github.com/gemforge/pricing-service/internal/pkg/money"
)

// Calculator computes jewelry prices against a configuration snapshot.
// It is pure: no I/O, no hidden state, safe for concurrent use as long
// as the configuration is not mutated mid-calculation.
type Calculator struct {
	config *Config
}

// NewCalculator creates a Calculator over the given configuration.
func NewCalculator(config *Config) *Calculator {
	return &Calculator{config: config}
}

// Config returns the configuration the calculator runs against.
func (c *Calculator) Config() *Config {
	return c.config
}

// CalculatePrice computes the price of one piece. The stages run in a
// fixed order, each operating on the running total of the previous one:
//
//	base (weight x rate) -> material multiplier -> diamond addition ->
//	labor -> ring-size percentage -> profit margin -> minimum floor ->
//	tax-inclusive adjustment -> round to 2 decimals
//
// Reordering the stages changes results; the ring-size percentage in
// particular is computed over base+material+diamond+labor, before
// margin and the minimum floor.
func (c *Calculator) CalculatePrice(spec ProductSpec) (*money.Money, error) {
	if math.IsNaN(spec.Weight) || spec.Weight <= 0 {
		return nil, NewValidationError("weight", "must be greater than zero")
	}
	if spec.Composition == "" {
		return nil, NewValidationError("composition", "is required")
	}

	rate, ok := c.config.CompositionRate(spec.Composition)
	if !ok {
		return nil, &ConfigurationError{Composition: spec.Composition}
	}

	weight := new(big.Rat).SetFloat64(spec.Weight)

	// Stage 1: base price.
	total := rate.PricePerGram.MultiplyRat(weight)

	// Stage 2: material multiplier. Unmatched material multiplies by 1.
	total = total.MultiplyFloat(rate.MultiplierFor(spec.Material))

	// Stage 3: diamond addition (additive, not multiplicative).
	total = total.Add(c.diamondCost(spec))

	// Stage 4: labor, flat then per-gram.
	costs := c.config.AdditionalCosts
	if costs.LaborCost.IsPositive() {
		total = total.Add(costs.LaborCost)
	}
	if costs.LaborCostPerGram.IsPositive() {
		total = total.Add(costs.LaborCostPerGram.MultiplyRat(weight))
	}

	// Stage 5: ring-size percentage on the running total. The
	// percentage can be negative and pull the total down.
	if spec.RingSize != "" {
		if pct, found := c.config.SizeAdjustment(spec.RingSize); found && pct != 0 {
			total = total.Add(total.MultiplyFloat(pct / 100))
		}
	}

	// Stage 6: profit margin.
	if costs.ProfitMarginPct > 0 {
		total = total.MultiplyFloat(1 + costs.ProfitMarginPct/100)
	}

	// Stage 7: minimum-price floor. Applied after the ring-size
	// adjustment, so a negative adjustment can be overridden here.
	if costs.MinimumPrice.IsPositive() {
		total = total.Max(costs.MinimumPrice)
	}

	// Stage 8: tax-inclusive adjustment.
	tax := c.config.Tax
	if tax.Enabled && tax.IncludedInPrice && tax.Percentage > 0 {
		total = total.MultiplyFloat(1 + tax.Percentage/100)
	}

	// A size adjustment below -100% with no minimum floor would leave
	// the total negative. Prices never go below zero.
	if total.IsNegative() {
		total = money.Zero()
	}

	return total.Round2(), nil
}

// diamondCost returns the additive diamond contribution. Per-carat
// pricing takes precedence over the fixed price when the piece has a
// carat weight; a missing or disabled rate entry contributes nothing,
// as does an entry with both pricing fields at zero.
func (c *Calculator) diamondCost(spec ProductSpec) *money.Money {
	if spec.DiamondType == "" || spec.DiamondType == DiamondNone {
		return money.Zero()
	}

	rate, ok := c.config.DiamondRate(spec.DiamondType)
	if !ok {
		return money.Zero()
	}

	if rate.PricePerCarat.IsPositive() && spec.DiamondCarat > 0 {
		return rate.PricePerCarat.MultiplyRat(new(big.Rat).SetFloat64(spec.DiamondCarat))
	}
	if rate.FixedPrice.IsPositive() {
		return rate.FixedPrice.Copy()
	}
	return money.Zero()
}
