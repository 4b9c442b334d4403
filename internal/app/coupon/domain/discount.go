package domain

import (
	"github.com/gemforge/pricing-service/internal/pkg/money"
)

// DiscountType tags the discount rule variants.
type DiscountType string

// Supported discount types.
const (
	DiscountPercentage   DiscountType = "percentage"
	DiscountFixed        DiscountType = "fixed"
	DiscountFreeShipping DiscountType = "free_shipping"
)

// DiscountRule is a sealed union of the three discount variants.
// Sealing forces every variant to live in this package, so Amount is
// exhaustive by construction instead of relying on a switch-default.
type DiscountRule interface {
	// Type returns the variant tag for storage and transport.
	Type() DiscountType

	// Amount computes the discount for an order subtotal and shipping
	// cost, rounded to two decimal places.
	Amount(orderAmount, shippingCost *money.Money) *money.Money

	sealed()
}

// PercentageDiscount takes a percentage off the order subtotal,
// optionally capped at MaxDiscount.
type PercentageDiscount struct {
	Percent     float64
	MaxDiscount *money.Money // nil means uncapped
}

func (d PercentageDiscount) Type() DiscountType { return DiscountPercentage }

func (d PercentageDiscount) Amount(orderAmount, shippingCost *money.Money) *money.Money {
	raw := orderAmount.MultiplyFloat(d.Percent / 100)
	if d.MaxDiscount != nil && raw.GreaterThan(d.MaxDiscount) {
		raw = d.MaxDiscount.Copy()
	}
	return raw.Round2()
}

func (d PercentageDiscount) sealed() {}

// FixedDiscount takes a flat amount off the order subtotal, capped at
// the subtotal so the post-discount total cannot go negative.
type FixedDiscount struct {
	Value *money.Money
}

func (d FixedDiscount) Type() DiscountType { return DiscountFixed }

func (d FixedDiscount) Amount(orderAmount, shippingCost *money.Money) *money.Money {
	value := d.Value
	if value.GreaterThan(orderAmount) {
		value = orderAmount
	}
	return value.Round2()
}

func (d FixedDiscount) sealed() {}

// FreeShippingDiscount refunds whatever shipping cost the caller
// computed; this engine never computes shipping itself.
type FreeShippingDiscount struct{}

func (d FreeShippingDiscount) Type() DiscountType { return DiscountFreeShipping }

func (d FreeShippingDiscount) Amount(orderAmount, shippingCost *money.Money) *money.Money {
	return shippingCost.Round2()
}

func (d FreeShippingDiscount) sealed() {}

// ParseDiscountRule builds a DiscountRule from its stored or submitted
// representation. Value bounds (non-negative, percentage at most 100)
// are enforced here at the boundary, not inside Amount.
func ParseDiscountRule(discountType DiscountType, value *money.Money, percent float64, maxDiscount *money.Money) (DiscountRule, error) {
	switch discountType {
	case DiscountPercentage:
		if percent < 0 {
			return nil, ErrNegativeDiscountValue
		}
		if percent > 100 {
			return nil, ErrPercentAboveHundred
		}
		return PercentageDiscount{Percent: percent, MaxDiscount: maxDiscount}, nil

	case DiscountFixed:
		if value == nil || value.IsNegative() {
			return nil, ErrNegativeDiscountValue
		}
		return FixedDiscount{Value: value.Copy()}, nil

	case DiscountFreeShipping:
		return FreeShippingDiscount{}, nil

	default:
		return nil, ErrInvalidDiscountType
	}
}
