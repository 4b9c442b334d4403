package m_coupon

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the coupons table.
// Money values are stored as exact numerator/denominator pairs; the
// discount columns are populated according to the discount type
// (percentage uses DiscountPercent and the optional cap, fixed uses the
// value pair, free shipping uses neither).
type Data struct {
	CouponID                 string              `spanner:"coupon_id"`
	Code                     string              `spanner:"code"`
	DiscountType             string              `spanner:"discount_type"`
	DiscountValueNumerator   spanner.NullInt64   `spanner:"discount_value_numerator"`
	DiscountValueDenominator spanner.NullInt64   `spanner:"discount_value_denominator"`
	DiscountPercent          spanner.NullFloat64 `spanner:"discount_percent"`
	MaxDiscountNumerator     spanner.NullInt64   `spanner:"max_discount_numerator"`
	MaxDiscountDenominator   spanner.NullInt64   `spanner:"max_discount_denominator"`
	MinOrderNumerator        spanner.NullInt64   `spanner:"min_order_numerator"`
	MinOrderDenominator      spanner.NullInt64   `spanner:"min_order_denominator"`
	UsageLimit               spanner.NullInt64   `spanner:"usage_limit"`
	UsageLimitPerUser        int64               `spanner:"usage_limit_per_user"`
	UsedCount                int64               `spanner:"used_count"`
	StartDate                time.Time           `spanner:"start_date"`
	ExpiryDate               time.Time           `spanner:"expiry_date"`
	ApplicableProducts       []string            `spanner:"applicable_products"`
	ExcludedProducts         []string            `spanner:"excluded_products"`
	FirstTimeOnly            bool                `spanner:"first_time_only"`
	Active                   bool                `spanner:"active"`
	CreatedAt                time.Time           `spanner:"created_at"`
	UpdatedAt                time.Time           `spanner:"updated_at"`
}
