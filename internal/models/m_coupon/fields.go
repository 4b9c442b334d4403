package m_coupon

// Field name constants for the coupons table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "coupons"

	CouponID                 = "coupon_id"
	Code                     = "code"
	DiscountType             = "discount_type"
	DiscountValueNumerator   = "discount_value_numerator"
	DiscountValueDenominator = "discount_value_denominator"
	DiscountPercent          = "discount_percent"
	MaxDiscountNumerator     = "max_discount_numerator"
	MaxDiscountDenominator   = "max_discount_denominator"
	MinOrderNumerator        = "min_order_numerator"
	MinOrderDenominator      = "min_order_denominator"
	UsageLimit               = "usage_limit"
	UsageLimitPerUser        = "usage_limit_per_user"
	UsedCount                = "used_count"
	StartDate                = "start_date"
	ExpiryDate               = "expiry_date"
	ApplicableProducts       = "applicable_products"
	ExcludedProducts         = "excluded_products"
	FirstTimeOnly            = "first_time_only"
	Active                   = "active"
	CreatedAt                = "created_at"
	UpdatedAt                = "updated_at"
)
