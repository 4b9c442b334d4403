package m_coupon_usage

// Field name constants for the coupon_usages table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "coupon_usages"

	UsageID  = "usage_id"
	CouponID = "coupon_id"
	UserID   = "user_id"
	OrderID  = "order_id"
	UsedAt   = "used_at"
)
