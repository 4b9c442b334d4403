package m_coupon_usage

import (
	"time"
)

// Data represents the database model for the coupon_usages table.
// One row is written per redemption; UserID is empty for guest checkouts.
type Data struct {
	UsageID  string    `spanner:"usage_id"`
	CouponID string    `spanner:"coupon_id"`
	UserID   string    `spanner:"user_id"`
	OrderID  string    `spanner:"order_id"`
	UsedAt   time.Time `spanner:"used_at"`
}
