package domain

import "time"

// DomainEvent is the base interface for coupon domain events. It is
// structurally compatible with the outbox event contract.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// CouponCreatedEvent is emitted when a coupon is created.
type CouponCreatedEvent struct {
	CouponID     string    `json:"coupon_id"`
	Code         string    `json:"code"`
	DiscountType string    `json:"discount_type"`
	StartDate    time.Time `json:"start_date"`
	ExpiryDate   time.Time `json:"expiry_date"`
	CreatedAt    time.Time `json:"created_at"`
}

func (e *CouponCreatedEvent) EventType() string {
	return "coupon.created"
}

func (e *CouponCreatedEvent) AggregateID() string {
	return e.CouponID
}

// CouponAppliedEvent is emitted when a coupon is consumed by a
// successfully placed order.
type CouponAppliedEvent struct {
	CouponID  string    `json:"coupon_id"`
	Code      string    `json:"code"`
	UserID    string    `json:"user_id,omitempty"`
	OrderID   string    `json:"order_id"`
	UsedCount int64     `json:"used_count"`
	UsedAt    time.Time `json:"used_at"`
}

func (e *CouponAppliedEvent) EventType() string {
	return "coupon.applied"
}

func (e *CouponAppliedEvent) AggregateID() string {
	return e.CouponID
}
