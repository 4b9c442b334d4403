package domain

import (
	"strings"
	"time"
	"unicode"

	"github.com/gemforge/pricing-service/internal/pkg/money"
)

// Field names for change tracking.
const (
	FieldUsedCount = "used_count"
	FieldActive    = "active"
)

// Usage is one entry in the append-only usage audit log.
type Usage struct {
	UserID  string
	OrderID string
	UsedAt  time.Time
}

// Coupon is the aggregate root for coupon evaluation. Validation and
// discount calculation never mutate it; RecordUsage is the single
// mutating operation.
type Coupon struct {
	id                 string
	code               string
	rule               DiscountRule
	minOrderAmount     *money.Money
	usageLimit         *int64 // nil means unlimited
	usageLimitPerUser  int64
	usedCount          int64
	usedBy             []Usage
	startDate          time.Time
	expiryDate         time.Time
	applicableProducts []string
	excludedProducts   []string
	firstTimeOnly      bool
	active             bool
	createdAt          time.Time
	updatedAt          time.Time

	changes *ChangeTracker
	events  []DomainEvent
}

// Params carries the inputs for creating a new coupon.
type Params struct {
	ID                 string
	Code               string
	Rule               DiscountRule
	MinOrderAmount     *money.Money
	UsageLimit         *int64
	UsageLimitPerUser  int64
	StartDate          time.Time
	ExpiryDate         time.Time
	ApplicableProducts []string
	ExcludedProducts   []string
	FirstTimeOnly      bool
}

// NormalizeCode strips all whitespace from a coupon code and upcases
// it. Lookups and storage both use the normalized form.
func NormalizeCode(code string) string {
	var b strings.Builder
	for _, r := range code {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// NewCoupon creates a coupon aggregate with validation.
func NewCoupon(p Params, now time.Time) (*Coupon, error) {
	code := NormalizeCode(p.Code)
	if code == "" {
		return nil, ErrEmptyCode
	}
	if p.Rule == nil {
		return nil, ErrInvalidDiscountType
	}
	if !p.ExpiryDate.After(p.StartDate) {
		return nil, ErrInvalidValidityWindow
	}

	minOrder := p.MinOrderAmount
	if minOrder == nil {
		minOrder = money.Zero()
	}

	perUser := p.UsageLimitPerUser
	if perUser <= 0 {
		perUser = 1
	}

	c := &Coupon{
		id:                 p.ID,
		code:               code,
		rule:               p.Rule,
		minOrderAmount:     minOrder,
		usageLimit:         p.UsageLimit,
		usageLimitPerUser:  perUser,
		startDate:          p.StartDate,
		expiryDate:         p.ExpiryDate,
		applicableProducts: p.ApplicableProducts,
		excludedProducts:   p.ExcludedProducts,
		firstTimeOnly:      p.FirstTimeOnly,
		active:             true,
		createdAt:          now,
		updatedAt:          now,
		changes:            NewChangeTracker(),
		events:             make([]DomainEvent, 0),
	}

	c.recordEvent(&CouponCreatedEvent{
		CouponID:     c.id,
		Code:         c.code,
		DiscountType: string(c.rule.Type()),
		StartDate:    c.startDate,
		ExpiryDate:   c.expiryDate,
		CreatedAt:    now,
	})

	return c, nil
}

// ReconstructCoupon reconstitutes a coupon loaded from storage.
func ReconstructCoupon(
	id, code string,
	rule DiscountRule,
	minOrderAmount *money.Money,
	usageLimit *int64,
	usageLimitPerUser int64,
	usedCount int64,
	usedBy []Usage,
	startDate, expiryDate time.Time,
	applicableProducts, excludedProducts []string,
	firstTimeOnly, active bool,
	createdAt, updatedAt time.Time,
) *Coupon {
	return &Coupon{
		id:                 id,
		code:               code,
		rule:               rule,
		minOrderAmount:     minOrderAmount,
		usageLimit:         usageLimit,
		usageLimitPerUser:  usageLimitPerUser,
		usedCount:          usedCount,
		usedBy:             usedBy,
		startDate:          startDate,
		expiryDate:         expiryDate,
		applicableProducts: applicableProducts,
		excludedProducts:   excludedProducts,
		firstTimeOnly:      firstTimeOnly,
		active:             active,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
		changes:            NewChangeTracker(),
		events:             make([]DomainEvent, 0),
	}
}

// Getters
func (c *Coupon) ID() string                    { return c.id }
func (c *Coupon) Code() string                  { return c.code }
func (c *Coupon) Rule() DiscountRule            { return c.rule }
func (c *Coupon) MinOrderAmount() *money.Money  { return c.minOrderAmount.Copy() }
func (c *Coupon) UsageLimit() *int64            { return c.usageLimit }
func (c *Coupon) UsageLimitPerUser() int64      { return c.usageLimitPerUser }
func (c *Coupon) UsedCount() int64              { return c.usedCount }
func (c *Coupon) UsedBy() []Usage               { return c.usedBy }
func (c *Coupon) StartDate() time.Time          { return c.startDate }
func (c *Coupon) ExpiryDate() time.Time         { return c.expiryDate }
func (c *Coupon) ApplicableProducts() []string  { return c.applicableProducts }
func (c *Coupon) ExcludedProducts() []string    { return c.excludedProducts }
func (c *Coupon) FirstTimeOnly() bool           { return c.firstTimeOnly }
func (c *Coupon) IsActive() bool                { return c.active }
func (c *Coupon) CreatedAt() time.Time          { return c.createdAt }
func (c *Coupon) UpdatedAt() time.Time          { return c.updatedAt }
func (c *Coupon) Changes() *ChangeTracker       { return c.changes }
func (c *Coupon) DomainEvents() []DomainEvent   { return c.events }

// HasStarted reports whether the validity window has opened.
// The window is inclusive of the start instant.
func (c *Coupon) HasStarted(now time.Time) bool {
	return !now.Before(c.startDate)
}

// IsExpired reports whether the validity window has closed.
// The coupon is invalid from the expiry instant onward.
func (c *Coupon) IsExpired(now time.Time) bool {
	return !c.expiryDate.After(now)
}

// IsUsageLimitReached reports whether the global usage cap is
// exhausted. A nil limit never caps.
func (c *Coupon) IsUsageLimitReached() bool {
	return c.usageLimit != nil && c.usedCount >= *c.usageLimit
}

// IsValid is the four-condition conjunction: active, started, not
// expired, and under the global usage cap. Evaluated fresh per call.
func (c *Coupon) IsValid(now time.Time) bool {
	return c.active && c.HasStarted(now) && !c.IsExpired(now) && !c.IsUsageLimitReached()
}

// Validate returns nil if the coupon is valid at now, otherwise the
// most specific failure in fixed priority order: expired, then not
// started, then usage limit, then the generic fallback.
func (c *Coupon) Validate(now time.Time) error {
	if c.IsExpired(now) {
		return ErrCouponExpired
	}
	if !c.HasStarted(now) {
		return ErrCouponNotStarted
	}
	if c.IsUsageLimitReached() {
		return ErrCouponUsageLimitReached
	}
	if !c.active {
		return ErrCouponNotValid
	}
	return nil
}

// UsageCountFor counts prior uses by one user in the audit log.
func (c *Coupon) UsageCountFor(userID string) int64 {
	var count int64
	for _, u := range c.usedBy {
		if u.UserID == userID {
			count++
		}
	}
	return count
}

// CanUserUse reports whether a user is under the per-user cap.
// Guest checkouts (empty userID) always pass.
func (c *Coupon) CanUserUse(userID string) bool {
	if userID == "" {
		return true
	}
	return c.UsageCountFor(userID) < c.usageLimitPerUser
}

// OrderContext is the order-level data eligibility rules run against.
// HasPriorOrder is supplied by the caller from its order history; it
// should count only non-cancelled orders.
type OrderContext struct {
	UserID        string
	OrderAmount   *money.Money
	ProductIDs    []string
	HasPriorOrder bool
}

// CheckEligibility runs the order-level rules: minimum order amount,
// product allow-list, product deny-list, and the first-time-buyer
// restriction. The deny-list is evaluated independently of and after
// the allow-list, so a product present in both is rejected.
func (c *Coupon) CheckEligibility(order OrderContext) error {
	if c.minOrderAmount.IsPositive() && order.OrderAmount.LessThan(c.minOrderAmount) {
		return ErrMinOrderNotMet
	}

	if len(c.applicableProducts) > 0 {
		if !containsAny(c.applicableProducts, order.ProductIDs) {
			return ErrProductNotApplicable
		}
	}
	if len(c.excludedProducts) > 0 {
		if containsAny(c.excludedProducts, order.ProductIDs) {
			return ErrProductExcluded
		}
	}

	if c.firstTimeOnly && order.HasPriorOrder {
		return ErrFirstTimeOnly
	}

	return nil
}

// CalculateDiscount delegates to the discount rule. Never mutates.
func (c *Coupon) CalculateDiscount(orderAmount, shippingCost *money.Money) *money.Money {
	return c.rule.Amount(orderAmount, shippingCost)
}

// RecordUsage consumes one use: increments the counter and appends to
// the audit log. This is the only mutating operation on the aggregate;
// the storage layer must serialize concurrent calls (see the repo's
// conditional transaction).
func (c *Coupon) RecordUsage(userID, orderID string, now time.Time) error {
	if c.IsUsageLimitReached() {
		return ErrCouponUsageLimitReached
	}

	c.usedCount++
	c.usedBy = append(c.usedBy, Usage{UserID: userID, OrderID: orderID, UsedAt: now})
	c.updatedAt = now
	c.changes.MarkDirty(FieldUsedCount)

	c.recordEvent(&CouponAppliedEvent{
		CouponID:  c.id,
		Code:      c.code,
		UserID:    userID,
		OrderID:   orderID,
		UsedCount: c.usedCount,
		UsedAt:    now,
	})

	return nil
}

// Deactivate retires the coupon. Validation-only calls never do this;
// it is an admin operation.
func (c *Coupon) Deactivate(now time.Time) {
	if !c.active {
		return
	}
	c.active = false
	c.updatedAt = now
	c.changes.MarkDirty(FieldActive)
}

// ClearEvents drops recorded events after they have been committed.
func (c *Coupon) ClearEvents() {
	c.events = make([]DomainEvent, 0)
}

func (c *Coupon) recordEvent(event DomainEvent) {
	c.events = append(c.events, event)
}

func containsAny(set, candidates []string) bool {
	lookup := make(map[string]bool, len(set))
	for _, s := range set {
		lookup[s] = true
	}
	for _, candidate := range candidates {
		if lookup[candidate] {
			return true
		}
	}
	return false
}
