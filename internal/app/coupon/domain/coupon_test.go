package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gemforge/pricing-service/internal/pkg/money"
)

func newTestCoupon(t *testing.T, now time.Time, mutate func(*Params)) *Coupon {
	t.Helper()

	p := Params{
		ID:         "coupon-1",
		Code:       "SAVE10",
		Rule:       PercentageDiscount{Percent: 10},
		StartDate:  now.Add(-time.Hour),
		ExpiryDate: now.Add(24 * time.Hour),
	}
	if mutate != nil {
		mutate(&p)
	}

	c, err := NewCoupon(p, now)
	require.NoError(t, err)
	c.ClearEvents()
	return c
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "SAVE10", NormalizeCode("  save10 "))
	assert.Equal(t, "SUMMERSALE", NormalizeCode("summer sale"))
	assert.Equal(t, "", NormalizeCode("   "))
}

func TestNewCoupon(t *testing.T) {
	now := time.Now().UTC()

	t.Run("normalizes code and defaults per-user limit", func(t *testing.T) {
		c := newTestCoupon(t, now, func(p *Params) {
			p.Code = " save10 "
			p.UsageLimitPerUser = 0
		})
		assert.Equal(t, "SAVE10", c.Code())
		assert.Equal(t, int64(1), c.UsageLimitPerUser())
		assert.True(t, c.IsActive())
	})

	t.Run("empty code rejected", func(t *testing.T) {
		_, err := NewCoupon(Params{
			Code:       "   ",
			Rule:       FixedDiscount{Value: money.Zero()},
			StartDate:  now,
			ExpiryDate: now.Add(time.Hour),
		}, now)
		assert.ErrorIs(t, err, ErrEmptyCode)
	})

	t.Run("expiry before start rejected", func(t *testing.T) {
		_, err := NewCoupon(Params{
			Code:       "SAVE10",
			Rule:       PercentageDiscount{Percent: 10},
			StartDate:  now,
			ExpiryDate: now.Add(-time.Hour),
		}, now)
		assert.ErrorIs(t, err, ErrInvalidValidityWindow)
	})

	t.Run("emits created event", func(t *testing.T) {
		c, err := NewCoupon(Params{
			ID:         "coupon-9",
			Code:       "NEW",
			Rule:       FreeShippingDiscount{},
			StartDate:  now,
			ExpiryDate: now.Add(time.Hour),
		}, now)
		require.NoError(t, err)
		require.Len(t, c.DomainEvents(), 1)
		assert.Equal(t, "coupon.created", c.DomainEvents()[0].EventType())
	})
}

func TestCoupon_Validity(t *testing.T) {
	now := time.Now().UTC()

	t.Run("valid coupon passes all four conditions", func(t *testing.T) {
		c := newTestCoupon(t, now, nil)
		assert.True(t, c.IsValid(now))
		assert.NoError(t, c.Validate(now))
	})

	t.Run("expired coupon reports expiry first", func(t *testing.T) {
		c := newTestCoupon(t, now, func(p *Params) {
			p.StartDate = now.Add(-48 * time.Hour)
			p.ExpiryDate = now.Add(-time.Hour)
		})
		assert.False(t, c.IsValid(now))
		assert.ErrorIs(t, c.Validate(now), ErrCouponExpired)
	})

	t.Run("expiry instant itself is invalid", func(t *testing.T) {
		c := newTestCoupon(t, now, func(p *Params) {
			p.ExpiryDate = now
		})
		assert.False(t, c.IsValid(now))
	})

	t.Run("not-started coupon reports a distinct reason", func(t *testing.T) {
		c := newTestCoupon(t, now, func(p *Params) {
			p.StartDate = now.Add(time.Hour)
			p.ExpiryDate = now.Add(48 * time.Hour)
		})
		err := c.Validate(now)
		assert.ErrorIs(t, err, ErrCouponNotStarted)
		assert.NotErrorIs(t, err, ErrCouponExpired)
	})

	t.Run("start instant itself is valid", func(t *testing.T) {
		c := newTestCoupon(t, now, func(p *Params) {
			p.StartDate = now
		})
		assert.True(t, c.IsValid(now))
	})

	t.Run("usage limit flips validity", func(t *testing.T) {
		limit := int64(2)
		c := newTestCoupon(t, now, func(p *Params) { p.UsageLimit = &limit })

		require.NoError(t, c.RecordUsage("u1", "o1", now))
		assert.True(t, c.IsValid(now))

		require.NoError(t, c.RecordUsage("u2", "o2", now))
		assert.False(t, c.IsValid(now))
		assert.ErrorIs(t, c.Validate(now), ErrCouponUsageLimitReached)
	})

	t.Run("nil usage limit never caps", func(t *testing.T) {
		c := newTestCoupon(t, now, nil)
		for i := 0; i < 100; i++ {
			require.NoError(t, c.RecordUsage("", "order", now))
		}
		assert.True(t, c.IsValid(now))
	})

	t.Run("inactive coupon falls through to the generic reason", func(t *testing.T) {
		c := newTestCoupon(t, now, nil)
		c.Deactivate(now)
		assert.False(t, c.IsValid(now))
		assert.ErrorIs(t, c.Validate(now), ErrCouponNotValid)
	})
}

func TestCoupon_CanUserUse(t *testing.T) {
	now := time.Now().UTC()

	t.Run("guest users always pass", func(t *testing.T) {
		c := newTestCoupon(t, now, nil)
		require.NoError(t, c.RecordUsage("", "o1", now))
		assert.True(t, c.CanUserUse(""))
	})

	t.Run("user under the per-user cap passes", func(t *testing.T) {
		c := newTestCoupon(t, now, func(p *Params) { p.UsageLimitPerUser = 2 })
		require.NoError(t, c.RecordUsage("u1", "o1", now))
		assert.True(t, c.CanUserUse("u1"))
	})

	t.Run("user at the per-user cap fails", func(t *testing.T) {
		c := newTestCoupon(t, now, nil) // default cap of 1
		require.NoError(t, c.RecordUsage("u1", "o1", now))
		assert.False(t, c.CanUserUse("u1"))
		assert.True(t, c.CanUserUse("u2"))
	})
}

func TestCoupon_CheckEligibility(t *testing.T) {
	now := time.Now().UTC()
	order := func(amount int64, products ...string) OrderContext {
		m, _ := money.New(amount, 1)
		return OrderContext{OrderAmount: m, ProductIDs: products}
	}

	t.Run("minimum order amount enforced", func(t *testing.T) {
		c := newTestCoupon(t, now, func(p *Params) {
			min, _ := money.New(100, 1)
			p.MinOrderAmount = min
		})
		assert.ErrorIs(t, c.CheckEligibility(order(99)), ErrMinOrderNotMet)
		assert.NoError(t, c.CheckEligibility(order(100)))
	})

	t.Run("empty allow-list applies to everything", func(t *testing.T) {
		c := newTestCoupon(t, now, nil)
		assert.NoError(t, c.CheckEligibility(order(50, "p1", "p2")))
	})

	t.Run("allow-list requires at least one match", func(t *testing.T) {
		c := newTestCoupon(t, now, func(p *Params) {
			p.ApplicableProducts = []string{"p1"}
		})
		assert.NoError(t, c.CheckEligibility(order(50, "p1", "p9")))
		assert.ErrorIs(t, c.CheckEligibility(order(50, "p9")), ErrProductNotApplicable)
	})

	t.Run("deny-list rejects any match", func(t *testing.T) {
		c := newTestCoupon(t, now, func(p *Params) {
			p.ExcludedProducts = []string{"p2"}
		})
		assert.ErrorIs(t, c.CheckEligibility(order(50, "p1", "p2")), ErrProductExcluded)
	})

	t.Run("exclusion wins when a product is in both lists", func(t *testing.T) {
		c := newTestCoupon(t, now, func(p *Params) {
			p.ApplicableProducts = []string{"p1"}
			p.ExcludedProducts = []string{"p1"}
		})
		assert.ErrorIs(t, c.CheckEligibility(order(50, "p1")), ErrProductExcluded)
	})

	t.Run("first-time-only rejects returning customers", func(t *testing.T) {
		c := newTestCoupon(t, now, func(p *Params) { p.FirstTimeOnly = true })

		returning := order(50, "p1")
		returning.UserID = "u1"
		returning.HasPriorOrder = true
		assert.ErrorIs(t, c.CheckEligibility(returning), ErrFirstTimeOnly)

		fresh := order(50, "p1")
		fresh.UserID = "u1"
		assert.NoError(t, c.CheckEligibility(fresh))
	})
}

func TestCoupon_RecordUsage(t *testing.T) {
	now := time.Now().UTC()

	t.Run("appends to the audit log and emits an event", func(t *testing.T) {
		c := newTestCoupon(t, now, nil)

		require.NoError(t, c.RecordUsage("u1", "order-1", now))

		assert.Equal(t, int64(1), c.UsedCount())
		require.Len(t, c.UsedBy(), 1)
		assert.Equal(t, "u1", c.UsedBy()[0].UserID)
		assert.Equal(t, "order-1", c.UsedBy()[0].OrderID)
		assert.True(t, c.Changes().Dirty(FieldUsedCount))

		require.Len(t, c.DomainEvents(), 1)
		assert.Equal(t, "coupon.applied", c.DomainEvents()[0].EventType())
	})

	t.Run("rejected once the global cap is reached", func(t *testing.T) {
		limit := int64(1)
		c := newTestCoupon(t, now, func(p *Params) { p.UsageLimit = &limit })

		require.NoError(t, c.RecordUsage("u1", "o1", now))
		assert.ErrorIs(t, c.RecordUsage("u2", "o2", now), ErrCouponUsageLimitReached)
		assert.Equal(t, int64(1), c.UsedCount())
	})

	t.Run("validation-style calls never mutate", func(t *testing.T) {
		c := newTestCoupon(t, now, nil)
		orderAmount, _ := money.New(200, 1)

		_ = c.IsValid(now)
		_ = c.Validate(now)
		_ = c.CanUserUse("u1")
		_ = c.CalculateDiscount(orderAmount, money.Zero())

		assert.Equal(t, int64(0), c.UsedCount())
		assert.Empty(t, c.UsedBy())
		assert.False(t, c.Changes().HasChanges())
		assert.Empty(t, c.DomainEvents())
	})
}

func TestCoupon_CalculateDiscount(t *testing.T) {
	now := time.Now().UTC()
	orderAmount, _ := money.New(200, 1)

	t.Run("percentage with cap", func(t *testing.T) {
		max, _ := money.New(15, 1)
		c := newTestCoupon(t, now, func(p *Params) {
			p.Rule = PercentageDiscount{Percent: 10, MaxDiscount: max}
		})
		got := c.CalculateDiscount(orderAmount, money.Zero())
		assert.Equal(t, "15.00", got.String())
	})

	t.Run("fixed capped at order total", func(t *testing.T) {
		value, _ := money.New(50, 1)
		small, _ := money.New(30, 1)
		c := newTestCoupon(t, now, func(p *Params) {
			p.Rule = FixedDiscount{Value: value}
		})
		got := c.CalculateDiscount(small, money.Zero())
		assert.Equal(t, "30.00", got.String())
	})

	t.Run("free shipping returns the shipping cost", func(t *testing.T) {
		shipping, _ := money.New(9, 1)
		c := newTestCoupon(t, now, func(p *Params) {
			p.Rule = FreeShippingDiscount{}
		})
		got := c.CalculateDiscount(orderAmount, shipping)
		assert.Equal(t, "9.00", got.String())
	})
}
