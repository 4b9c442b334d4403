package validate_coupon

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gemforge/pricing-service/internal/app/coupon/domain"
	"github.com/gemforge/pricing-service/internal/pkg/clock"
	"github.com/gemforge/pricing-service/internal/pkg/money"
)

type fakeRepo struct {
	coupon *domain.Coupon
}

func (f *fakeRepo) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	if f.coupon == nil || f.coupon.Code() != domain.NormalizeCode(code) {
		return nil, domain.ErrCouponNotFound
	}
	return f.coupon, nil
}

func (f *fakeRepo) InsertMut(coupon *domain.Coupon) (*spanner.Mutation, error) {
	return nil, nil
}

func (f *fakeRepo) ApplyUsage(ctx context.Context, code, userID, orderID string, now time.Time,
	check func(*domain.Coupon) error,
	extraMuts func(*domain.Coupon) ([]*spanner.Mutation, error)) (*domain.Coupon, error) {
	panic("not used")
}

func amount(t *testing.T, n int64) *money.Money {
	t.Helper()
	m, err := money.New(n, 1)
	require.NoError(t, err)
	return m
}

func TestValidateCoupon(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(now)

	newCoupon := func(mutate func(*domain.Params)) *domain.Coupon {
		p := domain.Params{
			ID:         "coupon-1",
			Code:       "SAVE20",
			Rule:       domain.PercentageDiscount{Percent: 20},
			StartDate:  now.Add(-time.Hour),
			ExpiryDate: now.Add(24 * time.Hour),
		}
		if mutate != nil {
			mutate(&p)
		}
		c, err := domain.NewCoupon(p, now)
		require.NoError(t, err)
		c.ClearEvents()
		return c
	}

	t.Run("valid coupon returns the discount", func(t *testing.T) {
		uc := NewInteractor(&fakeRepo{coupon: newCoupon(nil)}, clk)

		resp, err := uc.Execute(context.Background(), &Request{
			Code:        "save 20",
			OrderAmount: amount(t, 200),
		})
		require.NoError(t, err)
		assert.Equal(t, "SAVE20", resp.Code)
		assert.Equal(t, "percentage", resp.DiscountType)
		assert.Equal(t, "40.00", resp.DiscountAmount.String())
	})

	t.Run("unknown code", func(t *testing.T) {
		uc := NewInteractor(&fakeRepo{}, clk)

		_, err := uc.Execute(context.Background(), &Request{Code: "NOPE"})
		assert.ErrorIs(t, err, domain.ErrCouponNotFound)
	})

	t.Run("expired coupon", func(t *testing.T) {
		coupon := newCoupon(func(p *domain.Params) {
			p.StartDate = now.Add(-48 * time.Hour)
			p.ExpiryDate = now.Add(-time.Hour)
		})
		uc := NewInteractor(&fakeRepo{coupon: coupon}, clk)

		_, err := uc.Execute(context.Background(), &Request{Code: "SAVE20", OrderAmount: amount(t, 200)})
		assert.ErrorIs(t, err, domain.ErrCouponExpired)
	})

	t.Run("per-user limit exhausted", func(t *testing.T) {
		coupon := newCoupon(nil)
		require.NoError(t, coupon.RecordUsage("u1", "o1", now))
		uc := NewInteractor(&fakeRepo{coupon: coupon}, clk)

		_, err := uc.Execute(context.Background(), &Request{
			Code:        "SAVE20",
			UserID:      "u1",
			OrderAmount: amount(t, 200),
		})
		assert.ErrorIs(t, err, domain.ErrUserLimitReached)
	})

	t.Run("order below minimum", func(t *testing.T) {
		coupon := newCoupon(func(p *domain.Params) {
			p.MinOrderAmount = amount(t, 150)
		})
		uc := NewInteractor(&fakeRepo{coupon: coupon}, clk)

		_, err := uc.Execute(context.Background(), &Request{Code: "SAVE20", OrderAmount: amount(t, 100)})
		assert.ErrorIs(t, err, domain.ErrMinOrderNotMet)
	})

	t.Run("validation does not consume a use", func(t *testing.T) {
		coupon := newCoupon(nil)
		uc := NewInteractor(&fakeRepo{coupon: coupon}, clk)

		for i := 0; i < 3; i++ {
			_, err := uc.Execute(context.Background(), &Request{Code: "SAVE20", OrderAmount: amount(t, 200)})
			require.NoError(t, err)
		}
		assert.Equal(t, int64(0), coupon.UsedCount())
	})
}
