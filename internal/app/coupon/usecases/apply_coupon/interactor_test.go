package apply_coupon

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
	"github.com/gemforge/pricing-service/internal/pkg/outbox"
)

// fakeRepo mimics the transactional repository against an in-memory
// coupon: check runs before RecordUsage, extra mutations are counted
// instead of committed.
type fakeRepo struct {
	coupon    *domain.Coupon
	extraMuts int
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

	coupon, err := f.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if check != nil {
		if err := check(coupon); err != nil {
			return nil, err
		}
	}
	if err := coupon.RecordUsage(userID, orderID, now); err != nil {
		return nil, err
	}
	if extraMuts != nil {
		muts, err := extraMuts(coupon)
		if err != nil {
			return nil, err
		}
		f.extraMuts += len(muts)
	}
	coupon.ClearEvents()
	return coupon, nil
}

func amount(t *testing.T, n int64) *money.Money {
	t.Helper()
	m, err := money.New(n, 1)
	require.NoError(t, err)
	return m
}

func TestApplyCoupon(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(now)

	newCoupon := func(mutate func(*domain.Params)) *domain.Coupon {
		p := domain.Params{
			ID:                "coupon-1",
			Code:              "SAVE20",
			Rule:              domain.PercentageDiscount{Percent: 20},
			UsageLimitPerUser: 5,
			StartDate:         now.Add(-time.Hour),
			ExpiryDate:        now.Add(24 * time.Hour),
		}
		if mutate != nil {
			mutate(&p)
		}
		c, err := domain.NewCoupon(p, now)
		require.NoError(t, err)
		c.ClearEvents()
		return c
	}

	t.Run("consumes a use and emits an outbox mutation", func(t *testing.T) {
		repo := &fakeRepo{coupon: newCoupon(nil)}
		uc := NewInteractor(repo, outbox.NewRepo(), clk)

		resp, err := uc.Execute(context.Background(), &Request{
			Code:        "SAVE20",
			UserID:      "u1",
			OrderID:     "order-1",
			OrderAmount: amount(t, 200),
		})
		require.NoError(t, err)
		assert.Equal(t, "40.00", resp.DiscountAmount.String())
		assert.Equal(t, int64(1), resp.UsedCount)
		assert.Equal(t, int64(1), repo.coupon.UsedCount())
		assert.Equal(t, 1, repo.extraMuts)
	})

	t.Run("missing order ID is caught by the transport layer, guests pass here", func(t *testing.T) {
		repo := &fakeRepo{coupon: newCoupon(nil)}
		uc := NewInteractor(repo, outbox.NewRepo(), clk)

		resp, err := uc.Execute(context.Background(), &Request{
			Code:        "SAVE20",
			OrderID:     "order-2",
			OrderAmount: amount(t, 100),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.UsedCount)
	})

	t.Run("global cap rejects before mutating", func(t *testing.T) {
		limit := int64(1)
		coupon := newCoupon(func(p *domain.Params) { p.UsageLimit = &limit })
		repo := &fakeRepo{coupon: coupon}
		uc := NewInteractor(repo, outbox.NewRepo(), clk)

		_, err := uc.Execute(context.Background(), &Request{
			Code: "SAVE20", UserID: "u1", OrderID: "o1", OrderAmount: amount(t, 200),
		})
		require.NoError(t, err)

		_, err = uc.Execute(context.Background(), &Request{
			Code: "SAVE20", UserID: "u2", OrderID: "o2", OrderAmount: amount(t, 200),
		})
		assert.ErrorIs(t, err, domain.ErrCouponUsageLimitReached)
		assert.Equal(t, int64(1), coupon.UsedCount())
	})

	t.Run("ineligible order leaves the coupon untouched", func(t *testing.T) {
		coupon := newCoupon(func(p *domain.Params) {
			p.ExcludedProducts = []string{"ring-9"}
		})
		repo := &fakeRepo{coupon: coupon}
		uc := NewInteractor(repo, outbox.NewRepo(), clk)

		_, err := uc.Execute(context.Background(), &Request{
			Code:        "SAVE20",
			OrderID:     "o1",
			OrderAmount: amount(t, 200),
			ProductIDs:  []string{"ring-9"},
		})
		assert.ErrorIs(t, err, domain.ErrProductExcluded)
		assert.Equal(t, int64(0), coupon.UsedCount())
		assert.Equal(t, 0, repo.extraMuts)
	})
}
