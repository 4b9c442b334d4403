package validate_coupon

import (
	"context"

	"github.com/gemforge/pricing-service/internal/app/coupon/contracts"
	"github.com/gemforge/pricing-service/internal/app/coupon/domain"
	"github.com/gemforge/pricing-service/internal/pkg/clock"
	"github.com/gemforge/pricing-service/internal/pkg/money"
)

// Request describes the order a coupon is being checked against.
type Request struct {
	Code          string
	UserID        string
	OrderAmount   *money.Money
	ShippingCost  *money.Money
	ProductIDs    []string
	HasPriorOrder bool
}

// Response reports the outcome of a successful validation.
type Response struct {
	CouponID       string
	Code           string
	DiscountType   string
	DiscountAmount *money.Money
}

// Interactor handles the validate coupon use case. It is strictly
// read-only: checking a coupon at checkout must not consume a use.
type Interactor struct {
	repo  contracts.CouponRepository
	clock clock.Clock
}

// NewInteractor creates a new validate coupon interactor.
func NewInteractor(repo contracts.CouponRepository, clock clock.Clock) *Interactor {
	return &Interactor{repo: repo, clock: clock}
}

// Execute checks validity, user limits and order eligibility, then
// computes the discount the coupon would grant.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.OrderAmount == nil {
		req.OrderAmount = money.Zero()
	}
	if req.ShippingCost == nil {
		req.ShippingCost = money.Zero()
	}

	coupon, err := i.repo.GetByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}

	if err := coupon.Validate(i.clock.Now()); err != nil {
		return nil, err
	}
	if !coupon.CanUserUse(req.UserID) {
		return nil, domain.ErrUserLimitReached
	}
	if err := coupon.CheckEligibility(domain.OrderContext{
		UserID:        req.UserID,
		OrderAmount:   req.OrderAmount,
		ProductIDs:    req.ProductIDs,
		HasPriorOrder: req.HasPriorOrder,
	}); err != nil {
		return nil, err
	}

	return &Response{
		CouponID:       coupon.ID(),
		Code:           coupon.Code(),
		DiscountType:   string(coupon.Rule().Type()),
		DiscountAmount: coupon.CalculateDiscount(req.OrderAmount, req.ShippingCost),
	}, nil
}
