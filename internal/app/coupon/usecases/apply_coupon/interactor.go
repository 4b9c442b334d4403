package apply_coupon

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/gemforge/pricing-service/internal/app/coupon/contracts"
	"github.com/gemforge/pricing-service/internal/app/coupon/domain"
	"github.com/gemforge/pricing-service/internal/pkg/clock"
	"github.com/gemforge/pricing-service/internal/pkg/money"
	"github.com/gemforge/pricing-service/internal/pkg/outbox"
)

// Request describes the order redeeming the coupon.
type Request struct {
	Code          string
	UserID        string
	OrderID       string
	OrderAmount   *money.Money
	ShippingCost  *money.Money
	ProductIDs    []string
	HasPriorOrder bool
}

// Response reports the applied discount.
type Response struct {
	CouponID       string
	Code           string
	DiscountType   string
	DiscountAmount *money.Money
	UsedCount      int64
}

// Interactor handles the apply coupon use case. This is the only
// operation that consumes a use; every check runs against the fresh
// aggregate inside the repository transaction, so a concurrent
// redemption racing for the last remaining use loses cleanly instead
// of overshooting the cap.
type Interactor struct {
	repo       contracts.CouponRepository
	outboxRepo *outbox.Repo
	clock      clock.Clock
}

// NewInteractor creates a new apply coupon interactor.
func NewInteractor(repo contracts.CouponRepository, outboxRepo *outbox.Repo, clock clock.Clock) *Interactor {
	return &Interactor{repo: repo, outboxRepo: outboxRepo, clock: clock}
}

// Execute validates the coupon against the order and records the usage.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.OrderAmount == nil {
		req.OrderAmount = money.Zero()
	}
	if req.ShippingCost == nil {
		req.ShippingCost = money.Zero()
	}

	now := i.clock.Now()

	check := func(c *domain.Coupon) error {
		if err := c.Validate(now); err != nil {
			return err
		}
		if !c.CanUserUse(req.UserID) {
			return domain.ErrUserLimitReached
		}
		return c.CheckEligibility(domain.OrderContext{
			UserID:        req.UserID,
			OrderAmount:   req.OrderAmount,
			ProductIDs:    req.ProductIDs,
			HasPriorOrder: req.HasPriorOrder,
		})
	}

	extraMuts := func(c *domain.Coupon) ([]*spanner.Mutation, error) {
		events := make([]outbox.DomainEvent, 0, len(c.DomainEvents()))
		for _, event := range c.DomainEvents() {
			events = append(events, event)
		}
		return i.outboxRepo.InsertAllMut(events)
	}

	coupon, err := i.repo.ApplyUsage(ctx, req.Code, req.UserID, req.OrderID, now, check, extraMuts)
	if err != nil {
		return nil, err
	}

	return &Response{
		CouponID:       coupon.ID(),
		Code:           coupon.Code(),
		DiscountType:   string(coupon.Rule().Type()),
		DiscountAmount: coupon.CalculateDiscount(req.OrderAmount, req.ShippingCost),
		UsedCount:      coupon.UsedCount(),
	}, nil
}
