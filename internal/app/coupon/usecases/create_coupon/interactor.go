package create_coupon

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gemforge/pricing-service/internal/app/coupon/contracts"
	"github.com/gemforge/pricing-service/internal/app/coupon/domain"
	"github.com/gemforge/pricing-service/internal/pkg/clock"
	"github.com/gemforge/pricing-service/internal/pkg/committer"
	"github.com/gemforge/pricing-service/internal/pkg/money"
	"github.com/gemforge/pricing-service/internal/pkg/outbox"
)

// Request contains the data needed to create a coupon.
type Request struct {
	Code               string
	DiscountType       string
	DiscountValue      *money.Money
	DiscountPercent    float64
	MaxDiscount        *money.Money
	MinOrderAmount     *money.Money
	UsageLimit         *int64
	UsageLimitPerUser  int64
	StartDate          time.Time
	ExpiryDate         time.Time
	ApplicableProducts []string
	ExcludedProducts   []string
	FirstTimeOnly      bool
}

// Interactor handles the create coupon use case.
type Interactor struct {
	repo       contracts.CouponRepository
	outboxRepo *outbox.Repo
	committer  *committer.Committer
	clock      clock.Clock
}

// NewInteractor creates a new create coupon interactor.
func NewInteractor(
	repo contracts.CouponRepository,
	outboxRepo *outbox.Repo,
	committer *committer.Committer,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		repo:       repo,
		outboxRepo: outboxRepo,
		committer:  committer,
		clock:      clock,
	}
}

// Execute creates a new coupon and returns its ID.
func (i *Interactor) Execute(ctx context.Context, req *Request) (string, error) {
	rule, err := domain.ParseDiscountRule(
		domain.DiscountType(req.DiscountType),
		req.DiscountValue,
		req.DiscountPercent,
		req.MaxDiscount,
	)
	if err != nil {
		return "", err
	}

	now := i.clock.Now()
	coupon, err := domain.NewCoupon(domain.Params{
		ID:                 uuid.New().String(),
		Code:               req.Code,
		Rule:               rule,
		MinOrderAmount:     req.MinOrderAmount,
		UsageLimit:         req.UsageLimit,
		UsageLimitPerUser:  req.UsageLimitPerUser,
		StartDate:          req.StartDate,
		ExpiryDate:         req.ExpiryDate,
		ApplicableProducts: req.ApplicableProducts,
		ExcludedProducts:   req.ExcludedProducts,
		FirstTimeOnly:      req.FirstTimeOnly,
	}, now)
	if err != nil {
		return "", err
	}

	plan := committer.NewPlan()

	mut, err := i.repo.InsertMut(coupon)
	if err != nil {
		return "", fmt.Errorf("failed to build coupon mutation: %w", err)
	}
	plan.Add(mut)

	events := make([]outbox.DomainEvent, 0, len(coupon.DomainEvents()))
	for _, event := range coupon.DomainEvents() {
		events = append(events, event)
	}
	eventMuts, err := i.outboxRepo.InsertAllMut(events)
	if err != nil {
		return "", err
	}
	plan.AddMultiple(eventMuts)

	if err := i.committer.Apply(ctx, plan); err != nil {
		return "", fmt.Errorf("failed to commit coupon: %w", err)
	}

	coupon.ClearEvents()
	return coupon.ID(), nil
}
