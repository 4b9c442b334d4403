package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"

	couponrepo "github.com/gemforge/pricing-service/internal/app/coupon/repo"
	"github.com/gemforge/pricing-service/internal/app/coupon/usecases/apply_coupon"
	"github.com/gemforge/pricing-service/internal/app/coupon/usecases/create_coupon"
	"github.com/gemforge/pricing-service/internal/app/coupon/usecases/validate_coupon"
	pricingrepo "github.com/gemforge/pricing-service/internal/app/pricing/repo"
	"github.com/gemforge/pricing-service/internal/app/pricing/usecases/price_range"
	"github.com/gemforge/pricing-service/internal/app/pricing/usecases/quote_price"
	"github.com/gemforge/pricing-service/internal/app/pricing/usecases/reset_config"
	"github.com/gemforge/pricing-service/internal/app/pricing/usecases/update_config"
	"github.com/gemforge/pricing-service/internal/pkg/clock"
	"github.com/gemforge/pricing-service/internal/pkg/committer"
	"github.com/gemforge/pricing-service/internal/pkg/outbox"
	transporthttp "github.com/gemforge/pricing-service/internal/transport/http"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient  *spanner.Client
	PricingHandler *transporthttp.PricingHandler
	CouponHandler  *transporthttp.CouponHandler
	AdminHandler   *transporthttp.AdminHandler
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, spannerDB string) (*ServiceOptions, error) {
	spannerClient, err := spanner.NewClient(ctx, spannerDB)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	clk := clock.NewRealClock()
	comm := committer.NewCommitter(spannerClient)
	outboxRepo := outbox.NewRepo()

	configRepo := pricingrepo.NewConfigRepo(spannerClient)
	couponRepo := couponrepo.NewCouponRepo(spannerClient)

	quoteUseCase := quote_price.NewInteractor(configRepo)
	rangeUseCase := price_range.NewInteractor(configRepo)
	updateConfigUseCase := update_config.NewInteractor(configRepo, outboxRepo, comm, clk)
	resetConfigUseCase := reset_config.NewInteractor(configRepo, outboxRepo, comm, clk)

	createCouponUseCase := create_coupon.NewInteractor(couponRepo, outboxRepo, comm, clk)
	validateCouponUseCase := validate_coupon.NewInteractor(couponRepo, clk)
	applyCouponUseCase := apply_coupon.NewInteractor(couponRepo, outboxRepo, clk)

	return &ServiceOptions{
		SpannerClient:  spannerClient,
		PricingHandler: transporthttp.NewPricingHandler(quoteUseCase, rangeUseCase),
		CouponHandler:  transporthttp.NewCouponHandler(validateCouponUseCase, applyCouponUseCase),
		AdminHandler:   transporthttp.NewAdminHandler(configRepo, updateConfigUseCase, resetConfigUseCase, createCouponUseCase),
	}, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
