package quote_price

import (
	"context"
	"fmt"

	"github.com/gemforge/pricing-service/internal/app/pricing/contracts"
	"github.com/gemforge/pricing-service/internal/app/pricing/domain"
	"github.com/gemforge/pricing-service/internal/pkg/money"
)

// Request describes the piece to price.
type Request struct {
	Weight       float64
	Composition  string
	Material     string
	DiamondType  string
	DiamondCarat float64
	RingSize     string
}

// Response carries the final quoted price.
type Response struct {
	Price *money.Money
}

// Interactor handles the quote price use case.
type Interactor struct {
	configRepo contracts.ConfigRepository
}

// NewInteractor creates a new quote price interactor.
func NewInteractor(configRepo contracts.ConfigRepository) *Interactor {
	return &Interactor{configRepo: configRepo}
}

// Execute prices a single piece against the current configuration.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	cfg, err := i.configRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pricing config: %w", err)
	}

	calc := domain.NewCalculator(cfg)
	price, err := calc.CalculatePrice(domain.ProductSpec{
		Weight:       req.Weight,
		Composition:  domain.Composition(req.Composition),
		Material:     domain.Material(req.Material),
		DiamondType:  domain.DiamondType(req.DiamondType),
		DiamondCarat: req.DiamondCarat,
		RingSize:     req.RingSize,
	})
	if err != nil {
		return nil, err
	}

	return &Response{Price: price}, nil
}
