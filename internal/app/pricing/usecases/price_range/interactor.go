package price_range

import (
	"context"
	"fmt"

	"github.com/gemforge/pricing-service/internal/app/pricing/contracts"
	"github.com/gemforge/pricing-service/internal/app/pricing/domain"
)

// Request describes the option space to price.
type Request struct {
	Weight       float64
	Compositions []string
	Materials    []string
	DiamondTypes []string
	DiamondCarat float64
	RingSizes    []string
}

// Response carries the computed price range.
type Response struct {
	Range domain.PriceRange
}

// Interactor handles the price range use case.
type Interactor struct {
	configRepo contracts.ConfigRepository
}

// NewInteractor creates a new price range interactor.
func NewInteractor(configRepo contracts.ConfigRepository) *Interactor {
	return &Interactor{configRepo: configRepo}
}

// Execute prices the cross-product of the requested options and returns
// the minimum and maximum achievable prices.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	cfg, err := i.configRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pricing config: %w", err)
	}

	opts := domain.AvailableOptions{
		Weight:       req.Weight,
		Compositions: make([]domain.Composition, 0, len(req.Compositions)),
		Materials:    make([]domain.Material, 0, len(req.Materials)),
		DiamondTypes: make([]domain.DiamondType, 0, len(req.DiamondTypes)),
		DiamondCarat: req.DiamondCarat,
		RingSizes:    req.RingSizes,
	}
	for _, c := range req.Compositions {
		opts.Compositions = append(opts.Compositions, domain.Composition(c))
	}
	for _, m := range req.Materials {
		opts.Materials = append(opts.Materials, domain.Material(m))
	}
	for _, d := range req.DiamondTypes {
		opts.DiamondTypes = append(opts.DiamondTypes, domain.DiamondType(d))
	}

	calc := domain.NewCalculator(cfg)
	return &Response{Range: calc.CalculateRange(opts)}, nil
}
