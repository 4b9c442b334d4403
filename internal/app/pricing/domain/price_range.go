package domain

import (
	"log"
	"sync"

	"github.com/gemforge/pricing-service/internal/pkg/money"
)

// PriceRange is the spread of prices across a product's option space.
type PriceRange struct {
	Min *money.Money
	Max *money.Money
}

// maxRangeWorkers bounds the fan-out for range estimation. The
// calculator is pure, so combinations can be priced in parallel.
const maxRangeWorkers = 4

// CalculateRange prices every combination of the available
// compositions, materials and diamond types and returns the minimum
// and maximum. The first available ring size is held constant as the
// baseline. Combinations that fail to price are skipped and logged
// rather than aborting the whole estimation; if nothing prices
// successfully the range is {0, 0}.
func (c *Calculator) CalculateRange(opts AvailableOptions) PriceRange {
	specs := expandCombinations(opts)
	if len(specs) == 0 {
		return PriceRange{Min: money.Zero(), Max: money.Zero()}
	}

	workers := maxRangeWorkers
	if len(specs) < workers {
		workers = len(specs)
	}

	jobs := make(chan ProductSpec)
	results := make(chan *money.Money, len(specs))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for spec := range jobs {
				price, err := c.CalculatePrice(spec)
				if err != nil {
					log.Printf("price range: skipping %s/%s/%s: %v",
						spec.Composition, spec.Material, spec.DiamondType, err)
					continue
				}
				results <- price
			}
		}()
	}

	for _, spec := range specs {
		jobs <- spec
	}
	close(jobs)
	wg.Wait()
	close(results)

	var min, max *money.Money
	for price := range results {
		if min == nil || price.LessThan(min) {
			min = price
		}
		if max == nil || price.GreaterThan(max) {
			max = price
		}
	}
	if min == nil {
		return PriceRange{Min: money.Zero(), Max: money.Zero()}
	}
	return PriceRange{Min: min, Max: max}
}

// expandCombinations builds the cross product of the option space.
// Empty material and diamond lists degrade to a single neutral choice
// so a bare product still yields one combination per composition.
func expandCombinations(opts AvailableOptions) []ProductSpec {
	materials := opts.Materials
	if len(materials) == 0 {
		materials = []Material{""}
	}

	diamondTypes := opts.DiamondTypes
	if len(diamondTypes) == 0 {
		diamondTypes = []DiamondType{DiamondNone}
	}

	var ringSize string
	if len(opts.RingSizes) > 0 {
		ringSize = opts.RingSizes[0]
	}

	specs := make([]ProductSpec, 0, len(opts.Compositions)*len(materials)*len(diamondTypes))
	for _, composition := range opts.Compositions {
		for _, material := range materials {
			for _, diamondType := range diamondTypes {
				specs = append(specs, ProductSpec{
					Weight:       opts.Weight,
					Composition:  composition,
					Material:     material,
					DiamondType:  diamondType,
					DiamondCarat: opts.DiamondCarat,
					RingSize:     ringSize,
				})
			}
		}
	}
	return specs
}
