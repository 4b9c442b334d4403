package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/gemforge/pricing-service/internal/app/pricing/domain"
)

// ConfigRepository defines the interface for pricing configuration
// persistence. The configuration is a singleton aggregate; reads always
// return a usable config, falling back to the built-in defaults when no
// row has been stored yet.
type ConfigRepository interface {
	// Get retrieves the current pricing configuration.
	Get(ctx context.Context) (*domain.Config, error)

	// UpsertMut creates a mutation replacing the stored configuration.
	// Returns error if money values exceed int64 bounds.
	UpsertMut(cfg *domain.Config) (*spanner.Mutation, error)

	// DeleteMut creates a mutation removing the stored configuration,
	// restoring the built-in defaults on the next read.
	DeleteMut() *spanner.Mutation
}
