package reset_config

import (
	"context"
	"fmt"

	"github.com/gemforge/pricing-service/internal/app/pricing/contracts"
	"github.com/gemforge/pricing-service/internal/app/pricing/domain"
	"github.com/gemforge/pricing-service/internal/pkg/clock"
	"github.com/gemforge/pricing-service/internal/pkg/committer"
	"github.com/gemforge/pricing-service/internal/pkg/outbox"
)

// Request identifies who requested the reset.
type Request struct {
	ResetBy string
}

// Interactor handles the reset config use case.
type Interactor struct {
	configRepo contracts.ConfigRepository
	outboxRepo *outbox.Repo
	committer  *committer.Committer
	clock      clock.Clock
}

// NewInteractor creates a new reset config interactor.
func NewInteractor(
	configRepo contracts.ConfigRepository,
	outboxRepo *outbox.Repo,
	committer *committer.Committer,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		configRepo: configRepo,
		outboxRepo: outboxRepo,
		committer:  committer,
		clock:      clock,
	}
}

// Execute removes the stored configuration, restoring the documented
// defaults, and returns the configuration now in effect.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Config, error) {
	plan := committer.NewPlan()
	plan.Add(i.configRepo.DeleteMut())

	eventMut, err := i.outboxRepo.InsertMut(&domain.ConfigResetEvent{
		ResetBy: req.ResetBy,
		ResetAt: i.clock.Now(),
	})
	if err != nil {
		return nil, err
	}
	plan.Add(eventMut)

	if err := i.committer.Apply(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to commit config reset: %w", err)
	}
	return domain.DefaultConfig(), nil
}
