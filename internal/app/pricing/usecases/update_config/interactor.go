package update_config

import (
	"context"
	"fmt"

	"github.com/gemforge/pricing-service/internal/app/pricing/contracts"
	"github.com/gemforge/pricing-service/internal/app/pricing/domain"
	"github.com/gemforge/pricing-service/internal/pkg/clock"
	"github.com/gemforge/pricing-service/internal/pkg/committer"
	"github.com/gemforge/pricing-service/internal/pkg/outbox"
)

// Request carries the replacement configuration.
type Request struct {
	Config    *domain.Config
	UpdatedBy string
}

// Interactor handles the update config use case.
type Interactor struct {
	configRepo contracts.ConfigRepository
	outboxRepo *outbox.Repo
	committer  *committer.Committer
	clock      clock.Clock
}

// NewInteractor creates a new update config interactor.
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

// Execute validates and stores the replacement configuration.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	if req.Config == nil {
		return domain.NewValidationError("config", "must not be empty")
	}
	if err := req.Config.Validate(); err != nil {
		return domain.NewValidationError("config", err.Error())
	}

	plan := committer.NewPlan()

	mut, err := i.configRepo.UpsertMut(req.Config)
	if err != nil {
		return fmt.Errorf("failed to build config mutation: %w", err)
	}
	plan.Add(mut)

	eventMut, err := i.outboxRepo.InsertMut(&domain.ConfigUpdatedEvent{
		UpdatedBy: req.UpdatedBy,
		UpdatedAt: i.clock.Now(),
	})
	if err != nil {
		return err
	}
	plan.Add(eventMut)

	if err := i.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to commit config update: %w", err)
	}
	return nil
}
