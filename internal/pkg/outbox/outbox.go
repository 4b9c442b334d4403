// Package outbox implements the transactional outbox used to publish
// domain events. Events are serialized to JSON and written in the same
// commit plan as the aggregate mutation that produced them.
package outbox

import (
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	"github.com/gemforge/pricing-service/internal/models/m_outbox"
)

// DomainEvent is implemented by every domain event in the service.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// Repo writes domain events to the outbox_events table.
type Repo struct {
	model *m_outbox.Model
}

// NewRepo creates a new outbox Repo.
func NewRepo() *Repo {
	return &Repo{model: m_outbox.NewModel()}
}

// InsertMut serializes a domain event and returns the insert mutation.
func (r *Repo) InsertMut(event DomainEvent) (*spanner.Mutation, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize event %s: %w", event.EventType(), err)
	}

	data := &m_outbox.Data{
		EventID:     uuid.New().String(),
		EventType:   event.EventType(),
		AggregateID: event.AggregateID(),
		Payload:     spanner.NullJSON{Value: json.RawMessage(payload), Valid: true},
		Status:      m_outbox.StatusPending,
		RetryCount:  0,
	}
	return r.model.InsertMut(data), nil
}

// InsertAllMut returns insert mutations for a batch of events.
func (r *Repo) InsertAllMut(events []DomainEvent) ([]*spanner.Mutation, error) {
	muts := make([]*spanner.Mutation, 0, len(events))
	for _, event := range events {
		mut, err := r.InsertMut(event)
		if err != nil {
			return nil, err
		}
		muts = append(muts, mut)
	}
	return muts, nil
}
