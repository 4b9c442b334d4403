package domain

import "time"

// ConfigAggregateID is the fixed aggregate identity of the singleton
// pricing configuration.
const ConfigAggregateID = "default"

// ConfigUpdatedEvent is emitted when an administrator replaces the
// pricing configuration.
type ConfigUpdatedEvent struct {
	UpdatedBy string    `json:"updated_by"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *ConfigUpdatedEvent) EventType() string {
	return "pricing.config.updated"
}

func (e *ConfigUpdatedEvent) AggregateID() string {
	return ConfigAggregateID
}

// ConfigResetEvent is emitted when the configuration is reset to the
// documented defaults.
type ConfigResetEvent struct {
	ResetBy string    `json:"reset_by"`
	ResetAt time.Time `json:"reset_at"`
}

func (e *ConfigResetEvent) EventType() string {
	return "pricing.config.reset"
}

func (e *ConfigResetEvent) AggregateID() string {
	return ConfigAggregateID
}
