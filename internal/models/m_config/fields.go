package m_config

// Field name constants for the pricing_config table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "pricing_config"

	ConfigID        = "config_id"
	Compositions    = "compositions"
	Diamonds        = "diamonds"
	RingSizes       = "ring_sizes"
	AdditionalCosts = "additional_costs"
	Tax             = "tax"
	CreatedAt       = "created_at"
	UpdatedAt       = "updated_at"
)
