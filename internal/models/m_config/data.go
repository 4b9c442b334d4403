package m_config

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the pricing_config table.
// Each rate section is stored as a JSON document; the repository owns
// the serialization format.
type Data struct {
	ConfigID        string           `spanner:"config_id"`
	Compositions    spanner.NullJSON `spanner:"compositions"`
	Diamonds        spanner.NullJSON `spanner:"diamonds"`
	RingSizes       spanner.NullJSON `spanner:"ring_sizes"`
	AdditionalCosts spanner.NullJSON `spanner:"additional_costs"`
	Tax             spanner.NullJSON `spanner:"tax"`
	CreatedAt       time.Time        `spanner:"created_at"`
	UpdatedAt       time.Time        `spanner:"updated_at"`
}
