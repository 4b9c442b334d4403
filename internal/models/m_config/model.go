package m_config

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the pricing_config table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// UpsertMut creates a Spanner mutation for writing the configuration row.
// The table holds a single row per config ID; InsertOrUpdate keeps the
// operation idempotent.
func (m *Model) UpsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{
			ConfigID,
			Compositions,
			Diamonds,
			RingSizes,
			AdditionalCosts,
			Tax,
			CreatedAt,
			UpdatedAt,
		},
		[]interface{}{
			data.ConfigID,
			data.Compositions,
			data.Diamonds,
			data.RingSizes,
			data.AdditionalCosts,
			data.Tax,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// DeleteMut creates a Spanner mutation for removing the configuration row.
func (m *Model) DeleteMut(configID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{configID})
}
