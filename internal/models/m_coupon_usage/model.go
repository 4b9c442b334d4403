package m_coupon_usage

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the coupon_usages table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a usage record.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{
			UsageID,
			CouponID,
			UserID,
			OrderID,
			UsedAt,
		},
		[]interface{}{
			data.UsageID,
			data.CouponID,
			data.UserID,
			data.OrderID,
			data.UsedAt,
		},
	)
}
