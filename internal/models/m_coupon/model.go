package m_coupon

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the coupons table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a coupon.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{
			CouponID,
			Code,
			DiscountType,
			DiscountValueNumerator,
			DiscountValueDenominator,
			DiscountPercent,
			MaxDiscountNumerator,
			MaxDiscountDenominator,
			MinOrderNumerator,
			MinOrderDenominator,
			UsageLimit,
			UsageLimitPerUser,
			UsedCount,
			StartDate,
			ExpiryDate,
			ApplicableProducts,
			ExcludedProducts,
			FirstTimeOnly,
			Active,
			CreatedAt,
			UpdatedAt,
		},
		[]interface{}{
			data.CouponID,
			data.Code,
			data.DiscountType,
			data.DiscountValueNumerator,
			data.DiscountValueDenominator,
			data.DiscountPercent,
			data.MaxDiscountNumerator,
			data.MaxDiscountDenominator,
			data.MinOrderNumerator,
			data.MinOrderDenominator,
			data.UsageLimit,
			data.UsageLimitPerUser,
			data.UsedCount,
			data.StartDate,
			data.ExpiryDate,
			data.ApplicableProducts,
			data.ExcludedProducts,
			data.FirstTimeOnly,
			data.Active,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// UpdateMut creates a Spanner mutation for updating specific coupon fields.
// The updates map should contain field names as keys and new values.
func (m *Model) UpdateMut(couponID string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	// Always update the UpdatedAt timestamp
	updates[UpdatedAt] = spanner.CommitTimestamp

	columns := make([]string, 0, len(updates)+1)
	values := make([]interface{}, 0, len(updates)+1)

	columns = append(columns, CouponID)
	values = append(values, couponID)

	for col, val := range updates {
		columns = append(columns, col)
		values = append(values, val)
	}

	return spanner.Update(TableName, columns, values)
}
