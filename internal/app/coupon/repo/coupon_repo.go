package repo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/gemforge/pricing-service/internal/app/coupon/contracts"
	"github.com/gemforge/pricing-service/internal/app/coupon/domain"
	"github.com/gemforge/pricing-service/internal/models/m_coupon"
	"github.com/gemforge/pricing-service/internal/models/m_coupon_usage"
	"github.com/gemforge/pricing-service/internal/pkg/money"
)

// CouponRepo implements CouponRepository for Spanner.
type CouponRepo struct {
	client     *spanner.Client
	model      *m_coupon.Model
	usageModel *m_coupon_usage.Model
}

// NewCouponRepo creates a new CouponRepo.
func NewCouponRepo(client *spanner.Client) contracts.CouponRepository {
	return &CouponRepo{
		client:     client,
		model:      m_coupon.NewModel(),
		usageModel: m_coupon_usage.NewModel(),
	}
}

// querier is the surface shared by read-only and read-write transactions.
type querier interface {
	Query(ctx context.Context, statement spanner.Statement) *spanner.RowIterator
}

// GetByCode retrieves a coupon by its normalized code.
func (r *CouponRepo) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	txn := r.client.Single()
	defer txn.Close()
	return r.getByCode(ctx, txn, code)
}

func (r *CouponRepo) getByCode(ctx context.Context, q querier, code string) (*domain.Coupon, error) {
	stmt := spanner.Statement{
		SQL: `SELECT coupon_id, code, discount_type,
		             discount_value_numerator, discount_value_denominator,
		             discount_percent, max_discount_numerator, max_discount_denominator,
		             min_order_numerator, min_order_denominator,
		             usage_limit, usage_limit_per_user, used_count,
		             start_date, expiry_date,
		             applicable_products, excluded_products,
		             first_time_only, active, created_at, updated_at
		      FROM coupons
		      WHERE code = @code`,
		Params: map[string]interface{}{"code": domain.NormalizeCode(code)},
	}

	iter := q.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, domain.ErrCouponNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read coupon: %w", err)
	}

	var data m_coupon.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse coupon: %w", err)
	}

	usages, err := r.loadUsages(ctx, q, data.CouponID)
	if err != nil {
		return nil, err
	}

	return dataToDomain(&data, usages)
}

func (r *CouponRepo) loadUsages(ctx context.Context, q querier, couponID string) ([]domain.Usage, error) {
	stmt := spanner.Statement{
		SQL: `SELECT user_id, order_id, used_at
		      FROM coupon_usages
		      WHERE coupon_id = @coupon_id
		      ORDER BY used_at`,
		Params: map[string]interface{}{"coupon_id": couponID},
	}

	iter := q.Query(ctx, stmt)
	defer iter.Stop()

	var usages []domain.Usage
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read coupon usages: %w", err)
		}
		var u struct {
			UserID  string    `spanner:"user_id"`
			OrderID string    `spanner:"order_id"`
			UsedAt  time.Time `spanner:"used_at"`
		}
		if err := row.ToStruct(&u); err != nil {
			return nil, fmt.Errorf("failed to parse coupon usage: %w", err)
		}
		usages = append(usages, domain.Usage{UserID: u.UserID, OrderID: u.OrderID, UsedAt: u.UsedAt})
	}
	return usages, nil
}

// InsertMut creates a mutation for inserting a new coupon.
func (r *CouponRepo) InsertMut(coupon *domain.Coupon) (*spanner.Mutation, error) {
	data, err := domainToData(coupon)
	if err != nil {
		return nil, err
	}
	return r.model.InsertMut(data), nil
}

// ApplyUsage atomically consumes one use of the coupon. The re-read and
// cap re-check happen inside the transaction, so two concurrent calls
// racing for the last remaining use cannot both succeed.
func (r *CouponRepo) ApplyUsage(ctx context.Context, code, userID, orderID string, now time.Time,
	check func(*domain.Coupon) error,
	extraMuts func(*domain.Coupon) ([]*spanner.Mutation, error)) (*domain.Coupon, error) {

	var applied *domain.Coupon
	_, err := r.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		coupon, err := r.getByCode(ctx, txn, code)
		if err != nil {
			return err
		}

		if check != nil {
			if err := check(coupon); err != nil {
				return err
			}
		}

		if err := coupon.RecordUsage(userID, orderID, now); err != nil {
			return err
		}

		muts := make([]*spanner.Mutation, 0, 3)
		if mut := r.model.UpdateMut(coupon.ID(), updatesFor(coupon)); mut != nil {
			muts = append(muts, mut)
		}
		muts = append(muts, r.usageModel.InsertMut(&m_coupon_usage.Data{
			UsageID:  uuid.NewString(),
			CouponID: coupon.ID(),
			UserID:   userID,
			OrderID:  orderID,
			UsedAt:   now,
		}))

		if extraMuts != nil {
			extra, err := extraMuts(coupon)
			if err != nil {
				return err
			}
			muts = append(muts, extra...)
		}

		applied = coupon
		return txn.BufferWrite(muts)
	})
	if err != nil {
		return nil, err
	}
	return applied, nil
}

// updatesFor maps the aggregate's dirty fields to update columns. An
// unchanged aggregate yields an empty map and no update mutation.
func updatesFor(coupon *domain.Coupon) map[string]interface{} {
	updates := make(map[string]interface{})
	changes := coupon.Changes()
	if changes.Dirty(domain.FieldUsedCount) {
		updates[m_coupon.UsedCount] = coupon.UsedCount()
	}
	if changes.Dirty(domain.FieldActive) {
		updates[m_coupon.Active] = coupon.IsActive()
	}
	return updates
}

func nullMoney(m *money.Money) (spanner.NullInt64, spanner.NullInt64, error) {
	if m == nil {
		return spanner.NullInt64{}, spanner.NullInt64{}, nil
	}
	num, denom, err := m.Ratio()
	if err != nil {
		return spanner.NullInt64{}, spanner.NullInt64{}, err
	}
	return spanner.NullInt64{Int64: num, Valid: true}, spanner.NullInt64{Int64: denom, Valid: true}, nil
}

func moneyFromNull(num, denom spanner.NullInt64) (*money.Money, error) {
	if !num.Valid || !denom.Valid {
		return nil, nil
	}
	return money.New(num.Int64, denom.Int64)
}

func domainToData(coupon *domain.Coupon) (*m_coupon.Data, error) {
	data := &m_coupon.Data{
		CouponID:           coupon.ID(),
		Code:               coupon.Code(),
		DiscountType:       string(coupon.Rule().Type()),
		UsageLimitPerUser:  coupon.UsageLimitPerUser(),
		UsedCount:          coupon.UsedCount(),
		StartDate:          coupon.StartDate(),
		ExpiryDate:         coupon.ExpiryDate(),
		ApplicableProducts: coupon.ApplicableProducts(),
		ExcludedProducts:   coupon.ExcludedProducts(),
		FirstTimeOnly:      coupon.FirstTimeOnly(),
		Active:             coupon.IsActive(),
	}

	var err error
	data.MinOrderNumerator, data.MinOrderDenominator, err = nullMoney(coupon.MinOrderAmount())
	if err != nil {
		return nil, fmt.Errorf("min order amount: %w", err)
	}

	if limit := coupon.UsageLimit(); limit != nil {
		data.UsageLimit = spanner.NullInt64{Int64: *limit, Valid: true}
	}

	switch rule := coupon.Rule().(type) {
	case domain.PercentageDiscount:
		data.DiscountPercent = spanner.NullFloat64{Float64: rule.Percent, Valid: true}
		data.MaxDiscountNumerator, data.MaxDiscountDenominator, err = nullMoney(rule.MaxDiscount)
		if err != nil {
			return nil, fmt.Errorf("max discount: %w", err)
		}
	case domain.FixedDiscount:
		data.DiscountValueNumerator, data.DiscountValueDenominator, err = nullMoney(rule.Value)
		if err != nil {
			return nil, fmt.Errorf("discount value: %w", err)
		}
	case domain.FreeShippingDiscount:
		// no value columns
	default:
		return nil, domain.ErrInvalidDiscountType
	}

	return data, nil
}

func dataToDomain(data *m_coupon.Data, usages []domain.Usage) (*domain.Coupon, error) {
	value, err := moneyFromNull(data.DiscountValueNumerator, data.DiscountValueDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid discount value: %w", err)
	}
	maxDiscount, err := moneyFromNull(data.MaxDiscountNumerator, data.MaxDiscountDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid max discount: %w", err)
	}

	rule, err := domain.ParseDiscountRule(
		domain.DiscountType(data.DiscountType),
		value,
		data.DiscountPercent.Float64,
		maxDiscount,
	)
	if err != nil {
		return nil, fmt.Errorf("stored coupon %q has invalid discount rule: %w", data.Code, err)
	}

	minOrder, err := moneyFromNull(data.MinOrderNumerator, data.MinOrderDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid min order amount: %w", err)
	}
	if minOrder == nil {
		minOrder = money.Zero()
	}

	var usageLimit *int64
	if data.UsageLimit.Valid {
		limit := data.UsageLimit.Int64
		usageLimit = &limit
	}

	return domain.ReconstructCoupon(
		data.CouponID,
		data.Code,
		rule,
		minOrder,
		usageLimit,
		data.UsageLimitPerUser,
		data.UsedCount,
		usages,
		data.StartDate,
		data.ExpiryDate,
		data.ApplicableProducts,
		data.ExcludedProducts,
		data.FirstTimeOnly,
		data.Active,
		data.CreatedAt,
		data.UpdatedAt,
	), nil
}
