package contracts

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/gemforge/pricing-service/internal/app/coupon/domain"
)

// CouponRepository defines the interface for coupon persistence.
// Repositories return mutations, they don't apply them; the one
// exception is ApplyUsage, which must run its read-check-write cycle
// inside a single transaction to serialize concurrent redemptions.
type CouponRepository interface {
	// GetByCode retrieves a coupon by its normalized code, including
	// its usage audit log. Returns domain.ErrCouponNotFound for
	// unknown codes; inactive coupons are returned and rejected by
	// domain validation.
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)

	// InsertMut creates a mutation for inserting a new coupon.
	// Returns error if money values exceed int64 bounds.
	InsertMut(coupon *domain.Coupon) (*spanner.Mutation, error)

	// ApplyUsage atomically consumes one use of the coupon: it re-reads
	// the row inside a transaction, re-checks the usage cap, and writes
	// the incremented counter together with an audit row. check, if
	// non-nil, runs against the freshly read aggregate before the
	// usage is recorded; a returned error aborts the transaction.
	// extraMuts, if non-nil, is called with the updated aggregate and
	// its mutations (outbox events) are committed in the same
	// transaction. Returns the coupon as it was after the usage was
	// recorded.
	ApplyUsage(ctx context.Context, code, userID, orderID string, now time.Time,
		check func(*domain.Coupon) error,
		extraMuts func(*domain.Coupon) ([]*spanner.Mutation, error)) (*domain.Coupon, error)
}
