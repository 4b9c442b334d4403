package domain

import "errors"

// Validity errors, surfaced in priority order by Coupon.Validate:
// expired first, then not-started, then usage-limit, then the generic
// fallback. User-facing messages key off these exact values.
var (
	ErrCouponNotFound          = errors.New("invalid coupon code")
	ErrCouponExpired           = errors.New("coupon has expired")
	ErrCouponNotStarted        = errors.New("coupon is not active yet")
	ErrCouponUsageLimitReached = errors.New("coupon usage limit reached")
	ErrCouponNotValid          = errors.New("coupon is not valid")
)

// Eligibility errors for order-level checks.
var (
	ErrMinOrderNotMet       = errors.New("order total is below the coupon minimum")
	ErrProductNotApplicable = errors.New("coupon does not apply to any product in the order")
	ErrProductExcluded      = errors.New("coupon cannot be used with a product in the order")
	ErrFirstTimeOnly        = errors.New("coupon is limited to first-time customers")
	ErrUserLimitReached     = errors.New("coupon usage limit reached for this user")
)

// Construction errors.
var (
	ErrEmptyCode             = errors.New("coupon code cannot be empty")
	ErrInvalidDiscountType   = errors.New("unknown discount type")
	ErrNegativeDiscountValue = errors.New("discount value cannot be negative")
	ErrPercentAboveHundred   = errors.New("percentage discount cannot exceed 100")
	ErrInvalidValidityWindow = errors.New("coupon expiry date must be after start date")
)
