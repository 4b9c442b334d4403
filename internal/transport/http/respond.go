package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	coupondomain "github.com/gemforge/pricing-service/internal/app/coupon/domain"
	pricingdomain "github.com/gemforge/pricing-service/internal/app/pricing/domain"
)

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

// statusFor maps domain errors onto HTTP status codes. Malformed input
// is 400, unknown resources are 404, well-formed but rejected requests
// (invalid or ineligible coupons, disabled compositions) are 422, and
// a lost redemption race surfaces as 409.
func statusFor(err error) int {
	var validationErr *pricingdomain.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}
	var configErr *pricingdomain.ConfigurationError
	if errors.As(err, &configErr) {
		return http.StatusUnprocessableEntity
	}

	switch {
	case errors.Is(err, pricingdomain.ErrConfigNotFound),
		errors.Is(err, coupondomain.ErrCouponNotFound):
		return http.StatusNotFound

	case errors.Is(err, coupondomain.ErrEmptyCode),
		errors.Is(err, coupondomain.ErrInvalidDiscountType),
		errors.Is(err, coupondomain.ErrNegativeDiscountValue),
		errors.Is(err, coupondomain.ErrPercentAboveHundred),
		errors.Is(err, coupondomain.ErrInvalidValidityWindow):
		return http.StatusBadRequest

	case errors.Is(err, coupondomain.ErrCouponUsageLimitReached):
		// also the outcome of losing a concurrent redemption race
		return http.StatusConflict

	case errors.Is(err, coupondomain.ErrCouponExpired),
		errors.Is(err, coupondomain.ErrCouponNotStarted),
		errors.Is(err, coupondomain.ErrCouponNotValid),
		errors.Is(err, coupondomain.ErrUserLimitReached),
		errors.Is(err, coupondomain.ErrMinOrderNotMet),
		errors.Is(err, coupondomain.ErrProductNotApplicable),
		errors.Is(err, coupondomain.ErrProductExcluded),
		errors.Is(err, coupondomain.ErrFirstTimeOnly):
		return http.StatusUnprocessableEntity
	}

	switch spanner.ErrCode(err) {
	case codes.AlreadyExists:
		return http.StatusConflict
	case codes.NotFound:
		return http.StatusNotFound
	}

	log.Printf("internal error: %v", err)
	return http.StatusInternalServerError
}
