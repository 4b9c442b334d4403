package http

import (
	"encoding/json"
	"net/http"

	"github.com/gemforge/pricing-service/internal/app/coupon/usecases/apply_coupon"
	"github.com/gemforge/pricing-service/internal/app/coupon/usecases/validate_coupon"
	"github.com/gemforge/pricing-service/internal/pkg/money"
)

// CouponHandler exposes the checkout-facing coupon endpoints.
type CouponHandler struct {
	validate *validate_coupon.Interactor
	apply    *apply_coupon.Interactor
}

// NewCouponHandler creates a new CouponHandler.
func NewCouponHandler(validate *validate_coupon.Interactor, apply *apply_coupon.Interactor) *CouponHandler {
	return &CouponHandler{validate: validate, apply: apply}
}

type validateRequest struct {
	Code          string   `json:"code"`
	UserID        string   `json:"user_id,omitempty"`
	OrderAmount   float64  `json:"order_amount"`
	ShippingCost  float64  `json:"shipping_cost,omitempty"`
	ProductIDs    []string `json:"product_ids,omitempty"`
	HasPriorOrder bool     `json:"has_prior_order,omitempty"`
}

type validateResponse struct {
	Valid          bool   `json:"valid"`
	CouponID       string `json:"coupon_id"`
	Code           string `json:"code"`
	DiscountType   string `json:"discount_type"`
	DiscountAmount string `json:"discount_amount"`
}

// Validate handles POST /api/v1/coupons/validate. It never consumes a
// use; checkout previews call it freely.
func (h *CouponHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	orderAmount, err := money.FromFloat(req.OrderAmount)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order_amount"})
		return
	}
	shipping, err := money.FromFloat(req.ShippingCost)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid shipping_cost"})
		return
	}

	resp, err := h.validate.Execute(r.Context(), &validate_coupon.Request{
		Code:          req.Code,
		UserID:        req.UserID,
		OrderAmount:   orderAmount,
		ShippingCost:  shipping,
		ProductIDs:    req.ProductIDs,
		HasPriorOrder: req.HasPriorOrder,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, validateResponse{
		Valid:          true,
		CouponID:       resp.CouponID,
		Code:           resp.Code,
		DiscountType:   resp.DiscountType,
		DiscountAmount: resp.DiscountAmount.String(),
	})
}

type applyRequest struct {
	Code          string   `json:"code"`
	UserID        string   `json:"user_id,omitempty"`
	OrderID       string   `json:"order_id"`
	OrderAmount   float64  `json:"order_amount"`
	ShippingCost  float64  `json:"shipping_cost,omitempty"`
	ProductIDs    []string `json:"product_ids,omitempty"`
	HasPriorOrder bool     `json:"has_prior_order,omitempty"`
}

type applyResponse struct {
	CouponID       string `json:"coupon_id"`
	Code           string `json:"code"`
	DiscountType   string `json:"discount_type"`
	DiscountAmount string `json:"discount_amount"`
	UsedCount      int64  `json:"used_count"`
}

// Apply handles POST /api/v1/coupons/apply.
func (h *CouponHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.OrderID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "order_id is required"})
		return
	}

	orderAmount, err := money.FromFloat(req.OrderAmount)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order_amount"})
		return
	}
	shipping, err := money.FromFloat(req.ShippingCost)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid shipping_cost"})
		return
	}

	resp, err := h.apply.Execute(r.Context(), &apply_coupon.Request{
		Code:          req.Code,
		UserID:        req.UserID,
		OrderID:       req.OrderID,
		OrderAmount:   orderAmount,
		ShippingCost:  shipping,
		ProductIDs:    req.ProductIDs,
		HasPriorOrder: req.HasPriorOrder,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, applyResponse{
		CouponID:       resp.CouponID,
		Code:           resp.Code,
		DiscountType:   resp.DiscountType,
		DiscountAmount: resp.DiscountAmount.String(),
		UsedCount:      resp.UsedCount,
	})
}
