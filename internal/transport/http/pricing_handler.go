package http

import (
	"encoding/json"
	"net/http"

	"github.com/gemforge/pricing-service/internal/app/pricing/usecases/price_range"
	"github.com/gemforge/pricing-service/internal/app/pricing/usecases/quote_price"
)

// PricingHandler exposes the price calculation endpoints.
type PricingHandler struct {
	quote      *quote_price.Interactor
	priceRange *price_range.Interactor
}

// NewPricingHandler creates a new PricingHandler.
func NewPricingHandler(quote *quote_price.Interactor, priceRange *price_range.Interactor) *PricingHandler {
	return &PricingHandler{quote: quote, priceRange: priceRange}
}

type quoteRequest struct {
	Weight       float64 `json:"weight"`
	Composition  string  `json:"composition"`
	Material     string  `json:"material,omitempty"`
	DiamondType  string  `json:"diamond_type,omitempty"`
	DiamondCarat float64 `json:"diamond_carat,omitempty"`
	RingSize     string  `json:"ring_size,omitempty"`
}

type quoteResponse struct {
	Price string `json:"price"`
}

// Quote handles POST /api/v1/pricing/quote.
func (h *PricingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	resp, err := h.quote.Execute(r.Context(), &quote_price.Request{
		Weight:       req.Weight,
		Composition:  req.Composition,
		Material:     req.Material,
		DiamondType:  req.DiamondType,
		DiamondCarat: req.DiamondCarat,
		RingSize:     req.RingSize,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, quoteResponse{Price: resp.Price.String()})
}

type rangeRequest struct {
	Weight       float64  `json:"weight"`
	Compositions []string `json:"compositions"`
	Materials    []string `json:"materials,omitempty"`
	DiamondTypes []string `json:"diamond_types,omitempty"`
	DiamondCarat float64  `json:"diamond_carat,omitempty"`
	RingSizes    []string `json:"ring_sizes,omitempty"`
}

type rangeResponse struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// Range handles POST /api/v1/pricing/range.
func (h *PricingHandler) Range(w http.ResponseWriter, r *http.Request) {
	var req rangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	resp, err := h.priceRange.Execute(r.Context(), &price_range.Request{
		Weight:       req.Weight,
		Compositions: req.Compositions,
		Materials:    req.Materials,
		DiamondTypes: req.DiamondTypes,
		DiamondCarat: req.DiamondCarat,
		RingSizes:    req.RingSizes,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rangeResponse{
		Min: resp.Range.Min.String(),
		Max: resp.Range.Max.String(),
	})
}
