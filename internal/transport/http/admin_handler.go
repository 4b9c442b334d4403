package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gemforge/pricing-service/internal/app/coupon/usecases/create_coupon"
	"github.com/gemforge/pricing-service/internal/app/pricing/contracts"
	"github.com/gemforge/pricing-service/internal/app/pricing/domain"
	"github.com/gemforge/pricing-service/internal/app/pricing/usecases/reset_config"
	"github.com/gemforge/pricing-service/internal/app/pricing/usecases/update_config"
	"github.com/gemforge/pricing-service/internal/pkg/money"
)

// AdminHandler exposes the configuration and coupon management
// endpoints. These sit behind the gateway's admin authentication.
type AdminHandler struct {
	configRepo   contracts.ConfigRepository
	updateConfig *update_config.Interactor
	resetConfig  *reset_config.Interactor
	createCoupon *create_coupon.Interactor
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	configRepo contracts.ConfigRepository,
	updateConfig *update_config.Interactor,
	resetConfig *reset_config.Interactor,
	createCoupon *create_coupon.Interactor,
) *AdminHandler {
	return &AdminHandler{
		configRepo:   configRepo,
		updateConfig: updateConfig,
		resetConfig:  resetConfig,
		createCoupon: createCoupon,
	}
}

type materialRateDTO struct {
	Material        string  `json:"material"`
	PriceMultiplier float64 `json:"price_multiplier"`
}

type compositionRateDTO struct {
	Composition   string            `json:"composition"`
	PricePerGram  float64           `json:"price_per_gram"`
	MaterialRates []materialRateDTO `json:"material_rates,omitempty"`
	Enabled       bool              `json:"enabled"`
}

type diamondRateDTO struct {
	Type          string  `json:"type"`
	PricePerCarat float64 `json:"price_per_carat"`
	FixedPrice    float64 `json:"fixed_price"`
	Enabled       bool    `json:"enabled"`
}

type ringSizeDTO struct {
	Size                 string  `json:"size"`
	PercentageAdjustment float64 `json:"percentage_adjustment"`
}

type additionalCostsDTO struct {
	LaborCost        float64 `json:"labor_cost"`
	LaborCostPerGram float64 `json:"labor_cost_per_gram"`
	ProfitMarginPct  float64 `json:"profit_margin_pct"`
	MinimumPrice     float64 `json:"minimum_price"`
}

type taxDTO struct {
	Enabled         bool    `json:"enabled"`
	Percentage      float64 `json:"percentage"`
	IncludedInPrice bool    `json:"included_in_price"`
}

type configDTO struct {
	Compositions    []compositionRateDTO `json:"compositions"`
	Diamonds        []diamondRateDTO     `json:"diamonds"`
	RingSizes       []ringSizeDTO        `json:"ring_sizes"`
	AdditionalCosts additionalCostsDTO   `json:"additional_costs"`
	Tax             taxDTO               `json:"tax"`
}

func configToDTO(cfg *domain.Config) configDTO {
	dto := configDTO{
		Compositions: make([]compositionRateDTO, 0, len(cfg.CompositionRates)),
		Diamonds:     make([]diamondRateDTO, 0, len(cfg.DiamondRates)),
		RingSizes:    make([]ringSizeDTO, 0, len(cfg.SizeAdjustments)),
		AdditionalCosts: additionalCostsDTO{
			LaborCost:        cfg.AdditionalCosts.LaborCost.Float64(),
			LaborCostPerGram: cfg.AdditionalCosts.LaborCostPerGram.Float64(),
			ProfitMarginPct:  cfg.AdditionalCosts.ProfitMarginPct,
			MinimumPrice:     cfg.AdditionalCosts.MinimumPrice.Float64(),
		},
		Tax: taxDTO{
			Enabled:         cfg.Tax.Enabled,
			Percentage:      cfg.Tax.Percentage,
			IncludedInPrice: cfg.Tax.IncludedInPrice,
		},
	}
	for _, cr := range cfg.CompositionRates {
		materials := make([]materialRateDTO, 0, len(cr.MaterialRates))
		for _, mr := range cr.MaterialRates {
			materials = append(materials, materialRateDTO{
				Material:        string(mr.Material),
				PriceMultiplier: mr.PriceMultiplier,
			})
		}
		dto.Compositions = append(dto.Compositions, compositionRateDTO{
			Composition:   string(cr.Composition),
			PricePerGram:  cr.PricePerGram.Float64(),
			MaterialRates: materials,
			Enabled:       cr.Enabled,
		})
	}
	for _, dr := range cfg.DiamondRates {
		dto.Diamonds = append(dto.Diamonds, diamondRateDTO{
			Type:          string(dr.Type),
			PricePerCarat: dr.PricePerCarat.Float64(),
			FixedPrice:    dr.FixedPrice.Float64(),
			Enabled:       dr.Enabled,
		})
	}
	for _, sa := range cfg.SizeAdjustments {
		dto.RingSizes = append(dto.RingSizes, ringSizeDTO{
			Size:                 sa.Size,
			PercentageAdjustment: sa.PercentageAdjustment,
		})
	}
	return dto
}

func dtoToConfig(dto configDTO) (*domain.Config, error) {
	cfg := &domain.Config{
		CompositionRates: make([]domain.CompositionRate, 0, len(dto.Compositions)),
		DiamondRates:     make([]domain.DiamondRate, 0, len(dto.Diamonds)),
		SizeAdjustments:  make([]domain.RingSizeAdjustment, 0, len(dto.RingSizes)),
		Tax: domain.TaxSettings{
			Enabled:         dto.Tax.Enabled,
			Percentage:      dto.Tax.Percentage,
			IncludedInPrice: dto.Tax.IncludedInPrice,
		},
	}
	for _, cr := range dto.Compositions {
		ppg, err := money.FromFloat(cr.PricePerGram)
		if err != nil {
			return nil, domain.NewValidationError("compositions", "invalid price_per_gram")
		}
		materials := make([]domain.MaterialRate, 0, len(cr.MaterialRates))
		for _, mr := range cr.MaterialRates {
			materials = append(materials, domain.MaterialRate{
				Material:        domain.Material(mr.Material),
				PriceMultiplier: mr.PriceMultiplier,
			})
		}
		cfg.CompositionRates = append(cfg.CompositionRates, domain.CompositionRate{
			Composition:   domain.Composition(cr.Composition),
			PricePerGram:  ppg,
			MaterialRates: materials,
			Enabled:       cr.Enabled,
		})
	}
	for _, dr := range dto.Diamonds {
		perCarat, err := money.FromFloat(dr.PricePerCarat)
		if err != nil {
			return nil, domain.NewValidationError("diamonds", "invalid price_per_carat")
		}
		fixed, err := money.FromFloat(dr.FixedPrice)
		if err != nil {
			return nil, domain.NewValidationError("diamonds", "invalid fixed_price")
		}
		cfg.DiamondRates = append(cfg.DiamondRates, domain.DiamondRate{
			Type:          domain.DiamondType(dr.Type),
			PricePerCarat: perCarat,
			FixedPrice:    fixed,
			Enabled:       dr.Enabled,
		})
	}
	for _, sa := range dto.RingSizes {
		cfg.SizeAdjustments = append(cfg.SizeAdjustments, domain.RingSizeAdjustment{
			Size:                 sa.Size,
			PercentageAdjustment: sa.PercentageAdjustment,
		})
	}

	costs := dto.AdditionalCosts
	laborCost, err := money.FromFloat(costs.LaborCost)
	if err != nil {
		return nil, domain.NewValidationError("additional_costs", "invalid labor_cost")
	}
	laborPerGram, err := money.FromFloat(costs.LaborCostPerGram)
	if err != nil {
		return nil, domain.NewValidationError("additional_costs", "invalid labor_cost_per_gram")
	}
	minimum, err := money.FromFloat(costs.MinimumPrice)
	if err != nil {
		return nil, domain.NewValidationError("additional_costs", "invalid minimum_price")
	}
	cfg.AdditionalCosts = domain.AdditionalCosts{
		LaborCost:        laborCost,
		LaborCostPerGram: laborPerGram,
		ProfitMarginPct:  costs.ProfitMarginPct,
		MinimumPrice:     minimum,
	}
	return cfg, nil
}

// GetConfig handles GET /api/v1/admin/config.
func (h *AdminHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.configRepo.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, configToDTO(cfg))
}

// PutConfig handles PUT /api/v1/admin/config.
func (h *AdminHandler) PutConfig(w http.ResponseWriter, r *http.Request) {
	var dto configDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	cfg, err := dtoToConfig(dto)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.updateConfig.Execute(r.Context(), &update_config.Request{
		Config:    cfg,
		UpdatedBy: r.Header.Get("X-Admin-User"),
	}); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, configToDTO(cfg))
}

// ResetConfig handles POST /api/v1/admin/config/reset.
func (h *AdminHandler) ResetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.resetConfig.Execute(r.Context(), &reset_config.Request{
		ResetBy: r.Header.Get("X-Admin-User"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, configToDTO(cfg))
}

type createCouponRequest struct {
	Code               string   `json:"code"`
	DiscountType       string   `json:"discount_type"`
	DiscountValue      float64  `json:"discount_value,omitempty"`
	DiscountPercent    float64  `json:"discount_percent,omitempty"`
	MaxDiscount        *float64 `json:"max_discount,omitempty"`
	MinOrderAmount     *float64 `json:"min_order_amount,omitempty"`
	UsageLimit         *int64   `json:"usage_limit,omitempty"`
	UsageLimitPerUser  int64    `json:"usage_limit_per_user,omitempty"`
	StartDate          string   `json:"start_date"`
	ExpiryDate         string   `json:"expiry_date"`
	ApplicableProducts []string `json:"applicable_products,omitempty"`
	ExcludedProducts   []string `json:"excluded_products,omitempty"`
	FirstTimeOnly      bool     `json:"first_time_only,omitempty"`
}

type createCouponResponse struct {
	CouponID string `json:"coupon_id"`
}

// CreateCoupon handles POST /api/v1/admin/coupons.
func (h *AdminHandler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var req createCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	startDate, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid start_date; use RFC3339"})
		return
	}
	expiryDate, err := time.Parse(time.RFC3339, req.ExpiryDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid expiry_date; use RFC3339"})
		return
	}

	value, err := money.FromFloat(req.DiscountValue)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid discount_value"})
		return
	}

	ucReq := &create_coupon.Request{
		Code:               req.Code,
		DiscountType:       req.DiscountType,
		DiscountValue:      value,
		DiscountPercent:    req.DiscountPercent,
		UsageLimit:         req.UsageLimit,
		UsageLimitPerUser:  req.UsageLimitPerUser,
		StartDate:          startDate,
		ExpiryDate:         expiryDate,
		ApplicableProducts: req.ApplicableProducts,
		ExcludedProducts:   req.ExcludedProducts,
		FirstTimeOnly:      req.FirstTimeOnly,
	}
	if req.MaxDiscount != nil {
		max, err := money.FromFloat(*req.MaxDiscount)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid max_discount"})
			return
		}
		ucReq.MaxDiscount = max
	}
	if req.MinOrderAmount != nil {
		min, err := money.FromFloat(*req.MinOrderAmount)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid min_order_amount"})
			return
		}
		ucReq.MinOrderAmount = min
	}

	couponID, err := h.createCoupon.Execute(r.Context(), ucReq)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createCouponResponse{CouponID: couponID})
}
