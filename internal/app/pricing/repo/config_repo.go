package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/gemforge/pricing-service/internal/app/pricing/contracts"
	"github.com/gemforge/pricing-service/internal/app/pricing/domain"
	"github.com/gemforge/pricing-service/internal/models/m_config"
	"github.com/gemforge/pricing-service/internal/pkg/money"
)

// ConfigRepo implements ConfigRepository for Spanner.
// The configuration lives in a single row; when that row is absent the
// built-in defaults are returned instead of an error, so deleting the
// row is how "reset to defaults" works.
type ConfigRepo struct {
	client *spanner.Client
	model  *m_config.Model
}

// NewConfigRepo creates a new ConfigRepo.
func NewConfigRepo(client *spanner.Client) contracts.ConfigRepository {
	return &ConfigRepo{
		client: client,
		model:  m_config.NewModel(),
	}
}

// Get retrieves the current pricing configuration.
func (r *ConfigRepo) Get(ctx context.Context) (*domain.Config, error) {
	row, err := r.client.Single().ReadRow(ctx, m_config.TableName, spanner.Key{domain.ConfigAggregateID}, []string{
		m_config.ConfigID,
		m_config.Compositions,
		m_config.Diamonds,
		m_config.RingSizes,
		m_config.AdditionalCosts,
		m_config.Tax,
		m_config.CreatedAt,
		m_config.UpdatedAt,
	})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return domain.DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read pricing config: %w", err)
	}

	var data m_config.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse pricing config: %w", err)
	}

	return dataToDomain(&data)
}

// UpsertMut creates a mutation replacing the stored configuration.
func (r *ConfigRepo) UpsertMut(cfg *domain.Config) (*spanner.Mutation, error) {
	data, err := domainToData(cfg)
	if err != nil {
		return nil, err
	}
	return r.model.UpsertMut(data), nil
}

// DeleteMut creates a mutation removing the stored configuration.
func (r *ConfigRepo) DeleteMut() *spanner.Mutation {
	return r.model.DeleteMut(domain.ConfigAggregateID)
}

// JSON document shapes for the rate sections. Money is stored as an
// exact numerator/denominator pair, matching the coupon tables.
type moneyDoc struct {
	Numerator   int64 `json:"numerator"`
	Denominator int64 `json:"denominator"`
}

type materialRateDoc struct {
	Material        string  `json:"material"`
	PriceMultiplier float64 `json:"price_multiplier"`
}

type compositionRateDoc struct {
	Composition   string            `json:"composition"`
	PricePerGram  moneyDoc          `json:"price_per_gram"`
	MaterialRates []materialRateDoc `json:"material_rates"`
	Enabled       bool              `json:"enabled"`
}

type diamondRateDoc struct {
	Type          string   `json:"type"`
	PricePerCarat moneyDoc `json:"price_per_carat"`
	FixedPrice    moneyDoc `json:"fixed_price"`
	Enabled       bool     `json:"enabled"`
}

type ringSizeDoc struct {
	Size                 string  `json:"size"`
	PercentageAdjustment float64 `json:"percentage_adjustment"`
}

type additionalCostsDoc struct {
	LaborCost        moneyDoc `json:"labor_cost"`
	LaborCostPerGram moneyDoc `json:"labor_cost_per_gram"`
	ProfitMarginPct  float64  `json:"profit_margin_pct"`
	MinimumPrice     moneyDoc `json:"minimum_price"`
}

type taxDoc struct {
	Enabled         bool    `json:"enabled"`
	Percentage      float64 `json:"percentage"`
	IncludedInPrice bool    `json:"included_in_price"`
}

func moneyToDoc(m *money.Money) (moneyDoc, error) {
	num, denom, err := m.Ratio()
	if err != nil {
		return moneyDoc{}, err
	}
	return moneyDoc{Numerator: num, Denominator: denom}, nil
}

func docToMoney(d moneyDoc) (*money.Money, error) {
	return money.New(d.Numerator, d.Denominator)
}

func domainToData(cfg *domain.Config) (*m_config.Data, error) {
	compositions := make([]compositionRateDoc, 0, len(cfg.CompositionRates))
	for _, cr := range cfg.CompositionRates {
		ppg, err := moneyToDoc(cr.PricePerGram)
		if err != nil {
			return nil, fmt.Errorf("composition %q: %w", cr.Composition, err)
		}
		materials := make([]materialRateDoc, 0, len(cr.MaterialRates))
		for _, mr := range cr.MaterialRates {
			materials = append(materials, materialRateDoc{
				Material:        string(mr.Material),
				PriceMultiplier: mr.PriceMultiplier,
			})
		}
		compositions = append(compositions, compositionRateDoc{
			Composition:   string(cr.Composition),
			PricePerGram:  ppg,
			MaterialRates: materials,
			Enabled:       cr.Enabled,
		})
	}

	diamonds := make([]diamondRateDoc, 0, len(cfg.DiamondRates))
	for _, dr := range cfg.DiamondRates {
		perCarat, err := moneyToDoc(dr.PricePerCarat)
		if err != nil {
			return nil, fmt.Errorf("diamond %q: %w", dr.Type, err)
		}
		fixed, err := moneyToDoc(dr.FixedPrice)
		if err != nil {
			return nil, fmt.Errorf("diamond %q: %w", dr.Type, err)
		}
		diamonds = append(diamonds, diamondRateDoc{
			Type:          string(dr.Type),
			PricePerCarat: perCarat,
			FixedPrice:    fixed,
			Enabled:       dr.Enabled,
		})
	}

	ringSizes := make([]ringSizeDoc, 0, len(cfg.SizeAdjustments))
	for _, sa := range cfg.SizeAdjustments {
		ringSizes = append(ringSizes, ringSizeDoc{
			Size:                 sa.Size,
			PercentageAdjustment: sa.PercentageAdjustment,
		})
	}

	laborCost, err := moneyToDoc(cfg.AdditionalCosts.LaborCost)
	if err != nil {
		return nil, fmt.Errorf("labor cost: %w", err)
	}
	laborPerGram, err := moneyToDoc(cfg.AdditionalCosts.LaborCostPerGram)
	if err != nil {
		return nil, fmt.Errorf("labor cost per gram: %w", err)
	}
	minimum, err := moneyToDoc(cfg.AdditionalCosts.MinimumPrice)
	if err != nil {
		return nil, fmt.Errorf("minimum price: %w", err)
	}

	return &m_config.Data{
		ConfigID:     domain.ConfigAggregateID,
		Compositions: spanner.NullJSON{Value: compositions, Valid: true},
		Diamonds:     spanner.NullJSON{Value: diamonds, Valid: true},
		RingSizes:    spanner.NullJSON{Value: ringSizes, Valid: true},
		AdditionalCosts: spanner.NullJSON{Value: additionalCostsDoc{
			LaborCost:        laborCost,
			LaborCostPerGram: laborPerGram,
			ProfitMarginPct:  cfg.AdditionalCosts.ProfitMarginPct,
			MinimumPrice:     minimum,
		}, Valid: true},
		Tax: spanner.NullJSON{Value: taxDoc{
			Enabled:         cfg.Tax.Enabled,
			Percentage:      cfg.Tax.Percentage,
			IncludedInPrice: cfg.Tax.IncludedInPrice,
		}, Valid: true},
	}, nil
}

// decodeJSON round-trips a NullJSON value into a typed document. The
// Spanner client decodes JSON columns into interface{} trees, so the
// only safe path back to a struct is through the encoder.
func decodeJSON(col spanner.NullJSON, out interface{}) error {
	if !col.Valid {
		return nil
	}
	raw, err := json.Marshal(col.Value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func dataToDomain(data *m_config.Data) (*domain.Config, error) {
	var (
		compositions []compositionRateDoc
		diamonds     []diamondRateDoc
		ringSizes    []ringSizeDoc
		costs        additionalCostsDoc
		tax          taxDoc
	)
	if err := decodeJSON(data.Compositions, &compositions); err != nil {
		return nil, fmt.Errorf("invalid compositions document: %w", err)
	}
	if err := decodeJSON(data.Diamonds, &diamonds); err != nil {
		return nil, fmt.Errorf("invalid diamonds document: %w", err)
	}
	if err := decodeJSON(data.RingSizes, &ringSizes); err != nil {
		return nil, fmt.Errorf("invalid ring sizes document: %w", err)
	}
	if err := decodeJSON(data.AdditionalCosts, &costs); err != nil {
		return nil, fmt.Errorf("invalid additional costs document: %w", err)
	}
	if err := decodeJSON(data.Tax, &tax); err != nil {
		return nil, fmt.Errorf("invalid tax document: %w", err)
	}

	cfg := &domain.Config{
		CompositionRates: make([]domain.CompositionRate, 0, len(compositions)),
		DiamondRates:     make([]domain.DiamondRate, 0, len(diamonds)),
		SizeAdjustments:  make([]domain.RingSizeAdjustment, 0, len(ringSizes)),
		Tax: domain.TaxSettings{
			Enabled:         tax.Enabled,
			Percentage:      tax.Percentage,
			IncludedInPrice: tax.IncludedInPrice,
		},
	}

	for _, doc := range compositions {
		ppg, err := docToMoney(doc.PricePerGram)
		if err != nil {
			return nil, fmt.Errorf("composition %q: %w", doc.Composition, err)
		}
		materials := make([]domain.MaterialRate, 0, len(doc.MaterialRates))
		for _, mr := range doc.MaterialRates {
			materials = append(materials, domain.MaterialRate{
				Material:        domain.Material(mr.Material),
				PriceMultiplier: mr.PriceMultiplier,
			})
		}
		cfg.CompositionRates = append(cfg.CompositionRates, domain.CompositionRate{
			Composition:   domain.Composition(doc.Composition),
			PricePerGram:  ppg,
			MaterialRates: materials,
			Enabled:       doc.Enabled,
		})
	}

	for _, doc := range diamonds {
		perCarat, err := docToMoney(doc.PricePerCarat)
		if err != nil {
			return nil, fmt.Errorf("diamond %q: %w", doc.Type, err)
		}
		fixed, err := docToMoney(doc.FixedPrice)
		if err != nil {
			return nil, fmt.Errorf("diamond %q: %w", doc.Type, err)
		}
		cfg.DiamondRates = append(cfg.DiamondRates, domain.DiamondRate{
			Type:          domain.DiamondType(doc.Type),
			PricePerCarat: perCarat,
			FixedPrice:    fixed,
			Enabled:       doc.Enabled,
		})
	}

	for _, doc := range ringSizes {
		cfg.SizeAdjustments = append(cfg.SizeAdjustments, domain.RingSizeAdjustment{
			Size:                 doc.Size,
			PercentageAdjustment: doc.PercentageAdjustment,
		})
	}

	laborCost, err := docToMoney(costs.LaborCost)
	if err != nil {
		return nil, fmt.Errorf("labor cost: %w", err)
	}
	laborPerGram, err := docToMoney(costs.LaborCostPerGram)
	if err != nil {
		return nil, fmt.Errorf("labor cost per gram: %w", err)
	}
	minimum, err := docToMoney(costs.MinimumPrice)
	if err != nil {
		return nil, fmt.Errorf("minimum price: %w", err)
	}
	cfg.AdditionalCosts = domain.AdditionalCosts{
		LaborCost:        laborCost,
		LaborCostPerGram: laborPerGram,
		ProfitMarginPct:  costs.ProfitMarginPct,
		MinimumPrice:     minimum,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("stored config failed validation: %w", err)
	}

	return cfg, nil
}
