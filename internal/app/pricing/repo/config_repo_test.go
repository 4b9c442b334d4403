package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gemforge/pricing-service/internal/app/pricing/domain"
)

func TestConfigConversionRoundTrip(t *testing.T) {
	original := domain.DefaultConfig()
	original.SizeAdjustments = []domain.RingSizeAdjustment{
		{Size: "7", PercentageAdjustment: 10},
		{Size: "4", PercentageAdjustment: -5},
	}
	original.Tax = domain.TaxSettings{Enabled: true, Percentage: 5, IncludedInPrice: true}

	data, err := domainToData(original)
	require.NoError(t, err)
	assert.Equal(t, domain.ConfigAggregateID, data.ConfigID)
	require.True(t, data.Compositions.Valid)

	restored, err := dataToDomain(data)
	require.NoError(t, err)

	require.Len(t, restored.CompositionRates, len(original.CompositionRates))
	rate, ok := restored.CompositionRate(domain.Composition14K)
	require.True(t, ok)
	assert.Equal(t, "35.00", rate.PricePerGram.String())
	assert.Equal(t, 1.1, rate.MultiplierFor(domain.MaterialWhiteGold))

	diamond, ok := restored.DiamondRate(domain.DiamondNatural)
	require.True(t, ok)
	assert.Equal(t, "500.00", diamond.PricePerCarat.String())

	adj, ok := restored.SizeAdjustment("4")
	require.True(t, ok)
	assert.Equal(t, -5.0, adj)

	assert.True(t, restored.Tax.Enabled)
	assert.True(t, restored.Tax.IncludedInPrice)
	assert.Equal(t, 5.0, restored.Tax.Percentage)
	assert.Equal(t, "100.00", restored.AdditionalCosts.MinimumPrice.String())
}

func TestDataToDomainRejectsInvalidConfig(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.AdditionalCosts.ProfitMarginPct = 150

	data, err := domainToData(cfg)
	require.NoError(t, err)

	_, err = dataToDomain(data)
	assert.Error(t, err)
}
