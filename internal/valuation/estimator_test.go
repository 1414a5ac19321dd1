package valuation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetly-backend/internal/domain"
)

var now = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func assetWithPurchase(category domain.Category, amount int64, purchaseDate string) *domain.Asset {
	a := &domain.Asset{
		Name:      "test asset",
		Category:  category,
		Amount:    decimal.NewFromInt(amount),
		CreatedAt: now,
	}
	if purchaseDate != "" {
		a.PurchaseDate = &purchaseDate
	}
	return a
}

func TestEstimate_CashAndDepositNeverDepreciate(t *testing.T) {
	for _, c := range []domain.Category{domain.CategoryCash, domain.CategoryDeposit} {
		est, err := EstimateCurrentValue(assetWithPurchase(c, 10000, "2015-01-01"), now)
		require.NoError(t, err)
		assert.True(t, est.EstimatedValue.Equal(decimal.NewFromInt(10000)))
		assert.Zero(t, est.DepreciationRate)
	}
}

func TestEstimate_VehicleDepreciation(t *testing.T) {
	// Two years at the standard 15% vehicle rate: about 70% residual.
	est, err := EstimateCurrentValue(assetWithPurchase(domain.CategoryVehicle, 100000, "2024-06-01"), now)
	require.NoError(t, err)
	assert.InDelta(t, 0.30, est.DepreciationRate, 0.01)
	assert.True(t, est.EstimatedValue.LessThan(decimal.NewFromInt(72000)))
	assert.True(t, est.EstimatedValue.GreaterThan(decimal.NewFromInt(68000)))
}

func TestEstimate_LuxuryVehicleHoldsValueBetter(t *testing.T) {
	standard := assetWithPurchase(domain.CategoryVehicle, 500000, "2023-06-01")
	luxury := assetWithPurchase(domain.CategoryVehicle, 500000, "2023-06-01")
	luxury.Name = "宝马 X5"

	stdEst, err := EstimateCurrentValue(standard, now)
	require.NoError(t, err)
	luxEst, err := EstimateCurrentValue(luxury, now)
	require.NoError(t, err)
	assert.True(t, luxEst.EstimatedValue.GreaterThan(stdEst.EstimatedValue))
}

func TestEstimate_DepreciationCappedAt80Percent(t *testing.T) {
	// 10-year-old electronics would exceed the cap without clamping.
	a := assetWithPurchase(domain.CategoryOther, 10000, "2016-06-01")
	a.Name = "laptop"

	est, err := EstimateCurrentValue(a, now)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, est.DepreciationRate, 0.001)
	assert.True(t, est.EstimatedValue.GreaterThanOrEqual(decimal.NewFromInt(1000)), "10%% floor holds")
}

func TestEstimate_PrimeLocationPropertyAppreciates(t *testing.T) {
	a := assetWithPurchase(domain.CategoryRealEstate, 1000000, "2021-06-01")
	a.Remark = "核心地段"

	est, err := EstimateCurrentValue(a, now)
	require.NoError(t, err)
	assert.True(t, est.EstimatedValue.GreaterThan(decimal.NewFromInt(1000000)))
}

func TestEstimate_FallsBackToCreatedAt(t *testing.T) {
	a := assetWithPurchase(domain.CategoryStock, 50000, "")
	a.CreatedAt = now.AddDate(-1, 0, 0)

	est, err := EstimateCurrentValue(a, now)
	require.NoError(t, err)
	assert.InDelta(t, 0.08, est.DepreciationRate, 0.005)
}

func TestEstimate_InvalidRecord(t *testing.T) {
	a := assetWithPurchase(domain.CategoryVehicle, 0, "2024-01-01")
	_, err := EstimateCurrentValue(a, now)
	assert.ErrorIs(t, err, domain.ErrInvalidRecord)
}
