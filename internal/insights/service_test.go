package insights

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"assetly-backend/internal/analytics"
	"assetly-backend/internal/assets"
	"assetly-backend/internal/domain"
	"assetly-backend/internal/settings"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Asset{}, &domain.Settings{}))
	return &Service{
		Assets:   &assets.Service{DB: db},
		Settings: &settings.Service{DB: db},
		Scores:   analytics.DefaultScoreConfig(),
	}
}

func seed(t *testing.T, svc *Service, name string, cat domain.Category, amount int64) {
	t.Helper()
	_, err := svc.Assets.Create(context.Background(), assets.CreateInput{
		Name:     name,
		Category: cat,
		Amount:   decimal.NewFromInt(amount),
	})
	require.NoError(t, err)
}

func TestSummary_GroupsByCategory(t *testing.T) {
	svc := setupService(t)
	seed(t, svc, "Apartment", domain.CategoryRealEstate, 500000)
	seed(t, svc, "Wallet", domain.CategoryCash, 12000)
	seed(t, svc, "Savings", domain.CategoryCash, 8000)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.True(t, summary.GrandTotal.Equal(decimal.NewFromInt(520000)))
	assert.True(t, summary.Totals[domain.CategoryCash].Equal(decimal.NewFromInt(20000)))
	assert.True(t, summary.Totals[domain.CategoryVehicle].IsZero())
	assert.Len(t, summary.Totals, len(domain.Categories))
}

func TestTrend_EmptyPortfolio(t *testing.T) {
	svc := setupService(t)

	trend, err := svc.Trend(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, trend)
	assert.Empty(t, trend)
}

func TestAnalyze_WithoutEnrichmentKey(t *testing.T) {
	svc := setupService(t)
	seed(t, svc, "Index fund", domain.CategoryFund, 150000)
	seed(t, svc, "Checking", domain.CategoryDeposit, 30000)

	res, err := svc.Analyze(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Ranking.Basic, "no stored key must fall back to the local estimate")
	assert.GreaterOrEqual(t, res.Scores.Average, 0.0)
	assert.LessOrEqual(t, res.Scores.Average, 100.0)
	assert.True(t, res.Summary.GrandTotal.Equal(decimal.NewFromInt(180000)))
}

func TestAnalyze_ReadsSettingsOnce(t *testing.T) {
	svc := setupService(t)
	seed(t, svc, "Savings", domain.CategoryDeposit, 50000)

	var settingsQueries int
	require.NoError(t, svc.Settings.DB.Callback().Query().After("gorm:query").
		Register("count_settings_queries", func(tx *gorm.DB) {
			if tx.Statement.Table == "settings" {
				settingsQueries++
			}
		}))

	_, err := svc.Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, settingsQueries, "profile and enricher must share one settings read")
}

func TestAnalyze_UsesStoredProfile(t *testing.T) {
	svc := setupService(t)
	seed(t, svc, "Apartment", domain.CategoryRealEstate, 2000000)

	base, err := svc.Analyze(context.Background())
	require.NoError(t, err)

	_, err = svc.Settings.Update(context.Background(), settings.UpdateInput{
		Profile: &domain.Profile{
			BirthDate:  "1998-03-10",
			Education:  "master",
			Occupation: "software engineer",
			Location:   "Beijing",
		},
	})
	require.NoError(t, err)

	withProfile, err := svc.Analyze(context.Background())
	require.NoError(t, err)
	assert.Greater(t, withProfile.Scores.Average, base.Scores.Average,
		"demographic bonuses must raise the average")
}
