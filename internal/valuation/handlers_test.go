package valuation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"assetly-backend/internal/assets"
	"assetly-backend/internal/domain"
)

func setupApp(t *testing.T) (*fiber.App, *assets.Service) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Asset{}))

	svc := &assets.Service{DB: db}
	h := &Handlers{Assets: svc}
	app := fiber.New()
	app.Get("/valuation/estimate-value/:id", h.EstimateValue)
	return app, svc
}

func TestEstimateValue_ReturnsEstimate(t *testing.T) {
	app, svc := setupApp(t)
	date := "2024-01-10"
	a, err := svc.Create(context.Background(), assets.CreateInput{
		Name:         "Family car",
		Category:     domain.CategoryVehicle,
		Amount:       decimal.NewFromInt(100000),
		PurchaseDate: &date,
	})
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/valuation/estimate-value/"+a.ID, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	data := body["data"].(map[string]interface{})
	assert.NotEmpty(t, data["estimatedValue"])
	assert.NotEmpty(t, data["reasoning"])
	assert.Greater(t, data["depreciationRate"].(float64), 0.0)
}

func TestEstimateValue_NotFound(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/valuation/estimate-value/missing-id", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
