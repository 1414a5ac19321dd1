package assets

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(t *testing.T) (*fiber.App, *Service) {
	svc := setupService(t)
	h := &Handlers{Service: svc}

	app := fiber.New()
	group := app.Group("/api/v1/assets")
	group.Post("/create-asset", h.CreateAsset)
	group.Get("/view-assets", h.ViewAssets)
	group.Put("/update-asset/:id", h.UpdateAsset)
	group.Delete("/remove-asset/:id", h.RemoveAsset)
	group.Post("/clear-assets", h.ClearAssets)
	group.Post("/import-assets", h.ImportAssets)
	group.Get("/export-assets", h.ExportAssets)
	return app, svc
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}) (*fiber.Map, int) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	var parsed fiber.Map
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return &parsed, resp.StatusCode
}

func TestCreateAsset_Handler(t *testing.T) {
	app, _ := setupApp(t)

	body, status := doJSON(t, app, "POST", "/api/v1/assets/create-asset", map[string]interface{}{
		"name":     "emergency fund",
		"category": "Deposit",
		"amount":   50000,
	})
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "success", (*body)["status"])

	data := (*body)["data"].(map[string]interface{})
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, "Deposit", data["category"])
}

func TestCreateAsset_InvalidBody(t *testing.T) {
	app, _ := setupApp(t)

	_, status := doJSON(t, app, "POST", "/api/v1/assets/create-asset", map[string]interface{}{
		"name":     "bad",
		"category": "NotACategory",
		"amount":   100,
	})
	assert.Equal(t, fiber.StatusBadRequest, status)

	_, status = doJSON(t, app, "POST", "/api/v1/assets/create-asset", map[string]interface{}{
		"name":     "bad",
		"category": "Cash",
		"amount":   -1,
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestUpdateAsset_NotFound(t *testing.T) {
	app, _ := setupApp(t)

	_, status := doJSON(t, app, "PUT", "/api/v1/assets/update-asset/nope", map[string]interface{}{
		"name": "renamed",
	})
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestImportAssets_Handler(t *testing.T) {
	app, _ := setupApp(t)

	raw := `[
		{"id": "a1", "name": "savings", "category": "Deposit", "amount": 20000, "createdAt": "2023-01-10T08:00:00Z"},
		{"id": "a2", "name": "stock", "category": "Stock", "amount": 3000, "createdAt": "2023-02-01T08:00:00Z"},
		{"id": "a3", "name": "broken", "category": "Stock", "amount": 100}
	]`
	req := httptest.NewRequest("POST", "/api/v1/assets/import-assets", bytes.NewReader([]byte(raw)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body fiber.Map
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["imported"])
	assert.Equal(t, float64(1), data["skipped"])
}

func TestExportAssets_Handler(t *testing.T) {
	app, _ := setupApp(t)

	_, status := doJSON(t, app, "POST", "/api/v1/assets/create-asset", map[string]interface{}{
		"name":     "wallet",
		"category": "Cash",
		"amount":   800,
	})
	require.Equal(t, fiber.StatusCreated, status)

	req := httptest.NewRequest("GET", "/api/v1/assets/export-assets", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "assetly-backup.json")

	var exported []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&exported))
	require.Len(t, exported, 1)
	assert.Equal(t, "wallet", exported[0]["name"])
}

func TestClearAssets_Handler(t *testing.T) {
	app, svc := setupApp(t)

	_, status := doJSON(t, app, "POST", "/api/v1/assets/create-asset", map[string]interface{}{
		"name":     "wallet",
		"category": "Cash",
		"amount":   800,
	})
	require.Equal(t, fiber.StatusCreated, status)

	_, status = doJSON(t, app, "POST", "/api/v1/assets/clear-assets", nil)
	assert.Equal(t, fiber.StatusOK, status)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}
