package assets

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"assetly-backend/internal/domain"
	"assetly-backend/internal/pkg/response"
)

// Handlers bundles asset record handlers.
type Handlers struct {
	Service *Service
}

// CreateAsset POST /api/v1/assets/create-asset
func (h *Handlers) CreateAsset(c *fiber.Ctx) error {
	var in CreateInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	a, err := h.Service.Create(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRecord) {
			return response.Error(c, "Invalid asset record", fiber.StatusBadRequest, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.SuccessCreated(c, "Asset created successfully", a, nil)
}

// ViewAssets GET /api/v1/assets/view-assets
func (h *Handlers) ViewAssets(c *fiber.Ctx) error {
	assets, err := h.Service.List(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Assets fetched successfully", assets, map[string]interface{}{
		"count": len(assets),
	})
}

// UpdateAsset PUT /api/v1/assets/update-asset/:id
func (h *Handlers) UpdateAsset(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return response.Error(c, "Asset id is required", fiber.StatusBadRequest, nil)
	}
	var in UpdateInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	a, err := h.Service.Update(c.Context(), id, in)
	switch {
	case err == nil:
		return response.Success(c, "Asset updated successfully", a, nil)
	case errors.Is(err, ErrNotFound):
		return response.Error(c, "Asset not found", fiber.StatusNotFound, nil)
	case errors.Is(err, domain.ErrInvalidRecord):
		return response.Error(c, "Invalid asset record", fiber.StatusBadRequest, nil)
	default:
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
}

// RemoveAsset DELETE /api/v1/assets/remove-asset/:id
func (h *Handlers) RemoveAsset(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return response.Error(c, "Asset id is required", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return response.Error(c, "Asset not found", fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Asset removed successfully", nil, nil)
}

// ClearAssets POST /api/v1/assets/clear-assets
func (h *Handlers) ClearAssets(c *fiber.Ctx) error {
	if err := h.Service.ClearAll(c.Context()); err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "All assets cleared", nil, nil)
}

// ImportAssets POST /api/v1/assets/import-assets
// Body is the raw JSON array produced by export-assets.
func (h *Handlers) ImportAssets(c *fiber.Ctx) error {
	imported, skipped, err := h.Service.Import(c.Context(), c.Body())
	switch {
	case err == nil:
		msg := fmt.Sprintf("Imported %d assets", imported)
		if skipped > 0 {
			msg = fmt.Sprintf("Imported %d assets, skipped %d invalid entries", imported, skipped)
		}
		return response.Success(c, msg, map[string]interface{}{
			"imported": imported,
			"skipped":  skipped,
		}, nil)
	case errors.Is(err, ErrNoValidEntries):
		return response.Error(c, "No valid assets found in file", fiber.StatusBadRequest, map[string]interface{}{
			"skipped": skipped,
		})
	case errors.Is(err, domain.ErrInvalidRecord):
		return response.Error(c, "Invalid data format: expected a JSON array of assets", fiber.StatusBadRequest, nil)
	default:
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
}

// ExportAssets GET /api/v1/assets/export-assets
func (h *Handlers) ExportAssets(c *fiber.Ctx) error {
	assets, err := h.Service.Export(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	c.Set("Content-Disposition", `attachment; filename="assetly-backup.json"`)
	return c.Status(fiber.StatusOK).JSON(assets)
}
