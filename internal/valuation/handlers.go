package valuation

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"assetly-backend/internal/assets"
	"assetly-backend/internal/domain"
	"assetly-backend/internal/pkg/response"
)

// Handlers bundles value-estimation handlers.
type Handlers struct {
	Assets *assets.Service
}

// EstimateValue GET /api/v1/valuation/estimate-value/:id
func (h *Handlers) EstimateValue(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return response.Error(c, "Asset id is required", fiber.StatusBadRequest, nil)
	}

	a, err := h.Assets.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, assets.ErrNotFound) {
			return response.Error(c, "Asset not found", fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}

	est, err := EstimateCurrentValue(a, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRecord) {
			return response.Error(c, "Asset record is not valid for estimation", fiber.StatusUnprocessableEntity, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Value estimated successfully", est, nil)
}
