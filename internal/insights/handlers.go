package insights

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"assetly-backend/internal/domain"
	"assetly-backend/internal/pkg/response"
)

// Handlers bundles the read-only analytics endpoints.
type Handlers struct {
	Service *Service
}

// ViewSummary GET /api/v1/insights/view-summary
func (h *Handlers) ViewSummary(c *fiber.Ctx) error {
	summary, err := h.Service.Summary(c.Context())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRecord) {
			return response.Error(c, "Stored assets contain an invalid record", fiber.StatusUnprocessableEntity, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Summary computed successfully", summary, nil)
}

// ViewTrend GET /api/v1/insights/view-trend
func (h *Handlers) ViewTrend(c *fiber.Ctx) error {
	trend, err := h.Service.Trend(c.Context())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRecord) {
			return response.Error(c, "Stored assets contain an invalid record", fiber.StatusUnprocessableEntity, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Trend computed successfully", trend, map[string]interface{}{
		"points": len(trend),
	})
}

// ViewAnalysis GET /api/v1/insights/view-analysis
func (h *Handlers) ViewAnalysis(c *fiber.Ctx) error {
	analysis, err := h.Service.Analyze(c.Context())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRecord) {
			return response.Error(c, "Stored assets contain an invalid record", fiber.StatusUnprocessableEntity, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Analysis computed successfully", analysis, nil)
}
