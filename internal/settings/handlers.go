package settings

import (
	"github.com/gofiber/fiber/v2"

	"assetly-backend/internal/domain"
	"assetly-backend/internal/pkg/response"
)

// Handlers bundles settings handlers.
type Handlers struct {
	Service *Service
}

// settingsView is the API shape: profile decoded, API keys masked down to
// a presence flag so the raw keys never leave the server.
type settingsView struct {
	HasOCRAPIKey      bool            `json:"hasOcrApiKey"`
	HasDeepSeekAPIKey bool            `json:"hasDeepseekApiKey"`
	Profile           *domain.Profile `json:"profile"`
}

func viewOf(st *domain.Settings) (settingsView, error) {
	v := settingsView{
		HasOCRAPIKey:      st.OCRAPIKey != "",
		HasDeepSeekAPIKey: st.DeepSeekAPIKey != "",
	}
	p, err := DecodeProfile(st)
	if err != nil {
		return v, err
	}
	v.Profile = p
	return v, nil
}

// ViewSettings GET /api/v1/settings/view-settings
func (h *Handlers) ViewSettings(c *fiber.Ctx) error {
	st, err := h.Service.Get(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	v, err := viewOf(st)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Settings fetched successfully", v, nil)
}

// UpdateSettings PUT /api/v1/settings/update-settings
func (h *Handlers) UpdateSettings(c *fiber.Ctx) error {
	var in UpdateInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	st, err := h.Service.Update(c.Context(), in)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	v, err := viewOf(st)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Settings updated successfully", v, nil)
}
