package capture

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"assetly-backend/internal/pkg/response"
	"assetly-backend/internal/settings"
)

// Handlers bundles smart-capture handlers. API keys are read from stored
// settings on every request.
type Handlers struct {
	Service  *Service
	Settings *settings.Service
}

type captureImageInput struct {
	Image string `json:"image"`
}

type analyzeTextInput struct {
	Text string `json:"text"`
}

// CaptureImage POST /api/v1/capture/capture-image
func (h *Handlers) CaptureImage(c *fiber.Ctx) error {
	var in captureImageInput
	if err := c.BodyParser(&in); err != nil || in.Image == "" {
		return response.Error(c, "A base64 image is required", fiber.StatusBadRequest, nil)
	}

	st, err := h.Settings.Get(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	if st.OCRAPIKey == "" {
		return response.Error(c, "OCR API key is not configured", fiber.StatusPreconditionFailed, nil)
	}

	draft, err := h.Service.CaptureImage(c.Context(), in.Image, st.OCRAPIKey, st.DeepSeekAPIKey)
	if err != nil {
		if errors.Is(err, ErrOCRFailed) {
			return response.Error(c, "Text recognition failed", fiber.StatusBadGateway, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Image analyzed successfully", draft, nil)
}

// AnalyzeText POST /api/v1/capture/analyze-text
func (h *Handlers) AnalyzeText(c *fiber.Ctx) error {
	var in analyzeTextInput
	if err := c.BodyParser(&in); err != nil || in.Text == "" {
		return response.Error(c, "Text to analyze is required", fiber.StatusBadRequest, nil)
	}

	st, err := h.Settings.Get(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}

	draft, err := h.Service.AnalyzeText(c.Context(), in.Text, st.DeepSeekAPIKey)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Text analyzed successfully", draft, nil)
}
