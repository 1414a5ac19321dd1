package capture

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const analysisTimeout = 20 * time.Second

// Service runs the smart-capture pipeline: OCR when the input is an image,
// then AI extraction with a deterministic local fallback. API keys are
// passed per call because the user can change them in settings at runtime.
type Service struct {
	OCR        TextRecognizer
	AIBaseURL  string // test override; empty means the public API
	HTTPClient *http.Client
	Local      LocalAnalyzer
}

// AnalyzeText produces a draft from already-extracted text. The AI path is
// attempted once when a key is configured; every failure falls back to the
// local keyword analyzer.
func (s *Service) AnalyzeText(ctx context.Context, text, aiKey string) (*AssetDraft, error) {
	if aiKey != "" {
		aiCtx, cancel := context.WithTimeout(ctx, analysisTimeout)
		defer cancel()

		analyzer := &DeepSeekAnalyzer{APIKey: aiKey, BaseURL: s.AIBaseURL, Client: s.HTTPClient}
		draft, err := analyzer.AnalyzeText(aiCtx, text)
		if err == nil {
			return draft, nil
		}
		log.Warn().Err(err).Msg("ai capture analysis failed, using local analyzer")
	}
	return s.Local.AnalyzeText(ctx, text)
}

// CaptureImage runs OCR on a base64 image and analyzes the recognized text.
// OCR failure is surfaced: without text there is nothing to analyze.
func (s *Service) CaptureImage(ctx context.Context, imageBase64, ocrKey, aiKey string) (*AssetDraft, error) {
	text, err := s.OCR.RecognizeText(ctx, imageBase64, ocrKey)
	if err != nil {
		return nil, err
	}
	return s.AnalyzeText(ctx, text, aiKey)
}
