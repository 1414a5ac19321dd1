package capture

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// ErrOCRFailed marks a failed or empty OCR call. Smart capture cannot
// proceed from an image without text, so this surfaces to the caller.
var ErrOCRFailed = errors.New("ocr recognition failed")

const defaultOCRURL = "https://api.ocr.space/parse/image"

var dataURLPrefixRe = regexp.MustCompile(`^data:image/(png|jpeg|jpg);base64,`)

// TextRecognizer extracts text from a base64-encoded image.
type TextRecognizer interface {
	RecognizeText(ctx context.Context, imageBase64, apiKey string) (string, error)
}

// OCRClient recognizes text via the OCR.space parse API.
type OCRClient struct {
	BaseURL string
	Client  *http.Client
}

type ocrParseResponse struct {
	ParsedResults []struct {
		ParsedText   string `json:"ParsedText"`
		ErrorMessage string `json:"ErrorMessage"`
	} `json:"ParsedResults"`
	IsErroredOnProcessing bool            `json:"IsErroredOnProcessing"`
	ErrorMessage          json.RawMessage `json:"ErrorMessage"`
}

func (c *OCRClient) url() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return defaultOCRURL
}

// RecognizeText sends the image to OCR.space (engine 2, simplified Chinese
// plus latin) and returns the parsed text.
func (c *OCRClient) RecognizeText(ctx context.Context, imageBase64, apiKey string) (string, error) {
	if apiKey == "" {
		return "", fmt.Errorf("%w: OCR API key is not configured", ErrOCRFailed)
	}
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 30 * time.Second}
	}

	form := url.Values{}
	form.Set("base64Image", dataURLPrefixRe.ReplaceAllString(imageBase64, ""))
	form.Set("language", "chs")
	form.Set("isOverlayRequired", "false")
	form.Set("scale", "true")
	form.Set("detectOrientation", "true")
	form.Set("OCREngine", "2")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(), strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOCRFailed, err)
	}
	req.Header.Set("apikey", apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOCRFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d", ErrOCRFailed, resp.StatusCode)
	}

	var parsed ocrParseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrOCRFailed, err)
	}
	if parsed.IsErroredOnProcessing {
		return "", fmt.Errorf("%w: processing error", ErrOCRFailed)
	}
	if len(parsed.ParsedResults) == 0 || parsed.ParsedResults[0].ParsedText == "" {
		return "", fmt.Errorf("%w: no text recognized", ErrOCRFailed)
	}
	return parsed.ParsedResults[0].ParsedText, nil
}
