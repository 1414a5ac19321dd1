package capture

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"assetly-backend/internal/domain"
)

// ErrAnalysisUnavailable marks a failed or unusable AI extraction. Smart
// capture recovers with the local keyword analyzer.
var ErrAnalysisUnavailable = errors.New("ai analysis unavailable")

const defaultChatCompletionsURL = "https://api.deepseek.com/v1/chat/completions"

// DeepSeekAnalyzer extracts an asset draft from captured text via the
// DeepSeek chat-completions API. Single attempt, bounded timeout.
type DeepSeekAnalyzer struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type draftPayload struct {
	Name     string           `json:"name"`
	Category string           `json:"category"`
	Amount   *decimal.Decimal `json:"amount"`
	Remark   string           `json:"remark"`
}

var jsonObjectRe = regexp.MustCompile(`\{[\s\S]*\}`)

func (a *DeepSeekAnalyzer) url() string {
	if a.BaseURL != "" {
		return strings.TrimRight(a.BaseURL, "/") + "/v1/chat/completions"
	}
	return defaultChatCompletionsURL
}

func (a *DeepSeekAnalyzer) AnalyzeText(ctx context.Context, text string) (*AssetDraft, error) {
	if a.APIKey == "" {
		return nil, ErrAnalysisUnavailable
	}
	if a.Client == nil {
		a.Client = &http.Client{Timeout: 20 * time.Second}
	}

	body, err := json.Marshal(chatRequest{
		Model:       "deepseek-chat",
		Messages:    []chatMessage{{Role: "user", Content: extractionPrompt(text)}},
		Temperature: 0.2,
		MaxTokens:   1000,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.APIKey)

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrAnalysisUnavailable, resp.StatusCode)
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisUnavailable, err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty completion", ErrAnalysisUnavailable)
	}
	return parseDraft(chat.Choices[0].Message.Content)
}

func parseDraft(content string) (*AssetDraft, error) {
	match := jsonObjectRe.FindString(content)
	if match == "" {
		return nil, fmt.Errorf("%w: no JSON in completion", ErrAnalysisUnavailable)
	}
	var payload draftPayload
	if err := json.Unmarshal([]byte(match), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisUnavailable, err)
	}

	category := domain.Category(payload.Category)
	if payload.Name == "" || !category.Valid() {
		return nil, fmt.Errorf("%w: incomplete draft", ErrAnalysisUnavailable)
	}
	amount := decimal.Zero
	if payload.Amount != nil && payload.Amount.GreaterThan(decimal.Zero) {
		amount = *payload.Amount
	}
	return &AssetDraft{
		Name:     payload.Name,
		Category: category,
		Amount:   amount,
		Remark:   payload.Remark,
		Source:   "ai",
	}, nil
}

func extractionPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString("You are a personal asset management assistant. The following text was ")
	sb.WriteString("captured by OCR from a product page, receipt, bill, or account screen.\n\n")
	sb.WriteString("Text:\n")
	sb.WriteString(text)
	sb.WriteString("\n\nExtract:\n")
	sb.WriteString("1. name: the shortest natural name for the asset (a product description like ")
	sb.WriteString("\"premium non-slip extra-wide yoga mat 10mm 2025 edition\" becomes \"yoga mat\"; ")
	sb.WriteString("a bank becomes \"<bank name> deposit\").\n")
	sb.WriteString("2. category: exactly one of Cash, Deposit, RealEstate, Vehicle, Fund, Stock, Other.\n")
	sb.WriteString("3. amount: the main price or balance as a plain number (¥/￥/$/元/万 formats may appear; ")
	sb.WriteString("万 means x10000). Use 0 when no amount is present.\n")
	sb.WriteString("4. remark: important supplementary detail (model, size, date), at most 50 characters.\n\n")
	sb.WriteString("Respond with only a valid JSON object: ")
	sb.WriteString(`{"name": "...", "category": "...", "amount": 0, "remark": "..."}`)
	return sb.String()
}
