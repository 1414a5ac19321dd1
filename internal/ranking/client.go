package ranking

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

// ErrEnrichmentUnavailable marks a failed or unusable enrichment call. The
// caller always recovers by falling back to the deterministic estimate.
var ErrEnrichmentUnavailable = errors.New("ranking enrichment unavailable")

const defaultChatCompletionsURL = "https://api.deepseek.com/v1/chat/completions"

// Input is what the enrichment service gets to reason about.
type Input struct {
	Profile      *domain.Profile
	TotalAssets  decimal.Decimal
	Totals       map[domain.Category]decimal.Decimal
	AverageScore float64
}

// Enricher produces a narrative percentile ranking from an external
// text-completion service. Implementations are best-effort: a single
// attempt with a bounded timeout, never retried.
type Enricher interface {
	RankingAnalysis(ctx context.Context, in Input) (*Result, error)
}

// DeepSeekEnricher calls the DeepSeek chat-completions API and extracts a
// JSON ranking from the completion text.
type DeepSeekEnricher struct {
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

type enrichmentPayload struct {
	RegionalPercentile *int   `json:"regionalPercentile"`
	NationalPercentile *int   `json:"nationalPercentile"`
	Narrative          string `json:"narrative"`
}

var jsonObjectRe = regexp.MustCompile(`\{[\s\S]*\}`)

func (e *DeepSeekEnricher) url() string {
	if e.BaseURL != "" {
		return strings.TrimRight(e.BaseURL, "/") + "/v1/chat/completions"
	}
	return defaultChatCompletionsURL
}

// RankingAnalysis asks the model for percentile placement. Any transport
// error, non-2xx status, or unparseable completion maps to
// ErrEnrichmentUnavailable.
func (e *DeepSeekEnricher) RankingAnalysis(ctx context.Context, in Input) (*Result, error) {
	if e.APIKey == "" {
		return nil, ErrEnrichmentUnavailable
	}
	if e.Client == nil {
		e.Client = &http.Client{Timeout: 10 * time.Second}
	}

	body, err := json.Marshal(chatRequest{
		Model:       "deepseek-chat",
		Messages:    []chatMessage{{Role: "user", Content: rankingPrompt(in)}},
		Temperature: 0.2,
		MaxTokens:   500,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnrichmentUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnrichmentUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.APIKey)

	resp, err := e.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnrichmentUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrEnrichmentUnavailable, resp.StatusCode)
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnrichmentUnavailable, err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty completion", ErrEnrichmentUnavailable)
	}

	return parseEnrichment(chat.Choices[0].Message.Content)
}

func parseEnrichment(content string) (*Result, error) {
	match := jsonObjectRe.FindString(content)
	if match == "" {
		return nil, fmt.Errorf("%w: no JSON in completion", ErrEnrichmentUnavailable)
	}
	var payload enrichmentPayload
	if err := json.Unmarshal([]byte(match), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnrichmentUnavailable, err)
	}
	if payload.RegionalPercentile == nil || payload.NationalPercentile == nil {
		return nil, fmt.Errorf("%w: incomplete completion", ErrEnrichmentUnavailable)
	}
	return &Result{
		RegionalPercentile: clampPercentile(*payload.RegionalPercentile),
		NationalPercentile: clampPercentile(*payload.NationalPercentile),
		Narrative:          payload.Narrative,
	}, nil
}

func rankingPrompt(in Input) string {
	var sb strings.Builder
	sb.WriteString("You are a personal finance assistant. Estimate where this person's ")
	sb.WriteString("household assets place them among peers in their region and nationally.\n\n")
	fmt.Fprintf(&sb, "Total assets: %s\n", in.TotalAssets.StringFixed(2))
	fmt.Fprintf(&sb, "Average heuristic score: %.1f\n", in.AverageScore)
	for _, c := range domain.Categories {
		if total, ok := in.Totals[c]; ok && total.GreaterThan(decimal.Zero) {
			fmt.Fprintf(&sb, "%s: %s\n", c, total.StringFixed(2))
		}
	}
	if p := in.Profile; p != nil {
		if p.BirthDate != "" {
			fmt.Fprintf(&sb, "Birth date: %s\n", p.BirthDate)
		}
		if p.Education != "" {
			fmt.Fprintf(&sb, "Education: %s\n", p.Education)
		}
		if p.Occupation != "" {
			fmt.Fprintf(&sb, "Occupation: %s\n", p.Occupation)
		}
		if p.Location != "" {
			fmt.Fprintf(&sb, "Location: %s\n", p.Location)
		}
	}
	sb.WriteString("\nRespond with only a JSON object: ")
	sb.WriteString(`{"regionalPercentile": <1-99>, "nationalPercentile": <1-99>, "narrative": "<one sentence>"}`)
	sb.WriteString("\nPercentiles mean \"top N percent\".")
	return sb.String()
}
