package insights

import (
	"context"
	"net/http"
	"time"

	"assetly-backend/internal/analytics"
	"assetly-backend/internal/assets"
	"assetly-backend/internal/ranking"
	"assetly-backend/internal/settings"
)

// Service composes stored assets with the stored profile to produce the
// read-only analytics views: category summary, monthly trend and the full
// score-plus-ranking analysis.
type Service struct {
	Assets   *assets.Service
	Settings *settings.Service
	Scores   analytics.ScoreConfig

	// AIBaseURL and HTTPClient configure the optional ranking enrichment.
	// The API key itself lives in settings so it can change at runtime.
	AIBaseURL  string
	HTTPClient *http.Client
}

// Analysis is the combined scoring view.
type Analysis struct {
	Summary analytics.Summary  `json:"summary"`
	Scores  analytics.ScoreSet `json:"scores"`
	Ranking ranking.Result     `json:"ranking"`
}

// Summary aggregates all stored assets by category.
func (s *Service) Summary(ctx context.Context) (analytics.Summary, error) {
	list, err := s.Assets.List(ctx)
	if err != nil {
		return analytics.Summary{}, err
	}
	return analytics.AggregateByCategory(list)
}

// Trend computes the cumulative monthly portfolio growth.
func (s *Service) Trend(ctx context.Context) ([]analytics.TrendPoint, error) {
	list, err := s.Assets.List(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.ComputeTrend(list)
}

// Analyze runs the heuristic scorer over the current portfolio and
// attaches a percentile ranking, enriched when a DeepSeek key is stored.
func (s *Service) Analyze(ctx context.Context) (*Analysis, error) {
	summary, err := s.Summary(ctx)
	if err != nil {
		return nil, err
	}
	st, err := s.Settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := settings.DecodeProfile(st)
	if err != nil {
		return nil, err
	}
	scores := analytics.ComputeScores(s.Scores, summary, profile)

	rk := &ranking.Service{Enricher: s.enricher(st.DeepSeekAPIKey)}
	res := rk.Analyze(ctx, ranking.Input{
		Profile:      profile,
		TotalAssets:  summary.GrandTotal,
		Totals:       summary.Totals,
		AverageScore: scores.Average,
	})

	return &Analysis{Summary: summary, Scores: scores, Ranking: res}, nil
}

func (s *Service) enricher(apiKey string) ranking.Enricher {
	if apiKey == "" {
		return nil
	}
	client := s.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &ranking.DeepSeekEnricher{
		APIKey:  apiKey,
		BaseURL: s.AIBaseURL,
		Client:  client,
	}
}
