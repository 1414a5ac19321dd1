package ranking

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const enrichmentTimeout = 10 * time.Second

// Service resolves the percentile ranking: one best-effort enrichment
// attempt, then the deterministic statistical estimate. The enrichment is
// never required for correctness and is never retried.
type Service struct {
	Enricher Enricher // nil disables enrichment entirely
}

// Analyze returns the ranking for the given inputs. The result is always
// usable; Basic is set when it came from the local estimate.
func (s *Service) Analyze(ctx context.Context, in Input) Result {
	if s.Enricher != nil {
		enrichCtx, cancel := context.WithTimeout(ctx, enrichmentTimeout)
		defer cancel()

		res, err := s.Enricher.RankingAnalysis(enrichCtx, in)
		if err == nil && res != nil {
			return *res
		}
		log.Warn().Err(err).Msg("ranking enrichment failed, using basic analysis")
	}
	return Statistical(in.Profile, in.TotalAssets, in.AverageScore)
}
