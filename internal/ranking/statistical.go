package ranking

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"assetly-backend/internal/domain"
)

// Result is the percentile placement shown in the gamified ranking panel.
// Percentiles are "top N%", clamped to [1, 99]. Basic marks a result from
// the deterministic local estimate rather than the enrichment service.
type Result struct {
	RegionalPercentile int    `json:"regionalPercentile"`
	NationalPercentile int    `json:"nationalPercentile"`
	Narrative          string `json:"narrative"`
	Basic              bool   `json:"basic"`
}

// benchmark holds reference household-asset levels for one age bracket.
type benchmark struct {
	maxAge int
	median decimal.Decimal
	top10  decimal.Decimal
	top1   decimal.Decimal
}

var benchmarks = []benchmark{
	{maxAge: 30, median: decimal.NewFromInt(150000), top10: decimal.NewFromInt(800000), top1: decimal.NewFromInt(3000000)},
	{maxAge: 40, median: decimal.NewFromInt(500000), top10: decimal.NewFromInt(2500000), top1: decimal.NewFromInt(8000000)},
	{maxAge: 50, median: decimal.NewFromInt(1200000), top10: decimal.NewFromInt(5000000), top1: decimal.NewFromInt(15000000)},
	{maxAge: 60, median: decimal.NewFromInt(1800000), top10: decimal.NewFromInt(7000000), top1: decimal.NewFromInt(20000000)},
	{maxAge: math.MaxInt32, median: decimal.NewFromInt(2000000), top10: decimal.NewFromInt(8000000), top1: decimal.NewFromInt(25000000)},
}

const defaultAge = 30

// Statistical estimates the percentile placement from the age-bracket
// benchmark table and the averaged heuristic score. The within-band
// placement uses a seeded generator so the same profile and total always
// produce the same output.
func Statistical(profile *domain.Profile, totalAssets decimal.Decimal, averageScore float64) Result {
	age := profile.EffectiveAge(time.Now())
	if age <= 0 {
		age = defaultAge
	}

	rnd := newSeededRand(seedFor(profile, totalAssets))
	base := assetPercentile(totalAssets, age, rnd)
	adj := scoreAdjustment(averageScore)

	// Regional placement tends to look slightly better than national.
	regional := clampPercentile(int(math.Round(base + adj - 5)))
	national := clampPercentile(int(math.Round(base + adj)))

	return Result{
		RegionalPercentile: regional,
		NationalPercentile: national,
		Narrative:          narrative(national),
		Basic:              true,
	}
}

func assetPercentile(assets decimal.Decimal, age int, rnd func() float64) float64 {
	var b benchmark
	for _, candidate := range benchmarks {
		b = candidate
		if age <= candidate.maxAge {
			break
		}
	}

	switch {
	case assets.GreaterThanOrEqual(b.top1):
		return math.Max(1, rnd()*2)
	case assets.GreaterThanOrEqual(b.top10):
		return math.Max(2, rnd()*8+2)
	case assets.GreaterThanOrEqual(b.median):
		return math.Max(10, rnd()*40+10)
	}
	ratio, _ := assets.Div(b.median).Float64()
	return math.Min(95, math.Max(50, 50+(1-ratio)*45))
}

func scoreAdjustment(average float64) float64 {
	switch {
	case average >= 90:
		return -10
	case average >= 80:
		return -5
	case average >= 70:
		return 0
	case average >= 60:
		return 5
	}
	return 10
}

func clampPercentile(p int) int {
	if p < 1 {
		return 1
	}
	if p > 99 {
		return 99
	}
	return p
}

func narrative(national int) string {
	switch {
	case national <= 10:
		return fmt.Sprintf("Your finances place you in the top %d%% nationally, an outstanding position.", national)
	case national <= 30:
		return fmt.Sprintf("Your finances place you in the top %d%% nationally, a strong position.", national)
	case national <= 60:
		return fmt.Sprintf("Your finances place you around the top %d%% nationally, a solid middle position.", national)
	}
	return "There is meaningful room to grow; consider rebalancing your asset allocation."
}

// seedFor derives a stable seed from the identifying profile fields and the
// asset total, so repeated calls place the user at the same spot within a
// percentile band.
func seedFor(profile *domain.Profile, totalAssets decimal.Decimal) int64 {
	key := "unknown"
	if profile != nil {
		if profile.BirthDate != "" {
			key = profile.BirthDate
		} else if profile.Age != nil {
			key = fmt.Sprintf("%d", *profile.Age)
		}
		key += "-" + profile.Education
	}
	key += "-" + totalAssets.String()

	var hash int32
	for _, r := range key {
		hash = hash<<5 - hash + int32(r)
	}
	if hash < 0 {
		hash = -hash
	}
	return int64(hash)
}

// newSeededRand returns a small deterministic LCG over [0, 1).
func newSeededRand(seed int64) func() float64 {
	current := seed
	return func() float64 {
		current = (current*9301 + 49297) % 233280
		return float64(current) / 233280
	}
}
