package analytics

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"assetly-backend/internal/domain"
)

// Rank is the gamified composite label derived from the averaged scores.
type Rank string

const (
	RankDiamond  Rank = "Diamond"
	RankPlatinum Rank = "Platinum"
	RankGold     Rank = "Gold"
	RankSilver   Rank = "Silver"
	RankBronze   Rank = "Bronze"
	RankIron     Rank = "Iron"
)

// ScoreSet holds the six named heuristic scores, each clamped to [0, 100],
// plus the derived average and composite rank.
type ScoreSet struct {
	FinancialHealth     float64 `json:"financialHealth"`
	RiskManagement      float64 `json:"riskManagement"`
	InvestmentPotential float64 `json:"investmentPotential"`
	WealthAccumulation  float64 `json:"wealthAccumulation"`
	FinancialStability  float64 `json:"financialStability"`
	GrowthPotential     float64 `json:"growthPotential"`
	Average             float64 `json:"average"`
	Rank                Rank    `json:"rank"`
}

// AgeBracket grants Bonus when Min <= age <= Max.
type AgeBracket struct {
	Min   int
	Max   int
	Bonus float64
}

// KeywordBonus grants Bonus when the input contains any of the keywords
// (case-insensitive substring match).
type KeywordBonus struct {
	Keywords []string
	Bonus    float64
}

// AmountTier grants Bonus when the amount reaches Threshold. Tiers are
// evaluated top-down; the first match wins.
type AmountTier struct {
	Threshold decimal.Decimal
	Bonus     float64
}

// ScoreConfig is the declarative table behind the heuristic scorer. The
// defaults reproduce the hand-picked thresholds of the original product;
// they are presentation gamification, not a financial model.
type ScoreConfig struct {
	FinancialHealthBase float64
	HealthAgeBrackets   []AgeBracket
	EducationBonuses    []KeywordBonus
	AssetSizeTiers      []AmountTier

	RiskBase            float64
	DiversityBonus      float64 // per non-empty category
	LiquidHealthyMin    float64 // healthy liquid-ratio range lower bound
	LiquidHealthyMax    float64
	LiquidHealthyBonus  float64
	LiquidMinimum       float64 // partial-credit floor
	LiquidMinimumBonus  float64

	InvestmentBase        float64
	InvestmentRatioWeight float64
	InvestAgeBrackets     []AgeBracket

	AccumulationBase     float64
	ExpectedPerYear      decimal.Decimal // age * this = expected assets
	AccumulationTiers    []struct {
		Multiplier float64
		Bonus      float64
	}
	AccumulationFloor    float64 // bonus when below every tier
	RealEstateBonus      float64

	StabilityBase       float64
	OccupationBonuses   []KeywordBonus
	OccupationDefault   float64
	LocationBonuses     []KeywordBonus
	LocationDefault     float64

	GrowthBase          float64
	GrowthAgeBrackets   []AgeBracket
	GrowthAgeDefault    float64
	GrowthEduBonuses    []KeywordBonus

	RankLadder []struct {
		MinAverage float64
		Rank       Rank
	}
}

// DefaultScoreConfig returns the scoring table shipped with the product.
func DefaultScoreConfig() ScoreConfig {
	cfg := ScoreConfig{
		FinancialHealthBase: 50,
		HealthAgeBrackets: []AgeBracket{
			{Min: 25, Max: 35, Bonus: 15},
			{Min: 36, Max: 45, Bonus: 20},
			{Min: 46, Max: 55, Bonus: 10},
		},
		EducationBonuses: []KeywordBonus{
			{Keywords: []string{"phd", "doctorate", "博士"}, Bonus: 20},
			{Keywords: []string{"master", "硕士"}, Bonus: 15},
			{Keywords: []string{"bachelor", "本科"}, Bonus: 10},
		},
		AssetSizeTiers: []AmountTier{
			{Threshold: decimal.NewFromInt(1000000), Bonus: 25},
			{Threshold: decimal.NewFromInt(500000), Bonus: 20},
			{Threshold: decimal.NewFromInt(100000), Bonus: 15},
			{Threshold: decimal.NewFromInt(50000), Bonus: 10},
		},

		RiskBase:           40,
		DiversityBonus:     8,
		LiquidHealthyMin:   0.1,
		LiquidHealthyMax:   0.3,
		LiquidHealthyBonus: 20,
		LiquidMinimum:      0.05,
		LiquidMinimumBonus: 10,

		InvestmentBase:        30,
		InvestmentRatioWeight: 60,
		InvestAgeBrackets: []AgeBracket{
			{Min: 0, Max: 35, Bonus: 20},
			{Min: 36, Max: 45, Bonus: 15},
			{Min: 46, Max: 55, Bonus: 10},
		},

		AccumulationBase: 20,
		ExpectedPerYear:  decimal.NewFromInt(10000),
		AccumulationFloor: 10,
		RealEstateBonus:   20,

		StabilityBase: 35,
		OccupationBonuses: []KeywordBonus{
			{Keywords: []string{"civil servant", "teacher", "公务员", "教师"}, Bonus: 25},
			{Keywords: []string{"doctor", "lawyer", "医生", "律师"}, Bonus: 20},
			{Keywords: []string{"engineer", "programmer", "工程师", "程序员"}, Bonus: 15},
		},
		OccupationDefault: 10,
		LocationBonuses: []KeywordBonus{
			{Keywords: []string{"beijing", "shanghai", "shenzhen", "北京", "上海", "深圳"}, Bonus: 15},
			{Keywords: []string{"guangzhou", "hangzhou", "广州", "杭州"}, Bonus: 10},
		},
		LocationDefault: 5,

		GrowthBase: 25,
		GrowthAgeBrackets: []AgeBracket{
			{Min: 0, Max: 30, Bonus: 30},
			{Min: 31, Max: 40, Bonus: 25},
			{Min: 41, Max: 50, Bonus: 15},
		},
		GrowthAgeDefault: 5,
		GrowthEduBonuses: []KeywordBonus{
			{Keywords: []string{"phd", "doctorate", "博士"}, Bonus: 25},
			{Keywords: []string{"master", "硕士"}, Bonus: 20},
			{Keywords: []string{"bachelor", "本科"}, Bonus: 15},
		},
	}
	cfg.AccumulationTiers = []struct {
		Multiplier float64
		Bonus      float64
	}{
		{Multiplier: 2, Bonus: 40},
		{Multiplier: 1, Bonus: 30},
		{Multiplier: 0.5, Bonus: 20},
	}
	cfg.RankLadder = []struct {
		MinAverage float64
		Rank       Rank
	}{
		{MinAverage: 90, Rank: RankDiamond},
		{MinAverage: 80, Rank: RankPlatinum},
		{MinAverage: 70, Rank: RankGold},
		{MinAverage: 60, Rank: RankSilver},
		{MinAverage: 50, Rank: RankBronze},
	}
	return cfg
}

// ComputeScores maps the category totals, the grand total, and the optional
// demographic profile to the six bounded scores and the composite rank.
// A zero grand total short-circuits every rule to its base score so no rule
// ever divides by zero. The profile may be nil.
func ComputeScores(cfg ScoreConfig, s Summary, profile *domain.Profile) ScoreSet {
	age := profile.EffectiveAge(time.Now())
	zero := s.GrandTotal.LessThanOrEqual(decimal.Zero)

	var set ScoreSet
	set.FinancialHealth = clamp(cfg.financialHealth(s, profile, age, zero))
	set.RiskManagement = clamp(cfg.riskManagement(s, zero))
	set.InvestmentPotential = clamp(cfg.investmentPotential(s, age, zero))
	set.WealthAccumulation = clamp(cfg.wealthAccumulation(s, age, zero))
	set.FinancialStability = clamp(cfg.financialStability(profile, zero))
	set.GrowthPotential = clamp(cfg.growthPotential(profile, age, zero))

	sum := set.FinancialHealth + set.RiskManagement + set.InvestmentPotential +
		set.WealthAccumulation + set.FinancialStability + set.GrowthPotential
	set.Average = round2(sum / 6)
	set.Rank = cfg.rank(set.Average)
	return set
}

func (cfg *ScoreConfig) financialHealth(s Summary, profile *domain.Profile, age int, zero bool) float64 {
	score := cfg.FinancialHealthBase
	if zero {
		return score
	}
	score += bracketBonus(cfg.HealthAgeBrackets, age, 0)
	if profile != nil {
		score += keywordBonus(cfg.EducationBonuses, profile.Education, 0)
	}
	for _, tier := range cfg.AssetSizeTiers {
		if s.GrandTotal.GreaterThanOrEqual(tier.Threshold) {
			score += tier.Bonus
			break
		}
	}
	return score
}

func (cfg *ScoreConfig) riskManagement(s Summary, zero bool) float64 {
	score := cfg.RiskBase
	if zero {
		return score
	}
	for _, c := range domain.Categories {
		if s.Totals[c].GreaterThan(decimal.Zero) {
			score += cfg.DiversityBonus
		}
	}
	liquid := s.Totals[domain.CategoryCash].Add(s.Totals[domain.CategoryDeposit])
	ratio, _ := liquid.Div(s.GrandTotal).Float64()
	if ratio >= cfg.LiquidHealthyMin && ratio <= cfg.LiquidHealthyMax {
		score += cfg.LiquidHealthyBonus
	} else if ratio >= cfg.LiquidMinimum {
		score += cfg.LiquidMinimumBonus
	}
	return score
}

func (cfg *ScoreConfig) investmentPotential(s Summary, age int, zero bool) float64 {
	score := cfg.InvestmentBase
	if zero {
		return score
	}
	invested := s.Totals[domain.CategoryFund].Add(s.Totals[domain.CategoryStock])
	ratio, _ := invested.Div(s.GrandTotal).Float64()
	score += ratio * cfg.InvestmentRatioWeight
	score += bracketBonus(cfg.InvestAgeBrackets, age, 0)
	return score
}

func (cfg *ScoreConfig) wealthAccumulation(s Summary, age int, zero bool) float64 {
	score := cfg.AccumulationBase
	if zero {
		return score
	}
	if age > 0 {
		expected := cfg.ExpectedPerYear.Mul(decimal.NewFromInt(int64(age)))
		bonus := cfg.AccumulationFloor
		for _, tier := range cfg.AccumulationTiers {
			if s.GrandTotal.GreaterThanOrEqual(expected.Mul(decimal.NewFromFloat(tier.Multiplier))) {
				bonus = tier.Bonus
				break
			}
		}
		score += bonus
	}
	if s.Totals[domain.CategoryRealEstate].GreaterThan(decimal.Zero) {
		score += cfg.RealEstateBonus
	}
	return score
}

func (cfg *ScoreConfig) financialStability(profile *domain.Profile, zero bool) float64 {
	score := cfg.StabilityBase
	if zero || profile == nil {
		return score
	}
	score += keywordBonus(cfg.OccupationBonuses, profile.Occupation, cfg.OccupationDefault)
	score += keywordBonus(cfg.LocationBonuses, profile.Location, cfg.LocationDefault)
	return score
}

func (cfg *ScoreConfig) growthPotential(profile *domain.Profile, age int, zero bool) float64 {
	score := cfg.GrowthBase
	if zero || profile == nil {
		return score
	}
	if age > 0 {
		score += bracketBonus(cfg.GrowthAgeBrackets, age, cfg.GrowthAgeDefault)
	}
	score += keywordBonus(cfg.GrowthEduBonuses, profile.Education, 0)
	return score
}

func (cfg *ScoreConfig) rank(average float64) Rank {
	for _, step := range cfg.RankLadder {
		if average >= step.MinAverage {
			return step.Rank
		}
	}
	return RankIron
}

func bracketBonus(brackets []AgeBracket, age int, fallback float64) float64 {
	if age <= 0 {
		return 0
	}
	for _, b := range brackets {
		if age >= b.Min && age <= b.Max {
			return b.Bonus
		}
	}
	return fallback
}

func keywordBonus(bonuses []KeywordBonus, input string, fallback float64) float64 {
	if input == "" {
		return fallback
	}
	lower := strings.ToLower(input)
	for _, b := range bonuses {
		for _, kw := range b.Keywords {
			if strings.Contains(lower, kw) {
				return b.Bonus
			}
		}
	}
	return fallback
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
