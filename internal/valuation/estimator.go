package valuation

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"assetly-backend/internal/domain"
)

// Estimate is a rule-based current-value suggestion for one asset.
type Estimate struct {
	EstimatedValue   decimal.Decimal `json:"estimatedValue"`
	DepreciationRate float64         `json:"depreciationRate"`
	Reasoning        string          `json:"reasoning"`
}

// Annualized default depreciation rates per category. Cash and deposits
// never depreciate; the rest are conservative hand-picked defaults.
var annualRates = map[domain.Category]float64{
	domain.CategoryCash:       0,
	domain.CategoryDeposit:    0,
	domain.CategoryRealEstate: 0.02,
	domain.CategoryVehicle:    0.15,
	domain.CategoryFund:       0.05,
	domain.CategoryStock:      0.08,
	domain.CategoryOther:      0.10,
}

const (
	maxTotalDepreciation = 0.8 // never write off more than 80%
	residualFloor        = 0.1 // always keep at least 10% of book value
)

type adjustment struct {
	category domain.Category
	keywords []string
	rate     float64
	note     string
}

// Keyword adjustments refine the default rate from the name and remark.
var adjustments = []adjustment{
	{domain.CategoryVehicle, []string{"豪华", "奔驰", "宝马", "奥迪", "mercedes", "bmw", "audi", "luxury"}, 0.12, "luxury brands hold value better"},
	{domain.CategoryVehicle, []string{"二手", "旧", "used", "second-hand"}, 0.20, "used vehicles depreciate faster"},
	{domain.CategoryRealEstate, []string{"一线城市", "核心地段", "prime location", "city center"}, -0.02, "prime-location property may appreciate"},
	{domain.CategoryRealEstate, []string{"老旧", "偏远", "old building", "remote"}, 0.05, "old or remote property depreciates faster"},
	{domain.CategoryOther, []string{"电子", "手机", "电脑", "phone", "laptop", "electronics"}, 0.25, "electronics depreciate quickly"},
	{domain.CategoryOther, []string{"奢侈品", "收藏", "古董", "luxury", "collectible", "antique"}, 0.02, "luxury and collectible items hold value"},
}

// EstimateCurrentValue suggests a present value from the book value, the
// category's depreciation profile, and the time since purchase. Cash and
// deposits always resolve to the book value.
func EstimateCurrentValue(a *domain.Asset, now time.Time) (*Estimate, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	if a.Category == domain.CategoryCash || a.Category == domain.CategoryDeposit {
		return &Estimate{
			EstimatedValue:   a.Amount,
			DepreciationRate: 0,
			Reasoning:        "cash and deposit assets do not depreciate",
		}, nil
	}

	years := yearsSincePurchase(a, now)
	rate := annualRates[a.Category]
	reasoning := fmt.Sprintf("standard %s depreciation rate", a.Category)

	haystack := strings.ToLower(a.Name + " " + a.Remark)
	for _, adj := range adjustments {
		if adj.category != a.Category {
			continue
		}
		for _, kw := range adj.keywords {
			if strings.Contains(haystack, kw) {
				rate = adj.rate
				reasoning += ", " + adj.note
				break
			}
		}
	}

	total := rate * years
	if total > maxTotalDepreciation {
		total = maxTotalDepreciation
	}
	// A negative total (prime-location property) grows the value.
	value := a.Amount.Mul(decimal.NewFromFloat(1 - total))
	floor := a.Amount.Mul(decimal.NewFromFloat(residualFloor))
	if value.LessThan(floor) {
		value = floor
	}

	return &Estimate{
		EstimatedValue:   value.Round(0),
		DepreciationRate: total,
		Reasoning:        fmt.Sprintf("%s, %.1f years, %.1f%% total depreciation", reasoning, years, total*100),
	}, nil
}

func yearsSincePurchase(a *domain.Asset, now time.Time) float64 {
	ref := a.CreatedAt
	if a.PurchaseDate != nil && *a.PurchaseDate != "" {
		if t, err := time.Parse("2006-01-02", *a.PurchaseDate); err == nil {
			ref = t
		}
	}
	d := now.Sub(ref)
	if d < 0 {
		return 0
	}
	return d.Hours() / 24 / 365.25
}
