package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"assetly-backend/internal/domain"
)

// TrendPoint is one month's cumulative snapshot of accumulated assets.
type TrendPoint struct {
	YearMonth       string          `json:"yearMonth"`
	CumulativeValue decimal.Decimal `json:"cumulativeValue"`
	CumulativeCount int             `json:"cumulativeCount"`
}

type monthBucket struct {
	value decimal.Decimal
	count int
}

// ComputeTrend buckets records by acquisition month (purchase date when set,
// creation month otherwise) and produces an ascending cumulative series.
// The zero-padded YYYY-MM key sorts lexicographically in chronological order.
// An empty record set yields an empty slice; the caller renders the
// empty state.
func ComputeTrend(assets []domain.Asset) ([]TrendPoint, error) {
	if len(assets) == 0 {
		return []TrendPoint{}, nil
	}

	buckets := make(map[string]monthBucket)
	for i := range assets {
		a := &assets[i]
		v, err := EffectiveValue(a)
		if err != nil {
			return nil, err
		}
		key := eventMonth(a)
		b := buckets[key]
		b.value = b.value.Add(v)
		b.count++
		buckets[key] = b
	}

	months := make([]string, 0, len(buckets))
	for m := range buckets {
		months = append(months, m)
	}
	sort.Strings(months)

	points := make([]TrendPoint, 0, len(months))
	cumValue := decimal.Zero
	cumCount := 0
	for _, m := range months {
		b := buckets[m]
		cumValue = cumValue.Add(b.value)
		cumCount += b.count
		points = append(points, TrendPoint{
			YearMonth:       m,
			CumulativeValue: cumValue,
			CumulativeCount: cumCount,
		})
	}
	return points, nil
}

// eventMonth picks the trend bucketing month for one asset. Purchase date is
// preferred; records without one fall back to their creation month.
func eventMonth(a *domain.Asset) string {
	if a.PurchaseDate != nil && *a.PurchaseDate != "" {
		if t, err := time.Parse("2006-01-02", *a.PurchaseDate); err == nil {
			return t.Format("2006-01")
		}
		// Clients may send just the month.
		if t, err := time.Parse("2006-01", *a.PurchaseDate); err == nil {
			return t.Format("2006-01")
		}
	}
	return a.CreatedAt.Format("2006-01")
}
