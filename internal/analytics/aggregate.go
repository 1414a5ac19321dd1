package analytics

import (
	"github.com/shopspring/decimal"

	"assetly-backend/internal/domain"
)

// Summary maps each of the seven categories to its effective-value total.
// All seven keys are always present, even at zero.
type Summary struct {
	Totals     map[domain.Category]decimal.Decimal `json:"totals"`
	GrandTotal decimal.Decimal                     `json:"grandTotal"`
}

// AggregateByCategory sums effective values grouped by category. An empty
// record set yields all-zero totals, not an error. A record with an
// unrecognized category is a programming error and fails the whole call.
func AggregateByCategory(assets []domain.Asset) (Summary, error) {
	totals := make(map[domain.Category]decimal.Decimal, len(domain.Categories))
	for _, c := range domain.Categories {
		totals[c] = decimal.Zero
	}

	grand := decimal.Zero
	for i := range assets {
		a := &assets[i]
		if !a.Category.Valid() {
			return Summary{}, domain.ErrInvalidRecord
		}
		v, err := EffectiveValue(a)
		if err != nil {
			return Summary{}, err
		}
		totals[a.Category] = totals[a.Category].Add(v)
		grand = grand.Add(v)
	}

	return Summary{Totals: totals, GrandTotal: grand}, nil
}
