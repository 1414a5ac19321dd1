package analytics

import (
	"github.com/shopspring/decimal"

	"assetly-backend/internal/domain"
)

// EffectiveValue returns the monetary figure one asset contributes to any
// total: the current-value estimate when one was provided, the book value
// otherwise. An explicit zero current value counts as "not provided" so the
// user can clear the field without a separate null state.
func EffectiveValue(a *domain.Asset) (decimal.Decimal, error) {
	if a.Amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidRecord
	}
	if a.HasCurrentValue() {
		return *a.CurrentValue, nil
	}
	return a.Amount, nil
}
