package assets

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"assetly-backend/internal/domain"
)

// ErrNotFound is returned when the referenced asset does not exist.
var ErrNotFound = errors.New("asset not found")

// ErrNoValidEntries is returned when an import batch contains no usable entry.
var ErrNoValidEntries = errors.New("no valid assets found in import data")

// Service encapsulates asset record operations over the repository.
type Service struct {
	DB *gorm.DB
}

// CreateInput carries the user-entered fields for a new record.
type CreateInput struct {
	Name         string           `json:"name"`
	Category     domain.Category  `json:"category"`
	Amount       decimal.Decimal  `json:"amount"`
	CurrentValue *decimal.Decimal `json:"currentValue"`
	PurchaseDate *string          `json:"purchaseDate"`
	Remark       string           `json:"remark"`
}

// UpdateInput carries a partial update. ID and creation time are immutable;
// nil fields are left untouched. An explicit zero CurrentValue clears the
// estimate back to "use book value".
type UpdateInput struct {
	Name         *string          `json:"name"`
	Category     *domain.Category `json:"category"`
	Amount       *decimal.Decimal `json:"amount"`
	CurrentValue *decimal.Decimal `json:"currentValue"`
	PurchaseDate *string          `json:"purchaseDate"`
	Remark       *string          `json:"remark"`
}

// Create validates and stores a new asset record.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Asset, error) {
	a := domain.Asset{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Category:     in.Category,
		Amount:       in.Amount,
		CurrentValue: in.CurrentValue,
		PurchaseDate: in.PurchaseDate,
		Remark:       in.Remark,
		CreatedAt:    time.Now(),
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Create(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// Get returns one record by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Asset, error) {
	var a domain.Asset
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Update applies a partial update to an existing record.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*domain.Asset, error) {
	var a domain.Asset
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if in.Name != nil {
		a.Name = *in.Name
	}
	if in.Category != nil {
		a.Category = *in.Category
	}
	if in.Amount != nil {
		a.Amount = *in.Amount
	}
	if in.CurrentValue != nil {
		a.CurrentValue = in.CurrentValue
	}
	if in.PurchaseDate != nil {
		a.PurchaseDate = in.PurchaseDate
	}
	if in.Remark != nil {
		a.Remark = *in.Remark
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Save(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// Delete removes one record by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&domain.Asset{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns the full record set. Order is irrelevant to the aggregation
// core; creation order is used for stable display.
func (s *Service) List(ctx context.Context) ([]domain.Asset, error) {
	var assets []domain.Asset
	if err := s.DB.WithContext(ctx).Order("created_at").Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// ClearAll removes every record (the bulk-clear action).
func (s *Service) ClearAll(ctx context.Context) error {
	return s.DB.WithContext(ctx).Where("1 = 1").Delete(&domain.Asset{}).Error
}

// importEntry mirrors the exported JSON shape with everything optional, so
// a malformed entry can be skipped instead of failing the batch.
type importEntry struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Category     domain.Category  `json:"category"`
	Amount       *decimal.Decimal `json:"amount"`
	CurrentValue *decimal.Decimal `json:"currentValue"`
	PurchaseDate *string          `json:"purchaseDate"`
	Remark       string           `json:"remark"`
	CreatedAt    string           `json:"createdAt"`
}

func (e *importEntry) toAsset() (domain.Asset, bool) {
	if e.ID == "" || e.Name == "" || e.Amount == nil || e.CreatedAt == "" {
		return domain.Asset{}, false
	}
	if !e.Category.Valid() || e.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.Asset{}, false
	}
	createdAt, err := time.Parse(time.RFC3339, e.CreatedAt)
	if err != nil {
		createdAt, err = time.Parse("2006-01-02", e.CreatedAt)
		if err != nil {
			return domain.Asset{}, false
		}
	}
	return domain.Asset{
		ID:           e.ID,
		Name:         e.Name,
		Category:     e.Category,
		Amount:       *e.Amount,
		CurrentValue: e.CurrentValue,
		PurchaseDate: e.PurchaseDate,
		Remark:       e.Remark,
		CreatedAt:    createdAt,
	}, true
}

// Import loads a flat JSON array of records. Valid entries are upserted by
// id; malformed entries are counted and skipped, never partially stored.
// A batch with zero valid entries is an error.
func (s *Service) Import(ctx context.Context, raw []byte) (imported, skipped int, err error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return 0, 0, domain.ErrInvalidRecord
	}

	valid := make([]domain.Asset, 0, len(entries))
	for _, rawEntry := range entries {
		var e importEntry
		if err := json.Unmarshal(rawEntry, &e); err != nil {
			skipped++
			continue
		}
		a, ok := e.toAsset()
		if !ok {
			skipped++
			continue
		}
		valid = append(valid, a)
	}

	if len(valid) == 0 {
		return 0, skipped, ErrNoValidEntries
	}

	err = s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&valid).Error
	if err != nil {
		return 0, skipped, err
	}
	return len(valid), skipped, nil
}

// Export returns the full record set for a flat JSON array backup.
func (s *Service) Export(ctx context.Context) ([]domain.Asset, error) {
	return s.List(ctx)
}
