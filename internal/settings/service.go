package settings

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"assetly-backend/internal/domain"
)

// Service owns the single settings row: third-party API keys plus the
// personal profile used by the scorer.
type Service struct {
	DB *gorm.DB
}

// UpdateInput carries a partial settings update; nil fields are untouched.
type UpdateInput struct {
	OCRAPIKey      *string         `json:"ocrApiKey"`
	DeepSeekAPIKey *string         `json:"deepseekApiKey"`
	Profile        *domain.Profile `json:"profile"`
}

// Get returns the settings row, creating the empty default on first use.
func (s *Service) Get(ctx context.Context) (*domain.Settings, error) {
	var st domain.Settings
	err := s.DB.WithContext(ctx).First(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		st = domain.Settings{Profile: datatypes.JSON("{}")}
		if err := s.DB.WithContext(ctx).Create(&st).Error; err != nil {
			return nil, err
		}
		return &st, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// Update applies a partial update and returns the stored row.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*domain.Settings, error) {
	st, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if in.OCRAPIKey != nil {
		st.OCRAPIKey = *in.OCRAPIKey
	}
	if in.DeepSeekAPIKey != nil {
		st.DeepSeekAPIKey = *in.DeepSeekAPIKey
	}
	if in.Profile != nil {
		raw, err := json.Marshal(in.Profile)
		if err != nil {
			return nil, err
		}
		st.Profile = datatypes.JSON(raw)
	}
	if err := s.DB.WithContext(ctx).Save(st).Error; err != nil {
		return nil, err
	}
	return st, nil
}

// Profile decodes the stored personal profile. Returns nil when nothing
// meaningful was ever saved, so scoring stays demographics-free.
func (s *Service) Profile(ctx context.Context) (*domain.Profile, error) {
	st, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return DecodeProfile(st)
}

// DecodeProfile extracts the personal profile from an already-loaded
// settings row. A missing or all-empty profile decodes to nil.
func DecodeProfile(st *domain.Settings) (*domain.Profile, error) {
	if len(st.Profile) == 0 {
		return nil, nil
	}
	var p domain.Profile
	if err := json.Unmarshal(st.Profile, &p); err != nil {
		return nil, err
	}
	if p == (domain.Profile{}) {
		return nil, nil
	}
	return &p, nil
}
