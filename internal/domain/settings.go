package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Profile holds the optional demographic inputs used by the heuristic scorer
// and the percentile ranking. All fields are free-form and optional.
type Profile struct {
	BirthDate    string `json:"birthDate,omitempty"`
	Age          *int   `json:"age,omitempty"`
	Education    string `json:"education,omitempty"`
	FamilyStatus string `json:"familyStatus,omitempty"`
	Occupation   string `json:"occupation,omitempty"`
	Location     string `json:"location,omitempty"`
}

// EffectiveAge resolves the profile age: birth date wins over the legacy
// age field. Returns 0 when neither is usable.
func (p *Profile) EffectiveAge(now time.Time) int {
	if p == nil {
		return 0
	}
	if p.BirthDate != "" {
		if t, err := time.Parse("2006-01-02", p.BirthDate); err == nil {
			return now.Year() - t.Year()
		}
	}
	if p.Age != nil && *p.Age > 0 {
		return *p.Age
	}
	return 0
}

// Settings is the single-row app configuration: third-party API keys plus
// the personal profile, stored as a JSON column.
type Settings struct {
	ID             uint           `gorm:"column:id;primaryKey" json:"-"`
	OCRAPIKey      string         `gorm:"column:ocr_api_key;type:varchar(255)" json:"ocrApiKey"`
	DeepSeekAPIKey string         `gorm:"column:deepseek_api_key;type:varchar(255)" json:"deepseekApiKey"`
	Profile        datatypes.JSON `gorm:"column:profile" json:"profile"`
	UpdatedAt      time.Time      `gorm:"column:updated_at" json:"-"`
}

func (Settings) TableName() string {
	return "settings"
}
