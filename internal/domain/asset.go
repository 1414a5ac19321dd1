package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrInvalidRecord marks a record violating the Asset invariants.
// It is always a caller bug, never recovered.
var ErrInvalidRecord = errors.New("invalid asset record")

// Category is one of the seven fixed asset classifications.
type Category string

const (
	CategoryCash       Category = "Cash"
	CategoryDeposit    Category = "Deposit"
	CategoryRealEstate Category = "RealEstate"
	CategoryVehicle    Category = "Vehicle"
	CategoryFund       Category = "Fund"
	CategoryStock      Category = "Stock"
	CategoryOther      Category = "Other"
)

// Categories lists all seven categories in display order.
var Categories = []Category{
	CategoryCash,
	CategoryDeposit,
	CategoryRealEstate,
	CategoryVehicle,
	CategoryFund,
	CategoryStock,
	CategoryOther,
}

// Valid reports whether c is one of the seven fixed labels.
func (c Category) Valid() bool {
	switch c {
	case CategoryCash, CategoryDeposit, CategoryRealEstate,
		CategoryVehicle, CategoryFund, CategoryStock, CategoryOther:
		return true
	}
	return false
}

// Asset is one user-entered holding. Amount is the originally paid amount
// (book value); CurrentValue is a later estimate of present worth, where nil
// or exactly zero means "not provided".
type Asset struct {
	ID           string           `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	Name         string           `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Category     Category         `gorm:"column:category;type:varchar(20);not null" json:"category"`
	Amount       decimal.Decimal  `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	CurrentValue *decimal.Decimal `gorm:"column:current_value;type:decimal(18,2)" json:"currentValue,omitempty"`
	PurchaseDate *string          `gorm:"column:purchase_date;type:varchar(10)" json:"purchaseDate,omitempty"`
	Remark       string           `gorm:"column:remark;type:text" json:"remark,omitempty"`
	CreatedAt    time.Time        `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt    time.Time        `gorm:"column:updated_at" json:"-"`
}

func (Asset) TableName() string {
	return "assets"
}

func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// Validate checks the Asset invariants: non-empty name, known category,
// positive book value.
func (a *Asset) Validate() error {
	if a.Name == "" {
		return ErrInvalidRecord
	}
	if !a.Category.Valid() {
		return ErrInvalidRecord
	}
	if a.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidRecord
	}
	return nil
}

// HasCurrentValue reports whether a present-worth estimate was provided.
// An explicit zero means the user cleared the field back to "use book value",
// so it counts as not provided.
func (a *Asset) HasCurrentValue() bool {
	return a.CurrentValue != nil && !a.CurrentValue.IsZero()
}
