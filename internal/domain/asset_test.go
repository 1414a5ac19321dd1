package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.Valid(), "category %s", c)
	}
	assert.False(t, Category("Crypto").Valid())
	assert.False(t, Category("").Valid())
	assert.False(t, Category("cash").Valid(), "labels are case sensitive")
}

func TestAssetValidate(t *testing.T) {
	valid := Asset{Name: "savings", Category: CategoryDeposit, Amount: decimal.NewFromInt(1000)}
	assert.NoError(t, valid.Validate())

	noName := valid
	noName.Name = ""
	assert.ErrorIs(t, noName.Validate(), ErrInvalidRecord)

	badCategory := valid
	badCategory.Category = "Bond"
	assert.ErrorIs(t, badCategory.Validate(), ErrInvalidRecord)

	zeroAmount := valid
	zeroAmount.Amount = decimal.Zero
	assert.ErrorIs(t, zeroAmount.Validate(), ErrInvalidRecord)

	negative := valid
	negative.Amount = decimal.NewFromInt(-10)
	assert.ErrorIs(t, negative.Validate(), ErrInvalidRecord)
}

func TestHasCurrentValue(t *testing.T) {
	a := Asset{Name: "car", Category: CategoryVehicle, Amount: decimal.NewFromInt(90000)}
	assert.False(t, a.HasCurrentValue())

	zero := decimal.Zero
	a.CurrentValue = &zero
	assert.False(t, a.HasCurrentValue(), "explicit zero means not provided")

	one := decimal.NewFromInt(1)
	a.CurrentValue = &one
	assert.True(t, a.HasCurrentValue())
}
