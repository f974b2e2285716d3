package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storekeeper/internal/core/apperror"
	"storekeeper/internal/core/types"
)

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		p := New("PRD-001", "Wireless Mouse")
		p.SalePrice = types.NewMoney(29.99)
		p.PurchasePrice = types.NewMoney(14.50)

		assert.NoError(t, p.Validate(ctx))
	})

	t.Run("missing name", func(t *testing.T) {
		p := New("PRD-001", "")

		err := p.Validate(ctx)
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	})

	t.Run("negative sale price", func(t *testing.T) {
		p := New("PRD-001", "Mouse")
		p.SalePrice = types.NewMoney(-1)

		err := p.Validate(ctx)
		require.Error(t, err)
		appErr, _ := apperror.AsAppError(err)
		assert.Equal(t, "salePrice", appErr.Details["field"])
	})

	t.Run("negative purchase price", func(t *testing.T) {
		p := New("PRD-001", "Mouse")
		p.PurchasePrice = types.NewMoney(-0.01)

		err := p.Validate(ctx)
		require.Error(t, err)
		appErr, _ := apperror.AsAppError(err)
		assert.Equal(t, "purchasePrice", appErr.Details["field"])
	})

	t.Run("zero prices are allowed", func(t *testing.T) {
		p := New("PRD-001", "Freebie")
		assert.NoError(t, p.Validate(ctx))
	})
}

func TestMargin(t *testing.T) {
	p := New("PRD-001", "Mouse")
	p.SalePrice = types.NewMoney(29.99)
	p.PurchasePrice = types.NewMoney(14.50)

	assert.True(t, p.Margin().Equal(types.NewMoney(15.49)),
		"expected 15.49, got %s", p.Margin())
}
