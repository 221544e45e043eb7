package kernel_test

import (
	"testing"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLineItem(t *testing.T) {
	t.Run("valid item", func(t *testing.T) {
		item, err := kernel.NewLineItem(" p-1 ", "Lamp", 75, 2)

		require.NoError(t, err)
		assert.Equal(t, "p-1", item.ProductID())
		assert.Equal(t, "Lamp", item.Name())
		assert.InDelta(t, 75.0, item.Price(), 1e-9)
		assert.Equal(t, 2, item.Quantity())
		assert.InDelta(t, 150.0, item.Subtotal(), 1e-9)
	})

	t.Run("free items are allowed", func(t *testing.T) {
		_, err := kernel.NewLineItem("p-2", "Sticker", 0, 1)
		require.NoError(t, err)
	})

	tests := []struct {
		name     string
		product  string
		price    float64
		quantity int
		sentinel error
	}{
		{name: "missing product", product: "  ", price: 1, quantity: 1, sentinel: errs.ErrValueIsRequired},
		{name: "negative price", product: "p", price: -0.01, quantity: 1, sentinel: errs.ErrValueIsInvalid},
		{name: "zero quantity", product: "p", price: 1, quantity: 0, sentinel: errs.ErrValueIsOutOfRange},
		{name: "too many", product: "p", price: 1, quantity: kernel.MaxQuantity + 1, sentinel: errs.ErrValueIsOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := kernel.NewLineItem(tt.product, "x", tt.price, tt.quantity)
			require.ErrorIs(t, err, tt.sentinel)
			assert.True(t, errs.IsValidation(err))
		})
	}

	t.Run("all problems are reported", func(t *testing.T) {
		_, err := kernel.NewLineItem("", "x", -1, 0)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestLineItem_WithQuantity(t *testing.T) {
	item, err := kernel.NewLineItem("p-1", "Lamp", 10, 1)
	require.NoError(t, err)

	updated, err := item.WithQuantity(5)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity())
	assert.Equal(t, 1, item.Quantity())

	_, err = item.WithQuantity(0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
