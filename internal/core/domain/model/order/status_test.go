package order_test

import (
	"fmt"
	"testing"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, literal := range []string{"pending", "shipped", "delivered", "cancelled"} {
		t.Run(literal, func(t *testing.T) {
			status, err := order.ParseStatus(literal)

			require.NoError(t, err)
			assert.Equal(t, literal, status.String())
		})
	}

	for _, literal := range []string{"", "returned", "Shipped", " pending"} {
		t.Run(fmt.Sprintf("rejects %q", literal), func(t *testing.T) {
			_, err := order.ParseStatus(literal)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Contains(t, err.Error(), "is not a known status")
		})
	}
}

func TestStatuses(t *testing.T) {
	assert.Equal(t,
		[]order.Status{order.Pending, order.Shipped, order.Delivered, order.Cancelled},
		order.Statuses())
}

func TestStatus_CanTransitionTo(t *testing.T) {
	t.Run("every recognized transition is allowed", func(t *testing.T) {
		for _, from := range order.Statuses() {
			for _, to := range order.Statuses() {
				assert.True(t, from.CanTransitionTo(to), "%s -> %s", from, to)
			}
		}
	})

	t.Run("unknown statuses never transition", func(t *testing.T) {
		assert.False(t, order.Status("returned").CanTransitionTo(order.Pending))
		assert.False(t, order.Pending.CanTransitionTo(order.Status("returned")))
	})
}
