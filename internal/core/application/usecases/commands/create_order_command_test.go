package commands_test

import (
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validItems() []commands.LineItemInput {
	return []commands.LineItemInput{
		{ProductID: "P1", Name: "Mug", Price: 12.5, Quantity: 2},
		{ProductID: "P2", Name: "Tea", Price: 5, Quantity: 1},
	}
}

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	cmd, err := commands.NewCreateOrderCommand(" AB12CD34 ", validItems(), 30)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, "AB12CD34", cmd.CustomerID())
	assert.InDelta(t, 30.0, cmd.TotalPrice(), 1e-9)
	require.Len(t, cmd.Items(), 2)
	assert.Equal(t, "P1", cmd.Items()[0].ProductID())
}

func TestNewCreateOrderCommand_EmptyItemsAllowed(t *testing.T) {
	cmd, err := commands.NewCreateOrderCommand("AB12CD34", nil, 10)
	require.NoError(t, err)
	assert.Empty(t, cmd.Items())
}

func TestNewCreateOrderCommand_InvalidInput(t *testing.T) {
	tests := []struct {
		name       string
		customerID string
		items      []commands.LineItemInput
		total      float64
		wantErr    error
	}{
		{name: "zero total", customerID: "A", items: validItems(), total: 0, wantErr: errs.ErrValueIsInvalid},
		{name: "negative total", customerID: "A", items: validItems(), total: -1, wantErr: errs.ErrValueIsInvalid},
		{name: "missing customer", customerID: "  ", items: validItems(), total: 10, wantErr: errs.ErrValueIsRequired},
		{
			name:       "zero quantity",
			customerID: "A",
			items:      []commands.LineItemInput{{ProductID: "P1", Price: 1, Quantity: 0}},
			total:      10,
			wantErr:    errs.ErrValueIsOutOfRange,
		},
		{
			name:       "negative price",
			customerID: "A",
			items:      []commands.LineItemInput{{ProductID: "P1", Price: -1, Quantity: 1}},
			total:      10,
			wantErr:    errs.ErrValueIsInvalid,
		},
		{
			name:       "missing product",
			customerID: "A",
			items:      []commands.LineItemInput{{Price: 1, Quantity: 1}},
			total:      10,
			wantErr:    errs.ErrValueIsRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commands.NewCreateOrderCommand(tt.customerID, tt.items, tt.total)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewCreateOrderCommand_ReportsEveryProblem(t *testing.T) {
	_, err := commands.NewCreateOrderCommand("", []commands.LineItemInput{{ProductID: "P1", Quantity: 0}}, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "items[0]")
}

func TestCreateOrderCommand_ZeroValueIsNotConstructed(t *testing.T) {
	require.ErrorIs(t, commands.CreateOrderCommand{}.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
