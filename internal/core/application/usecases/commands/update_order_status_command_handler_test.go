package commands_test

import (
	"errors"
	"testing"
	"time"

	"storefront/internal/adapters/out/docrepo/orderrepo"
	"storefront/internal/adapters/out/memory"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pendingOrder(t *testing.T, seq int64) *order.Order {
	t.Helper()
	number, err := order.NewNumber(seq)
	require.NoError(t, err)
	item, err := kernel.NewLineItem("P1", "Mug", 10, 3)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), number, "AB12CD34", []kernel.LineItem{item}, 30,
		time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return o
}

func TestUpdateOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	current := pendingOrder(t, 42)
	cmd, err := commands.NewUpdateOrderStatusCommand("ORD-000042", "shipped")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	mock.InOrder(
		repo.On("GetByNumber", ctx, cmd.Number()).Return(current, nil).Once(),
		repo.On("UpdateStatus", ctx, current, order.Pending).Return(true, nil).Once(),
	)

	h := commands.NewUpdateOrderStatusCommandHandler(repo)
	res, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, order.Pending, res.Previous)
	assert.Equal(t, order.Shipped, res.Order.Status())
	assert.NotNil(t, res.Order.UpdatedAt())
	repo.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_SameStatusIsNoop(t *testing.T) {
	ctx := t.Context()
	current := pendingOrder(t, 42)
	cmd, err := commands.NewUpdateOrderStatusCommand("ORD-000042", "pending")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("GetByNumber", ctx, cmd.Number()).Return(current, nil).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(repo)
	res, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Nil(t, res.Order.UpdatedAt())
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewUpdateOrderStatusCommand("ORD-000042", "shipped")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("GetByNumber", ctx, cmd.Number()).
		Return(nil, errs.NewObjectNotFoundError("order_id", "ORD-000042")).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(repo)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestUpdateOrderStatusCommandHandler_Handle_LostRaceIsConflict(t *testing.T) {
	ctx := t.Context()
	current := pendingOrder(t, 42)
	cmd, err := commands.NewUpdateOrderStatusCommand("ORD-000042", "delivered")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("GetByNumber", ctx, cmd.Number()).Return(current, nil).Once()
	repo.On("UpdateStatus", ctx, current, order.Pending).Return(false, nil).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(repo)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
}

func TestUpdateOrderStatusCommandHandler_Handle_WriteError(t *testing.T) {
	ctx := t.Context()
	current := pendingOrder(t, 42)
	cmd, err := commands.NewUpdateOrderStatusCommand("ORD-000042", "cancelled")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("GetByNumber", ctx, cmd.Number()).Return(current, nil).Once()
	repo.On("UpdateStatus", ctx, current, order.Pending).Return(false, errors.New("connection reset")).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(repo)
	_, err = h.Handle(ctx, cmd)
	require.ErrorContains(t, err, "connection reset")
	assert.NotErrorIs(t, err, errs.ErrVersionIsInvalid)
}

func TestUpdateOrderStatusCommandHandler_Handle_InvalidCommand(t *testing.T) {
	repo := new(MockOrderRepository)
	h := commands.NewUpdateOrderStatusCommandHandler(repo)

	_, err := h.Handle(t.Context(), commands.UpdateOrderStatusCommand{})
	require.ErrorIs(t, err, commands.ErrUpdateOrderStatusCommandIsNotConstructed)
	repo.AssertNotCalled(t, "GetByNumber", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_AgainstStore(t *testing.T) {
	ctx := t.Context()
	repo := orderrepo.NewRepository(memory.NewDocumentStore())
	require.NoError(t, repo.Add(ctx, pendingOrder(t, 1)))
	h := commands.NewUpdateOrderStatusCommandHandler(repo)

	steps := []struct {
		status  string
		changed bool
	}{
		{"shipped", true},
		{"shipped", false},
		{"delivered", true},
		{"pending", true},
		{"cancelled", true},
	}
	var lastUpdatedAt *time.Time
	for _, step := range steps {
		cmd, err := commands.NewUpdateOrderStatusCommand("ORD-000001", step.status)
		require.NoError(t, err)
		res, err := h.Handle(ctx, cmd)
		require.NoError(t, err, step.status)
		assert.Equal(t, step.changed, res.Changed, step.status)

		stored, err := repo.GetByNumber(ctx, cmd.Number())
		require.NoError(t, err)
		assert.Equal(t, cmd.Status(), stored.Status())
		if !step.changed {
			require.NotNil(t, lastUpdatedAt)
			require.NotNil(t, stored.UpdatedAt())
			assert.True(t, lastUpdatedAt.Equal(*stored.UpdatedAt()))
		}
		lastUpdatedAt = stored.UpdatedAt()
	}
}
