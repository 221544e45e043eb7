package commands_test

import (
	"errors"
	"testing"
	"time"

	"storefront/internal/adapters/out/docrepo/cartrepo"
	"storefront/internal/adapters/out/memory"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func addItem(t *testing.T, h commands.AddCartItemCommandHandler, customerID string, item commands.LineItemInput) {
	t.Helper()
	cmd, err := commands.NewAddCartItemCommand(customerID, item)
	require.NoError(t, err)
	_, err = h.Handle(t.Context(), cmd)
	require.NoError(t, err)
}

func TestAddCartItemCommandHandler_CreatesAndMerges(t *testing.T) {
	repo := cartrepo.NewRepository(memory.NewDocumentStore())
	h := commands.NewAddCartItemCommandHandler(repo)

	addItem(t, h, "AB12CD34", commands.LineItemInput{ProductID: "P1", Name: "Mug", Price: 10, Quantity: 1})
	addItem(t, h, "AB12CD34", commands.LineItemInput{ProductID: "P2", Name: "Tea", Price: 4, Quantity: 2})
	addItem(t, h, "AB12CD34", commands.LineItemInput{ProductID: "P1", Name: "Mug", Price: 10, Quantity: 2})

	stored, err := repo.Get(t.Context(), "AB12CD34")
	require.NoError(t, err)
	items := stored.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "P1", items[0].ProductID())
	assert.Equal(t, 3, items[0].Quantity())
	assert.InDelta(t, 38.0, stored.TotalPrice(), 1e-9)
}

func TestNewAddCartItemCommand_Invalid(t *testing.T) {
	_, err := commands.NewAddCartItemCommand("", commands.LineItemInput{ProductID: "P1", Quantity: 0})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestAddCartItemCommandHandler_SaveError(t *testing.T) {
	ctx := t.Context()
	repo := new(MockCartRepository)
	repo.On("Get", ctx, "AB12CD34").Return(nil, errs.NewObjectNotFoundError("customer_id", "AB12CD34")).Once()
	repo.On("Save", ctx, mock.AnythingOfType("*cart.Cart")).Return(errors.New("disk full")).Once()

	cmd, err := commands.NewAddCartItemCommand("AB12CD34", commands.LineItemInput{ProductID: "P1", Price: 1, Quantity: 1})
	require.NoError(t, err)
	_, err = commands.NewAddCartItemCommandHandler(repo).Handle(ctx, cmd)
	require.ErrorContains(t, err, "disk full")
	repo.AssertExpectations(t)
}

func TestAddCartItemCommandHandler_GetError(t *testing.T) {
	ctx := t.Context()
	repo := new(MockCartRepository)
	repo.On("Get", ctx, "AB12CD34").Return(nil, errors.New("timeout")).Once()

	cmd, err := commands.NewAddCartItemCommand("AB12CD34", commands.LineItemInput{ProductID: "P1", Price: 1, Quantity: 1})
	require.NoError(t, err)
	_, err = commands.NewAddCartItemCommandHandler(repo).Handle(ctx, cmd)
	require.ErrorContains(t, err, "timeout")
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdateCartItemCommandHandler(t *testing.T) {
	repo := cartrepo.NewRepository(memory.NewDocumentStore())
	add := commands.NewAddCartItemCommandHandler(repo)
	update := commands.NewUpdateCartItemCommandHandler(repo)

	t.Run("missing cart", func(t *testing.T) {
		cmd, err := commands.NewUpdateCartItemCommand("nobody", "P1", 2)
		require.NoError(t, err)
		_, err = update.Handle(t.Context(), cmd)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	addItem(t, add, "AB12CD34", commands.LineItemInput{ProductID: "P1", Name: "Mug", Price: 10, Quantity: 1})

	t.Run("missing product", func(t *testing.T) {
		cmd, err := commands.NewUpdateCartItemCommand("AB12CD34", "P9", 2)
		require.NoError(t, err)
		_, err = update.Handle(t.Context(), cmd)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("sets quantity", func(t *testing.T) {
		cmd, err := commands.NewUpdateCartItemCommand("AB12CD34", "P1", 5)
		require.NoError(t, err)
		updated, err := update.Handle(t.Context(), cmd)
		require.NoError(t, err)
		assert.InDelta(t, 50.0, updated.TotalPrice(), 1e-9)

		stored, err := repo.Get(t.Context(), "AB12CD34")
		require.NoError(t, err)
		assert.Equal(t, 5, stored.Items()[0].Quantity())
	})
}

func TestNewUpdateCartItemCommand_QuantityMustBePositive(t *testing.T) {
	for _, q := range []int{0, -3} {
		_, err := commands.NewUpdateCartItemCommand("AB12CD34", "P1", q)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	}
}

func TestRemoveCartItemCommandHandler(t *testing.T) {
	repo := cartrepo.NewRepository(memory.NewDocumentStore())
	add := commands.NewAddCartItemCommandHandler(repo)
	remove := commands.NewRemoveCartItemCommandHandler(repo)

	missing, err := commands.NewRemoveCartItemCommand("nobody", "P1")
	require.NoError(t, err)
	_, err = remove.Handle(t.Context(), missing)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	addItem(t, add, "AB12CD34", commands.LineItemInput{ProductID: "P1", Name: "Mug", Price: 10, Quantity: 1})
	addItem(t, add, "AB12CD34", commands.LineItemInput{ProductID: "P2", Name: "Tea", Price: 4, Quantity: 1})

	absent, err := commands.NewRemoveCartItemCommand("AB12CD34", "P9")
	require.NoError(t, err)
	unchanged, err := remove.Handle(t.Context(), absent)
	require.NoError(t, err)
	assert.Len(t, unchanged.Items(), 2)

	cmd, err := commands.NewRemoveCartItemCommand("AB12CD34", "P1")
	require.NoError(t, err)
	updated, err := remove.Handle(t.Context(), cmd)
	require.NoError(t, err)
	require.Len(t, updated.Items(), 1)
	assert.Equal(t, "P2", updated.Items()[0].ProductID())
	assert.InDelta(t, 4.0, updated.TotalPrice(), 1e-9)
}

func TestClearCartCommandHandler(t *testing.T) {
	repo := cartrepo.NewRepository(memory.NewDocumentStore())
	addItem(t, commands.NewAddCartItemCommandHandler(repo), "AB12CD34",
		commands.LineItemInput{ProductID: "P1", Price: 10, Quantity: 1})
	h := commands.NewClearCartCommandHandler(repo)

	cmd, err := commands.NewClearCartCommand("AB12CD34")
	require.NoError(t, err)
	require.NoError(t, h.Handle(t.Context(), cmd))
	require.NoError(t, h.Handle(t.Context(), cmd))

	_, err = repo.Get(t.Context(), "AB12CD34")
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	_, err = commands.NewClearCartCommand(" ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestExpireCartsCommandHandler(t *testing.T) {
	ctx := t.Context()
	cutoff := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	repo := new(MockCartRepository)
	repo.On("DeleteStale", ctx, cutoff).Return(3, nil).Once()

	cmd, err := commands.NewExpireCartsCommand(cutoff)
	require.NoError(t, err)
	removed, err := commands.NewExpireCartsCommandHandler(repo).Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)
	repo.AssertExpectations(t)

	_, err = commands.NewExpireCartsCommand(time.Time{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewExpireCartsCommandHandler(repo).Handle(ctx, commands.ExpireCartsCommand{})
	require.ErrorIs(t, err, commands.ErrExpireCartsCommandIsNotConstructed)
}
