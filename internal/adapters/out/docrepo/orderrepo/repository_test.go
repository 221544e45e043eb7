package orderrepo_test

import (
	"testing"
	"time"

	"storefront/internal/adapters/out/docrepo/orderrepo"
	"storefront/internal/adapters/out/memory"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newOrder(t *testing.T, seq int64, customerID string, createdAt time.Time) *order.Order {
	t.Helper()
	number, err := order.NewNumber(seq)
	require.NoError(t, err)
	item, err := kernel.NewLineItem("P1", "Mug", 12.5, 2)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), number, customerID, []kernel.LineItem{item}, 25, createdAt)
	require.NoError(t, err)
	return o
}

func TestRepository_AddAndGetByNumber(t *testing.T) {
	store := memory.NewDocumentStore()
	repo := orderrepo.NewRepository(store)
	o := newOrder(t, 1, "AB12CD34", base)

	require.NoError(t, repo.Add(t.Context(), o))

	got, err := repo.GetByNumber(t.Context(), o.Number())
	require.NoError(t, err)
	assert.True(t, o.ID().IsEqual(got.ID()))
	assert.Equal(t, "ORD-000001", got.Number().String())
	assert.Equal(t, "AB12CD34", got.CustomerID())
	assert.Equal(t, order.Pending, got.Status())
	assert.InDelta(t, 25.0, got.TotalPrice(), 1e-9)
	assert.True(t, base.Equal(got.CreatedAt()))
	assert.Nil(t, got.UpdatedAt())
	require.Len(t, got.Items(), 1)
	assert.Equal(t, "P1", got.Items()[0].ProductID())
	assert.Equal(t, 2, got.Items()[0].Quantity())
}

func TestRepository_StoredShape(t *testing.T) {
	store := memory.NewDocumentStore()
	repo := orderrepo.NewRepository(store)
	o := newOrder(t, 7, "AB12CD34", base)
	require.NoError(t, repo.Add(t.Context(), o))

	doc, err := store.FindOne(t.Context(), orderrepo.Collection, ports.Filter{"order_id": "ORD-000007"})
	require.NoError(t, err)
	assert.Equal(t, o.ID().String(), doc[ports.IDField])
	assert.Equal(t, "pending", doc["status"])
	assert.Equal(t, 25.0, doc["total_price"])
	assert.NotContains(t, doc, "updated_at")
}

func TestRepository_GetByNumberNotFound(t *testing.T) {
	repo := orderrepo.NewRepository(memory.NewDocumentStore())
	number, err := order.NewNumber(42)
	require.NoError(t, err)

	_, err = repo.GetByNumber(t.Context(), number)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestRepository_AddDuplicateNumber(t *testing.T) {
	repo := orderrepo.NewRepository(memory.NewDocumentStore())
	o := newOrder(t, 1, "AB12CD34", base)
	require.NoError(t, repo.Add(t.Context(), o))

	err := repo.Add(t.Context(), o)
	require.ErrorIs(t, err, errs.ErrObjectAlreadyExists)
}

func TestRepository_AddRejectsUnconstructed(t *testing.T) {
	repo := orderrepo.NewRepository(memory.NewDocumentStore())
	require.ErrorIs(t, repo.Add(t.Context(), &order.Order{}), order.ErrOrderIsNotConstructed)
}

func TestRepository_GetAllOrdering(t *testing.T) {
	repo := orderrepo.NewRepository(memory.NewDocumentStore())
	third := newOrder(t, 3, "C", base.Add(time.Minute))
	first := newOrder(t, 1, "A", base)
	second := newOrder(t, 2, "B", base)
	for _, o := range []*order.Order{third, first, second} {
		require.NoError(t, repo.Add(t.Context(), o))
	}

	all, err := repo.GetAll(t.Context())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "ORD-000001", all[0].Number().String())
	assert.Equal(t, "ORD-000002", all[1].Number().String())
	assert.Equal(t, "ORD-000003", all[2].Number().String())
}

func TestRepository_GetByCustomer(t *testing.T) {
	repo := orderrepo.NewRepository(memory.NewDocumentStore())
	require.NoError(t, repo.Add(t.Context(), newOrder(t, 1, "A", base)))
	require.NoError(t, repo.Add(t.Context(), newOrder(t, 2, "B", base)))
	require.NoError(t, repo.Add(t.Context(), newOrder(t, 3, "A", base.Add(time.Second))))

	orders, err := repo.GetByCustomer(t.Context(), "A")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, int64(1), orders[0].Number().Seq())
	assert.Equal(t, int64(3), orders[1].Number().Seq())

	none, err := repo.GetByCustomer(t.Context(), "Z")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo := orderrepo.NewRepository(memory.NewDocumentStore())
	o := newOrder(t, 1, "A", base)
	require.NoError(t, repo.Add(t.Context(), o))

	changed, err := o.ChangeStatus(order.Shipped, base.Add(time.Hour))
	require.NoError(t, err)
	require.True(t, changed)

	ok, err := repo.UpdateStatus(t.Context(), o, order.Pending)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByNumber(t.Context(), o.Number())
	require.NoError(t, err)
	assert.Equal(t, order.Shipped, got.Status())
	require.NotNil(t, got.UpdatedAt())
	assert.True(t, base.Add(time.Hour).Equal(*got.UpdatedAt()))
}

func TestRepository_UpdateStatusLostRace(t *testing.T) {
	repo := orderrepo.NewRepository(memory.NewDocumentStore())
	o := newOrder(t, 1, "A", base)
	require.NoError(t, repo.Add(t.Context(), o))

	_, err := o.ChangeStatus(order.Cancelled, base.Add(time.Hour))
	require.NoError(t, err)

	ok, err := repo.UpdateStatus(t.Context(), o, order.Shipped)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetByNumber(t.Context(), o.Number())
	require.NoError(t, err)
	assert.Equal(t, order.Pending, got.Status())
}

func TestRepository_UpdateStatusRequiresUpdatedAt(t *testing.T) {
	repo := orderrepo.NewRepository(memory.NewDocumentStore())
	o := newOrder(t, 1, "A", base)

	_, err := repo.UpdateStatus(t.Context(), o, order.Pending)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
