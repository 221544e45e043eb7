package cartrepo_test

import (
	"testing"
	"time"

	"storefront/internal/adapters/out/docrepo/cartrepo"
	"storefront/internal/adapters/out/memory"
	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func cartWith(t *testing.T, customerID string, now time.Time, productIDs ...string) *cart.Cart {
	t.Helper()
	c, err := cart.NewCart(customerID, now)
	require.NoError(t, err)
	for _, id := range productIDs {
		item, itemErr := kernel.NewLineItem(id, "Item "+id, 10, 1)
		require.NoError(t, itemErr)
		require.NoError(t, c.AddItem(item, now))
	}
	return c
}

func TestRepository_SaveInsertsThenUpdates(t *testing.T) {
	store := memory.NewDocumentStore()
	repo := cartrepo.NewRepository(store)

	c := cartWith(t, "AB12CD34", base, "P1")
	require.NoError(t, repo.Save(t.Context(), c))

	item, err := kernel.NewLineItem("P2", "Item P2", 5, 3)
	require.NoError(t, err)
	require.NoError(t, c.AddItem(item, base.Add(time.Minute)))
	require.NoError(t, repo.Save(t.Context(), c))

	docs, err := store.FindMany(t.Context(), cartrepo.Collection, nil)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "AB12CD34", docs[0][ports.IDField])

	got, err := repo.Get(t.Context(), "AB12CD34")
	require.NoError(t, err)
	require.Len(t, got.Items(), 2)
	assert.InDelta(t, 25.0, got.TotalPrice(), 1e-9)
	assert.True(t, base.Equal(got.CreatedAt()))
	assert.True(t, base.Add(time.Minute).Equal(got.UpdatedAt()))
}

func TestRepository_GetMissing(t *testing.T) {
	repo := cartrepo.NewRepository(memory.NewDocumentStore())

	_, err := repo.Get(t.Context(), "nobody")
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestRepository_SaveEmptyCart(t *testing.T) {
	repo := cartrepo.NewRepository(memory.NewDocumentStore())
	c := cartWith(t, "AB12CD34", base)
	require.NoError(t, repo.Save(t.Context(), c))

	got, err := repo.Get(t.Context(), "AB12CD34")
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
	assert.Zero(t, got.TotalPrice())
}

func TestRepository_DeleteIsIdempotent(t *testing.T) {
	repo := cartrepo.NewRepository(memory.NewDocumentStore())
	require.NoError(t, repo.Save(t.Context(), cartWith(t, "AB12CD34", base, "P1")))

	require.NoError(t, repo.Delete(t.Context(), "AB12CD34"))
	require.NoError(t, repo.Delete(t.Context(), "AB12CD34"))

	_, err := repo.Get(t.Context(), "AB12CD34")
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestRepository_DeleteStale(t *testing.T) {
	repo := cartrepo.NewRepository(memory.NewDocumentStore())
	require.NoError(t, repo.Save(t.Context(), cartWith(t, "old", base, "P1")))
	require.NoError(t, repo.Save(t.Context(), cartWith(t, "edge", base.Add(time.Hour), "P1")))
	require.NoError(t, repo.Save(t.Context(), cartWith(t, "fresh", base.Add(2*time.Hour), "P1")))

	removed, err := repo.DeleteStale(t.Context(), base.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = repo.Get(t.Context(), "old")
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	_, err = repo.Get(t.Context(), "edge")
	require.NoError(t, err)
	_, err = repo.Get(t.Context(), "fresh")
	require.NoError(t, err)
}
