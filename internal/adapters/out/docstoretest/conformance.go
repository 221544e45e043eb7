// Package docstoretest holds the behavioural contract every DocumentStore
// adapter must satisfy. Adapter tests call Run with a constructor for their
// store; the store must be created with UniqueIndexes.
package docstoretest

import (
	"context"
	"strings"
	"sync"
	"testing"

	"storefront/internal/core/ports"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// UniqueCollection is the collection the suite expects to carry a unique
// index on "email".
const UniqueCollection = "conformance_unique"

// ConcurrentIncrements is the number of parallel increments the suite issues
// against one counter.
const ConcurrentIncrements = 20

// UniqueIndexes must be passed to the store under test.
func UniqueIndexes() []ports.UniqueIndex {
	return []ports.UniqueIndex{{Collection: UniqueCollection, Field: "email"}}
}

// Run executes the suite. Collections are named per test so one store may
// be shared between subtests and runs.
func Run(t *testing.T, newStore func(t *testing.T) ports.DocumentStore) {
	t.Helper()

	tests := []struct {
		name string
		fn   func(t *testing.T, store ports.DocumentStore)
	}{
		{"InsertAssignsID", testInsertAssignsID},
		{"InsertKeepsExplicitID", testInsertKeepsExplicitID},
		{"FindOneNotFound", testFindOneNotFound},
		{"FindManyFilters", testFindManyFilters},
		{"NestedValuesRoundTrip", testNestedValuesRoundTrip},
		{"ReturnedDocumentsAreCopies", testReturnedDocumentsAreCopies},
		{"UpdateOneCounts", testUpdateOneCounts},
		{"UpdateOneCompareAndSet", testUpdateOneCompareAndSet},
		{"DeleteOne", testDeleteOne},
		{"IncrementCreatesAtZero", testIncrementCreatesAtZero},
		{"IncrementKeysAreIndependent", testIncrementKeysAreIndependent},
		{"IncrementIsAtomic", testIncrementIsAtomic},
		{"UniqueIndex", testUniqueIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newStore(t))
		})
	}
}

func collectionName(t *testing.T) string {
	t.Helper()
	return "c" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

func testInsertAssignsID(t *testing.T, store ports.DocumentStore) {
	ctx := t.Context()
	coll := collectionName(t)

	id, err := store.InsertOne(ctx, coll, ports.Document{"customer_id": "C1", "total_price": 150})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	doc, err := store.FindOne(ctx, coll, ports.Filter{ports.IDField: id})
	require.NoError(t, err)
	assert.Equal(t, id, doc[ports.IDField])
	assert.Equal(t, "C1", doc["customer_id"])
	assert.InDelta(t, 150.0, doc["total_price"], 0)
}

func testInsertKeepsExplicitID(t *testing.T, store ports.DocumentStore) {
	ctx := t.Context()
	coll := collectionName(t)

	id, err := store.InsertOne(ctx, coll, ports.Document{ports.IDField: "order_id", "seq": 0})
	require.NoError(t, err)
	assert.Equal(t, "order_id", id)

	_, err = store.InsertOne(ctx, coll, ports.Document{ports.IDField: "order_id", "seq": 5})
	require.ErrorIs(t, err, ports.ErrDuplicateKey)

	doc, err := store.FindOne(ctx, coll, ports.Filter{ports.IDField: "order_id"})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, doc["seq"], 0)
}

func testFindOneNotFound(t *testing.T, store ports.DocumentStore) {
	ctx := t.Context()
	coll := collectionName(t)

	_, err := store.FindOne(ctx, coll, ports.Filter{"order_id": "ORD-000001"})
	require.ErrorIs(t, err, ports.ErrDocumentNotFound)

	_, err = store.InsertOne(ctx, coll, ports.Document{"order_id": "ORD-000001"})
	require.NoError(t, err)

	_, err = store.FindOne(ctx, coll, ports.Filter{ports.IDField: uuid.NewString()})
	require.ErrorIs(t, err, ports.ErrDocumentNotFound)
}

func testFindManyFilters(t *testing.T, store ports.DocumentStore) {
	ctx := t.Context()
	coll := collectionName(t)

	for _, doc := range []ports.Document{
		{"customer_id": "A", "status": "pending"},
		{"customer_id": "A", "status": "shipped"},
		{"customer_id": "B", "status": "pending"},
	} {
		_, err := store.InsertOne(ctx, coll, doc)
		require.NoError(t, err)
	}

	all, err := store.FindMany(ctx, coll, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byCustomer, err := store.FindMany(ctx, coll, ports.Filter{"customer_id": "A"})
	require.NoError(t, err)
	assert.Len(t, byCustomer, 2)

	both, err := store.FindMany(ctx, coll, ports.Filter{"customer_id": "A", "status": "pending"})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "pending", both[0]["status"])

	none, err := store.FindMany(ctx, coll, ports.Filter{"customer_id": "Z"})
	require.NoError(t, err)
	assert.Empty(t, none)

	empty, err := store.FindMany(ctx, collectionName(t), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func testNestedValuesRoundTrip(t *testing.T, store ports.DocumentStore) {
	ctx := t.Context()
	coll := collectionName(t)

	id, err := store.InsertOne(ctx, coll, ports.Document{
		"items": []any{
			map[string]any{"product_id": "p1", "name": "Lamp", "price": 75.5, "quantity": 2},
		},
		"gst_required": true,
		"gst_number":   nil,
		"created_at":   "2026-01-02T03:04:05.000000006Z",
	})
	require.NoError(t, err)

	doc, err := store.FindOne(ctx, coll, ports.Filter{ports.IDField: id})
	require.NoError(t, err)

	items, ok := doc["items"].([]any)
	require.True(t, ok, "items is %T", doc["items"])
	require.Len(t, items, 1)
	item, ok := items[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "p1", item["product_id"])
	assert.InDelta(t, 75.5, item["price"], 1e-9)
	assert.InDelta(t, 2.0, item["quantity"], 0)
	assert.Equal(t, true, doc["gst_required"])
	assert.Nil(t, doc["gst_number"])
	assert.Equal(t, "2026-01-02T03:04:05.000000006Z", doc["created_at"])
}

func testReturnedDocumentsAreCopies(t *testing.T, store ports.DocumentStore) {
	ctx := t.Context()
	coll := collectionName(t)

	src := ports.Document{"status": "pending"}
	id, err := store.InsertOne(ctx, coll, src)
	require.NoError(t, err)
	src["status"] = "mutated"

	doc, err := store.FindOne(ctx, coll, ports.Filter{ports.IDField: id})
	require.NoError(t, err)
	doc["status"] = "mutated"

	again, err := store.FindOne(ctx, coll, ports.Filter{ports.IDField: id})
	require.NoError(t, err)
	assert.Equal(t, "pending", again["status"])
}

func testUpdateOneCounts(t *testing.T, store ports.DocumentStore) {
	ctx := t.Context()
	coll := collectionName(t)

	_, err := store.InsertOne(ctx, coll, ports.Document{"order_id": "ORD-000001", "status": "pending"})
	require.NoError(t, err)

	res, err := store.UpdateOne(ctx, coll,
		ports.Filter{"order_id": "ORD-000001"},
		ports.Patch{"status": "shipped", "updated_at": "2026-01-02T00:00:00Z"})
	require.NoError(t, err)
	assert.Equal(t, ports.UpdateResult{Matched: 1, Modified: 1}, res)

	res, err = store.UpdateOne(ctx, coll, ports.Filter{"order_id": "ORD-000001"}, ports.Patch{"status": "shipped"})
	require.NoError(t, err)
	assert.Equal(t, ports.UpdateResult{Matched: 1, Modified: 0}, res)

	res, err = store.UpdateOne(ctx, coll, ports.Filter{"order_id": "ORD-999999"}, ports.Patch{"status": "shipped"})
	require.NoError(t, err)
	assert.Equal(t, ports.UpdateResult{}, res)

	doc, err := store.FindOne(ctx, coll, ports.Filter{"order_id": "ORD-000001"})
	require.NoError(t, err)
	assert.Equal(t, "shipped", doc["status"])
	assert.Equal(t, "2026-01-02T00:00:00Z", doc["updated_at"])
}

func testUpdateOneCompareAndSet(t *testing.T, store ports.DocumentStore) {
	ctx := t.Context()
	coll := collectionName(t)

	_, err := store.InsertOne(ctx, coll, ports.Document{"order_id": "ORD-000002", "status": "pending"})
	require.NoError(t, err)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners int64
	)
	for _, next := range []string{"shipped", "cancelled", "delivered", "shipped"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, updErr := store.UpdateOne(context.Background(), coll,
				ports.Filter{"order_id": "ORD-000002", "status": "pending"},
				ports.Patch{"status": next})
			assert.NoError(t, updErr)
			mu.Lock()
			winners += res.Modified
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), winners)
}

func testDeleteOne(t *testing.T, store ports.DocumentStore) {
	ctx := t.Context()
	coll := collectionName(t)

	_, err := store.InsertOne(ctx, coll, ports.Document{"customer_id": "C1"})
	require.NoError(t, err)
	_, err = store.InsertOne(ctx, coll, ports.Document{"customer_id": "C2"})
	require.NoError(t, err)

	n, err := store.DeleteOne(ctx, coll, ports.Filter{"customer_id": "C1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = store.DeleteOne(ctx, coll, ports.Filter{"customer_id": "C1"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	rest, err := store.FindMany(ctx, coll, nil)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "C2", rest[0]["customer_id"])
}

func testIncrementCreatesAtZero(t *testing.T, store ports.DocumentStore) {
	ctx := t.Context()
	coll := collectionName(t)

	v, err := store.FindOneAndIncrement(ctx, coll, "order_id", "seq", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	v, err = store.FindOneAndIncrement(ctx, coll, "order_id", "seq", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)

	v, err = store.FindOneAndIncrement(ctx, coll, "order_id", "seq", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)

	doc, err := store.FindOne(ctx, coll, ports.Filter{ports.IDField: "order_id"})
	require.NoError(t, err)
	assert.InDelta(t, 7.0, doc["seq"], 0)
}

func testIncrementKeysAreIndependent(t *testing.T, store ports.DocumentStore) {
	ctx := t.Context()
	coll := collectionName(t)

	for range 3 {
		_, err := store.FindOneAndIncrement(ctx, coll, "order_id", "seq", 1)
		require.NoError(t, err)
	}

	v, err := store.FindOneAndIncrement(ctx, coll, "invoice_id", "seq", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func testIncrementIsAtomic(t *testing.T, store ports.DocumentStore) {
	coll := collectionName(t)

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		values = make(map[int64]struct{}, ConcurrentIncrements)
	)
	for range ConcurrentIncrements {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := store.FindOneAndIncrement(context.Background(), coll, "order_id", "seq", 1)
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			values[v] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, values, ConcurrentIncrements)
	for v := range values {
		assert.GreaterOrEqual(t, v, int64(1))
		assert.LessOrEqual(t, v, int64(ConcurrentIncrements))
	}
}

func testUniqueIndex(t *testing.T, store ports.DocumentStore) {
	ctx := t.Context()
	email := uuid.NewString() + "@example.com"

	_, err := store.InsertOne(ctx, UniqueCollection, ports.Document{"email": email})
	require.NoError(t, err)

	_, err = store.InsertOne(ctx, UniqueCollection, ports.Document{"email": email})
	require.ErrorIs(t, err, ports.ErrDuplicateKey)

	_, err = store.InsertOne(ctx, UniqueCollection, ports.Document{"name": "no email"})
	require.NoError(t, err)
	_, err = store.InsertOne(ctx, UniqueCollection, ports.Document{"name": "no email either"})
	require.NoError(t, err)

	matches, err := store.FindMany(ctx, UniqueCollection, ports.Filter{"email": email})
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}
