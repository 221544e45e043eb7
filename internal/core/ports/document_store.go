// Package ports defines the contracts between the storefront core and its
// infrastructure: the document store, the aggregate repositories built on it,
// and the token and password services used by customer auth.
package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrDocumentNotFound is returned by FindOne when no document matches.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrDuplicateKey is returned by InsertOne when the id or a unique field
	// is already taken.
	ErrDuplicateKey = errors.New("duplicate key")
)

// IDField is the filter and document key that addresses the storage id.
const IDField = "_id"

// Document is a loosely typed record. Values are JSON-compatible: strings,
// float64, bool, nil, []any and map[string]any. Adapters return documents in
// that normalized form regardless of how they were inserted.
type Document = map[string]any

// Filter matches documents whose top-level fields equal every given value.
// An empty filter matches every document in the collection.
type Filter = map[string]any

// Patch sets top-level fields on a matched document.
type Patch = map[string]any

// UpdateResult counts the effect of UpdateOne.
type UpdateResult struct {
	// Matched is 1 when a document satisfied the filter.
	Matched int64
	// Modified is 1 when the patch changed at least one stored value.
	Modified int64
}

// DocumentStore is a collection-scoped document database.
type DocumentStore interface {
	// FindOne returns a matching document or ErrDocumentNotFound.
	FindOne(ctx context.Context, collection string, filter Filter) (Document, error)

	// FindMany returns every matching document in no particular order.
	FindMany(ctx context.Context, collection string, filter Filter) ([]Document, error)

	// InsertOne stores doc. If doc has no _id the store assigns one; the id is
	// returned either way.
	InsertOne(ctx context.Context, collection string, doc Document) (string, error)

	// UpdateOne applies patch to the first document matching filter. Matching
	// and writing happen atomically, so a filter that includes the value
	// being replaced acts as a compare-and-set.
	UpdateOne(ctx context.Context, collection string, filter Filter, patch Patch) (UpdateResult, error)

	DeleteOne(ctx context.Context, collection string, filter Filter) (int64, error)

	// FindOneAndIncrement atomically adds delta to the integer field of the
	// document whose _id is key and returns the new value. A missing
	// document is created with the field at 0 before delta is applied.
	FindOneAndIncrement(ctx context.Context, collection, key, field string, delta int64) (int64, error)
}

// UniqueIndex declares a top-level field whose values must be distinct across
// a collection. Documents without the field are not constrained.
type UniqueIndex struct {
	Collection string
	Field      string
}

// EnsureDocumentID returns the _id of doc, assigning a random UUID when the
// field is absent. A present _id must be a non-empty string.
func EnsureDocumentID(doc Document) (string, error) {
	raw, ok := doc[IDField]
	if !ok || raw == nil {
		id := uuid.NewString()
		doc[IDField] = id
		return id, nil
	}
	id, ok := raw.(string)
	if !ok || id == "" {
		return "", fmt.Errorf("%s must be a non-empty string, got %T", IDField, raw)
	}
	return id, nil
}
