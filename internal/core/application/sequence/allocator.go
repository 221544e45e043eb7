// Package sequence issues strictly increasing integers per named counter.
//
// Counters live in the "counters" collection as {_id: name, seq: n}. The
// allocator never reads a counter on its own: every value comes from the
// store's atomic find-and-increment, which also creates a missing counter at
// 0 before applying the increment. Concurrent callers therefore receive
// distinct values without any locking in this process.
package sequence

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

const (
	// Collection holds counter documents.
	Collection = "counters"
	// Field is the counter value inside a counter document.
	Field = "seq"
)

// Allocator hands out sequence values backed by a document store.
type Allocator struct {
	store ports.DocumentStore
}

func NewAllocator(store ports.DocumentStore) *Allocator {
	return &Allocator{store: store}
}

// Next returns the next value of the named counter. The first value of a new
// counter is 1. A consumed value is never handed out again, even when the
// caller fails to use it.
func (a *Allocator) Next(ctx context.Context, name string) (int64, error) {
	if strings.TrimSpace(name) == "" {
		return 0, errs.NewValueIsRequiredError("sequence name")
	}

	value, err := a.store.FindOneAndIncrement(ctx, Collection, name, Field, 1)
	if err != nil {
		return 0, fmt.Errorf("allocate %s: %w", name, err)
	}
	if value < 1 {
		return 0, fmt.Errorf("allocate %s: store returned %d", name, value)
	}
	return value, nil
}
