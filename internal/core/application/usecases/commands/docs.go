// Package commands contains business operations that modify system state.
// Every command is built through its constructor, which validates the input
// before a handler touches storage; handlers then load aggregates through the
// repository ports, apply the change and persist it.
package commands

import "context"

// SequenceAllocator hands out strictly increasing values per counter name.
type SequenceAllocator interface {
	Next(ctx context.Context, name string) (int64, error)
}
