package ports

import (
	"context"

	"storefront/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates.
type OrderRepository interface {
	// Add stores a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// GetByNumber returns the order with the given human-readable number, or
	// an errs.ObjectNotFoundError.
	GetByNumber(ctx context.Context, number order.Number) (*order.Order, error)

	// GetAll returns every order ordered by creation time, then number.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// GetByCustomer returns the customer's orders ordered by creation time.
	// An empty slice is not an error here.
	GetByCustomer(ctx context.Context, customerID string) ([]*order.Order, error)

	// UpdateStatus writes the aggregate's status and updated_at only if the
	// stored status still equals expected. It reports whether the write took
	// place.
	UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) (bool, error)
}
