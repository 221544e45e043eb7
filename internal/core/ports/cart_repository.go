package ports

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/cart"
)

// CartRepository persists one cart per customer.
type CartRepository interface {
	// Get returns the customer's cart or an errs.ObjectNotFoundError.
	Get(ctx context.Context, customerID string) (*cart.Cart, error)

	// Save inserts the cart if it was never stored and replaces its items
	// and totals otherwise.
	Save(ctx context.Context, aggregate *cart.Cart) error

	// Delete removes the customer's cart. Deleting a missing cart is not an
	// error.
	Delete(ctx context.Context, customerID string) error

	// DeleteStale removes carts last updated before cutoff and returns how
	// many were removed.
	DeleteStale(ctx context.Context, cutoff time.Time) (int, error)
}
