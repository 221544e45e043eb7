package ports

import (
	"context"

	"storefront/internal/core/domain/model/customer"
)

// CustomerRepository persists registered customers.
type CustomerRepository interface {
	// Add stores a new customer. A taken email yields an
	// errs.ObjectAlreadyExistsError.
	Add(ctx context.Context, aggregate *customer.Customer) error

	// GetByEmail returns the customer or an errs.ObjectNotFoundError.
	GetByEmail(ctx context.Context, email string) (*customer.Customer, error)
}
