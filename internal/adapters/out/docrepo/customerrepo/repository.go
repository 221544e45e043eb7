package customerrepo

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/customer"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/jsondoc"
)

// Repository implements ports.CustomerRepository. The store must be built
// with UniqueIndexes for email uniqueness to hold.
type Repository struct {
	store ports.DocumentStore
}

var _ ports.CustomerRepository = (*Repository)(nil)

func NewRepository(store ports.DocumentStore) *Repository {
	return &Repository{store: store}
}

func (r *Repository) Add(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	doc, err := jsondoc.Encode(fromDomain(aggregate))
	if err != nil {
		return err
	}
	if _, err = r.store.InsertOne(ctx, Collection, doc); err != nil {
		if errors.Is(err, ports.ErrDuplicateKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("email", aggregate.Email(), err)
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	email = customer.NormalizeEmail(email)

	doc, err := r.store.FindOne(ctx, Collection, ports.Filter{"email": email})
	if err != nil {
		if errors.Is(err, ports.ErrDocumentNotFound) {
			return nil, errs.NewObjectNotFoundError("email", email)
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}

	var dto CustomerDTO
	if err = jsondoc.Decode(doc, &dto); err != nil {
		return nil, err
	}
	c, err := toDomain(dto)
	if err != nil {
		return nil, fmt.Errorf("customer document %s: %w", dto.ID, err)
	}
	return c, nil
}
