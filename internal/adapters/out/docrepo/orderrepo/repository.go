package orderrepo

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/jsondoc"
)

// Repository implements ports.OrderRepository.
type Repository struct {
	store ports.DocumentStore
}

var _ ports.OrderRepository = (*Repository)(nil)

func NewRepository(store ports.DocumentStore) *Repository {
	return &Repository{store: store}
}

// Add saves a new order.
func (r *Repository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	doc, err := jsondoc.Encode(fromDomain(aggregate))
	if err != nil {
		return err
	}
	if _, err = r.store.InsertOne(ctx, Collection, doc); err != nil {
		if errors.Is(err, ports.ErrDuplicateKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("order_id", aggregate.Number().String(), err)
		}
		return fmt.Errorf("insert order %s: %w", aggregate.Number(), err)
	}
	return nil
}

// GetByNumber retrieves an order by its human-readable number.
func (r *Repository) GetByNumber(ctx context.Context, number order.Number) (*order.Order, error) {
	doc, err := r.store.FindOne(ctx, Collection, ports.Filter{"order_id": number.String()})
	if err != nil {
		if errors.Is(err, ports.ErrDocumentNotFound) {
			return nil, errs.NewObjectNotFoundError("order_id", number.String())
		}
		return nil, fmt.Errorf("find order %s: %w", number, err)
	}
	return decode(doc)
}

// GetAll retrieves every order.
func (r *Repository) GetAll(ctx context.Context) ([]*order.Order, error) {
	return r.findMany(ctx, nil)
}

// GetByCustomer retrieves the orders placed by customerID.
func (r *Repository) GetByCustomer(ctx context.Context, customerID string) ([]*order.Order, error) {
	return r.findMany(ctx, ports.Filter{"customer_id": customerID})
}

// UpdateStatus writes status and updated_at, guarded by the expected status.
func (r *Repository) UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) (bool, error) {
	if err := aggregate.Validate(); err != nil {
		return false, err
	}
	updatedAt := aggregate.UpdatedAt()
	if updatedAt == nil {
		return false, errs.NewValueIsRequiredError("updated_at")
	}

	res, err := r.store.UpdateOne(ctx, Collection,
		ports.Filter{
			ports.IDField: aggregate.ID().String(),
			"status":      expected.String(),
		},
		ports.Patch{
			"status":     aggregate.Status().String(),
			"updated_at": updatedAt.Format(time.RFC3339Nano),
		},
	)
	if err != nil {
		return false, fmt.Errorf("update order %s: %w", aggregate.Number(), err)
	}
	return res.Matched > 0, nil
}

func (r *Repository) findMany(ctx context.Context, filter ports.Filter) ([]*order.Order, error) {
	docs, err := r.store.FindMany(ctx, Collection, filter)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}

	orders := make([]*order.Order, 0, len(docs))
	for _, doc := range docs {
		o, decErr := decode(doc)
		if decErr != nil {
			return nil, decErr
		}
		orders = append(orders, o)
	}

	slices.SortStableFunc(orders, func(a, b *order.Order) int {
		if c := a.CreatedAt().Compare(b.CreatedAt()); c != 0 {
			return c
		}
		return cmp.Compare(a.Number().Seq(), b.Number().Seq())
	})
	return orders, nil
}

func decode(doc ports.Document) (*order.Order, error) {
	var dto OrderDTO
	if err := jsondoc.Decode(doc, &dto); err != nil {
		return nil, err
	}
	o, err := toDomain(dto)
	if err != nil {
		return nil, fmt.Errorf("order document %s: %w", dto.ID, err)
	}
	return o, nil
}
