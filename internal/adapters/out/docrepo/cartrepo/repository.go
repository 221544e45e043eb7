package cartrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/jsondoc"
)

// Repository implements ports.CartRepository.
type Repository struct {
	store ports.DocumentStore
}

var _ ports.CartRepository = (*Repository)(nil)

func NewRepository(store ports.DocumentStore) *Repository {
	return &Repository{store: store}
}

func (r *Repository) Get(ctx context.Context, customerID string) (*cart.Cart, error) {
	doc, err := r.store.FindOne(ctx, Collection, ports.Filter{ports.IDField: customerID})
	if err != nil {
		if errors.Is(err, ports.ErrDocumentNotFound) {
			return nil, errs.NewObjectNotFoundError("customer_id", customerID)
		}
		return nil, fmt.Errorf("find cart %s: %w", customerID, err)
	}

	var dto CartDTO
	if err = jsondoc.Decode(doc, &dto); err != nil {
		return nil, err
	}
	c, err := toDomain(dto)
	if err != nil {
		return nil, fmt.Errorf("cart document %s: %w", customerID, err)
	}
	return c, nil
}

// Save replaces the stored items and totals, inserting the cart first when
// the customer has none. A concurrent first insert falls back to the update.
func (r *Repository) Save(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	doc, err := jsondoc.Encode(fromDomain(aggregate))
	if err != nil {
		return err
	}

	updated, err := r.update(ctx, doc)
	if err != nil || updated {
		return err
	}

	if _, err = r.store.InsertOne(ctx, Collection, doc); err == nil {
		return nil
	}
	if !errors.Is(err, ports.ErrDuplicateKey) {
		return fmt.Errorf("insert cart %s: %w", aggregate.CustomerID(), err)
	}

	if _, err = r.update(ctx, doc); err != nil {
		return err
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, customerID string) error {
	if _, err := r.store.DeleteOne(ctx, Collection, ports.Filter{ports.IDField: customerID}); err != nil {
		return fmt.Errorf("delete cart %s: %w", customerID, err)
	}
	return nil
}

// DeleteStale removes carts whose updated_at is before cutoff. Each delete is
// guarded by the updated_at value that was read, so a cart touched after the
// scan survives.
func (r *Repository) DeleteStale(ctx context.Context, cutoff time.Time) (int, error) {
	docs, err := r.store.FindMany(ctx, Collection, nil)
	if err != nil {
		return 0, fmt.Errorf("find carts: %w", err)
	}

	removed := 0
	for _, doc := range docs {
		var dto CartDTO
		if err = jsondoc.Decode(doc, &dto); err != nil {
			return removed, err
		}
		if !dto.UpdatedAt.Before(cutoff) {
			continue
		}

		n, delErr := r.store.DeleteOne(ctx, Collection, ports.Filter{
			ports.IDField: dto.ID,
			"updated_at":  doc["updated_at"],
		})
		if delErr != nil {
			return removed, fmt.Errorf("delete cart %s: %w", dto.ID, delErr)
		}
		removed += int(n)
	}
	return removed, nil
}

func (r *Repository) update(ctx context.Context, doc ports.Document) (bool, error) {
	res, err := r.store.UpdateOne(ctx, Collection,
		ports.Filter{ports.IDField: doc[ports.IDField]},
		ports.Patch{
			"items":       doc["items"],
			"total_price": doc["total_price"],
			"updated_at":  doc["updated_at"],
		},
	)
	if err != nil {
		return false, fmt.Errorf("update cart %v: %w", doc[ports.IDField], err)
	}
	return res.Matched > 0, nil
}
