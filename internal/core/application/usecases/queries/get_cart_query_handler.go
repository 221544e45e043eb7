package queries

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

type GetCartQueryHandler struct {
	cartRepo ports.CartRepository
}

func NewGetCartQueryHandler(cartRepo ports.CartRepository) GetCartQueryHandler {
	return GetCartQueryHandler{cartRepo: cartRepo}
}

// Handle returns an empty, unsaved cart when the customer has none.
func (h GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) (*cart.Cart, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	found, err := h.cartRepo.Get(ctx, query.CustomerID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return cart.NewCart(query.CustomerID(), time.Now())
	}
	if err != nil {
		return nil, err
	}
	return found, nil
}
