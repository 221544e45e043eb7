package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/ports"
)

type RemoveCartItemCommandHandler struct {
	cartRepo ports.CartRepository
}

func NewRemoveCartItemCommandHandler(cartRepo ports.CartRepository) RemoveCartItemCommandHandler {
	return RemoveCartItemCommandHandler{cartRepo: cartRepo}
}

// Handle fails with errs.ObjectNotFoundError when the customer has no cart.
// Removing a product that is not in the cart still saves it, refreshing
// updated_at.
func (h RemoveCartItemCommandHandler) Handle(ctx context.Context, cmd RemoveCartItemCommand) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	current, err := h.cartRepo.Get(ctx, cmd.CustomerID())
	if err != nil {
		return nil, err
	}
	current.RemoveItem(cmd.ProductID(), time.Now())
	if err = h.cartRepo.Save(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}
