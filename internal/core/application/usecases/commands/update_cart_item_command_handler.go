package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/ports"
)

type UpdateCartItemCommandHandler struct {
	cartRepo ports.CartRepository
}

func NewUpdateCartItemCommandHandler(cartRepo ports.CartRepository) UpdateCartItemCommandHandler {
	return UpdateCartItemCommandHandler{cartRepo: cartRepo}
}

// Handle returns an errs.ObjectNotFoundError when the customer has no cart or
// the product is not in it.
func (h UpdateCartItemCommandHandler) Handle(ctx context.Context, cmd UpdateCartItemCommand) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	current, err := h.cartRepo.Get(ctx, cmd.CustomerID())
	if err != nil {
		return nil, err
	}
	if err = current.SetQuantity(cmd.ProductID(), cmd.Quantity(), time.Now()); err != nil {
		return nil, err
	}
	if err = h.cartRepo.Save(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}
