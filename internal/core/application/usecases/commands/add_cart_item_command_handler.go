package commands

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

type AddCartItemCommandHandler struct {
	cartRepo ports.CartRepository
}

func NewAddCartItemCommandHandler(cartRepo ports.CartRepository) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{cartRepo: cartRepo}
}

// Handle returns the cart as saved.
func (h AddCartItemCommandHandler) Handle(ctx context.Context, cmd AddCartItemCommand) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	current, err := h.cartRepo.Get(ctx, cmd.CustomerID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		current, err = cart.NewCart(cmd.CustomerID(), now)
	}
	if err != nil {
		return nil, err
	}

	if err = current.AddItem(cmd.Item(), now); err != nil {
		return nil, err
	}
	if err = h.cartRepo.Save(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}
