package commands

import (
	"context"

	"storefront/internal/core/ports"
)

// ClearCartCommandHandler deletes the customer's cart. Clearing a cart that
// does not exist succeeds.
type ClearCartCommandHandler struct {
	cartRepo ports.CartRepository
}

func NewClearCartCommandHandler(cartRepo ports.CartRepository) ClearCartCommandHandler {
	return ClearCartCommandHandler{cartRepo: cartRepo}
}

func (h ClearCartCommandHandler) Handle(ctx context.Context, cmd ClearCartCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.cartRepo.Delete(ctx, cmd.CustomerID())
}
