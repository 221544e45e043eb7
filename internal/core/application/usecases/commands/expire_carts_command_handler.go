package commands

import (
	"context"

	"storefront/internal/core/ports"
)

type ExpireCartsCommandHandler struct {
	cartRepo ports.CartRepository
}

func NewExpireCartsCommandHandler(cartRepo ports.CartRepository) ExpireCartsCommandHandler {
	return ExpireCartsCommandHandler{cartRepo: cartRepo}
}

// Handle returns the number of carts removed.
func (h ExpireCartsCommandHandler) Handle(ctx context.Context, cmd ExpireCartsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}
	return h.cartRepo.DeleteStale(ctx, cmd.Cutoff())
}
