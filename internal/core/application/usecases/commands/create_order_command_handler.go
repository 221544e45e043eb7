package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// CreateOrderCommandHandler allocates the next order number and stores a
// pending order under it.
//
// A number consumed by a failed insert is not reused, so numbers are unique
// and increasing but may have gaps.
type CreateOrderCommandHandler struct {
	allocator SequenceAllocator
	orderRepo ports.OrderRepository
}

func NewCreateOrderCommandHandler(allocator SequenceAllocator, orderRepo ports.OrderRepository) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		allocator: allocator,
		orderRepo: orderRepo,
	}
}

// Handle returns the stored order, including its id and number.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	seq, err := h.allocator.Next(ctx, order.SequenceName)
	if err != nil {
		return nil, err
	}
	number, err := order.NewNumber(seq)
	if err != nil {
		return nil, err
	}

	created, err := order.NewOrder(kernel.NewUUID(), number, cmd.CustomerID(), cmd.Items(), cmd.TotalPrice(), time.Now())
	if err != nil {
		return nil, err
	}

	if err = h.orderRepo.Add(ctx, created); err != nil {
		return nil, err
	}

	return created, nil
}
