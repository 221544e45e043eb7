package commands

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// UpdateOrderStatusResult describes the outcome of a status update.
type UpdateOrderStatusResult struct {
	Order *order.Order
	// Previous is the status the order held before the update.
	Previous order.Status
	// Changed is false when the order already had the requested status. No
	// write happens in that case and updated_at keeps its value.
	Changed bool
}

// UpdateOrderStatusCommandHandler applies a status change with a
// compare-and-set on the status that was read.
type UpdateOrderStatusCommandHandler struct {
	orderRepo ports.OrderRepository
}

func NewUpdateOrderStatusCommandHandler(orderRepo ports.OrderRepository) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{orderRepo: orderRepo}
}

// Handle returns an errs.ObjectNotFoundError for an unknown number and an
// errs.VersionIsInvalidError when the order changed status between the read
// and the write.
func (h UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (UpdateOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return UpdateOrderStatusResult{}, err
	}

	current, err := h.orderRepo.GetByNumber(ctx, cmd.Number())
	if err != nil {
		return UpdateOrderStatusResult{}, err
	}

	previous := current.Status()
	changed, err := current.ChangeStatus(cmd.Status(), time.Now())
	if err != nil {
		return UpdateOrderStatusResult{}, err
	}
	if !changed {
		return UpdateOrderStatusResult{Order: current, Previous: previous}, nil
	}

	written, err := h.orderRepo.UpdateStatus(ctx, current, previous)
	if err != nil {
		return UpdateOrderStatusResult{}, err
	}
	if !written {
		return UpdateOrderStatusResult{}, errs.NewVersionIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("order %s is no longer %s", cmd.Number(), previous),
		)
	}

	return UpdateOrderStatusResult{Order: current, Previous: previous, Changed: true}, nil
}
