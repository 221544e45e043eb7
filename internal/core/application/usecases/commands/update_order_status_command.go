package commands

import (
	"errors"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand moves an order, addressed by its number, to a new
// status. Both literals are parsed here so a bad request never reaches
// storage.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	number order.Number
	status order.Status

	guard guard.ConstructorGuard
}

func NewUpdateOrderStatusCommand(orderID, status string) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setStatus(status),
		cmd.setNumber(orderID),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) Number() order.Number {
	return c.number
}

func (c UpdateOrderStatusCommand) Status() order.Status {
	return c.status
}

// setNumber reports a malformed number as not found: no stored order can
// carry it.
func (c *UpdateOrderStatusCommand) setNumber(orderID string) error {
	number, err := order.ParseNumber(orderID)
	if err != nil {
		return errs.NewObjectNotFoundErrorWithCause("order_id", orderID, err)
	}
	c.number = number
	return nil
}

func (c *UpdateOrderStatusCommand) setStatus(status string) error {
	parsed, err := order.ParseStatus(status)
	if err != nil {
		return err
	}
	c.status = parsed
	return nil
}
