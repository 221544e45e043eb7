package commands

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrUpdateCartItemCommandIsNotConstructed = errors.New(
	"UpdateCartItemCommand must be created via NewUpdateCartItemCommand constructor",
)

// UpdateCartItemCommand sets the quantity of a product already in the cart.
type UpdateCartItemCommand struct { //nolint:recvcheck //using for validation
	customerID string
	productID  string
	quantity   int

	guard guard.ConstructorGuard
}

func NewUpdateCartItemCommand(customerID, productID string, quantity int) (UpdateCartItemCommand, error) {
	cmd := UpdateCartItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requireCustomerID(&cmd.customerID, customerID),
		cmd.setProductID(productID),
		cmd.setQuantity(quantity),
	); err != nil {
		return UpdateCartItemCommand{}, err
	}

	return cmd, nil
}

func (c UpdateCartItemCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCartItemCommandIsNotConstructed)
}

func (c UpdateCartItemCommand) CustomerID() string { return c.customerID }
func (c UpdateCartItemCommand) ProductID() string  { return c.productID }
func (c UpdateCartItemCommand) Quantity() int      { return c.quantity }

func (c *UpdateCartItemCommand) setProductID(productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return errs.NewValueIsRequiredError("product_id")
	}
	c.productID = productID
	return nil
}

func (c *UpdateCartItemCommand) setQuantity(quantity int) error {
	if quantity < 1 || quantity > kernel.MaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, kernel.MaxQuantity)
	}
	c.quantity = quantity
	return nil
}
