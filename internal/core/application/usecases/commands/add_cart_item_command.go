package commands

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrAddCartItemCommandIsNotConstructed = errors.New(
	"AddCartItemCommand must be created via NewAddCartItemCommand constructor",
)

// AddCartItemCommand puts an item into the customer's cart, creating the
// cart on first use.
type AddCartItemCommand struct { //nolint:recvcheck //using for validation
	customerID string
	item       kernel.LineItem

	guard guard.ConstructorGuard
}

func NewAddCartItemCommand(customerID string, item LineItemInput) (AddCartItemCommand, error) {
	cmd := AddCartItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	lineItem, itemErr := kernel.NewLineItem(item.ProductID, item.Name, item.Price, item.Quantity)
	if err := errors.Join(requireCustomerID(&cmd.customerID, customerID), itemErr); err != nil {
		return AddCartItemCommand{}, err
	}
	cmd.item = lineItem

	return cmd, nil
}

func (c AddCartItemCommand) Validate() error {
	return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
}

func (c AddCartItemCommand) CustomerID() string   { return c.customerID }
func (c AddCartItemCommand) Item() kernel.LineItem { return c.item }

func requireCustomerID(dst *string, customerID string) error {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return errs.NewValueIsRequiredError("customer_id")
	}
	*dst = customerID
	return nil
}
