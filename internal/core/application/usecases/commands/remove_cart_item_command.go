package commands

import (
	"errors"
	"strings"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrRemoveCartItemCommandIsNotConstructed = errors.New(
	"RemoveCartItemCommand must be created via NewRemoveCartItemCommand constructor",
)

type RemoveCartItemCommand struct { //nolint:recvcheck //using for validation
	customerID string
	productID  string

	guard guard.ConstructorGuard
}

func NewRemoveCartItemCommand(customerID, productID string) (RemoveCartItemCommand, error) {
	cmd := RemoveCartItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	var productErr error
	if productID = strings.TrimSpace(productID); productID == "" {
		productErr = errs.NewValueIsRequiredError("product_id")
	}
	if err := errors.Join(requireCustomerID(&cmd.customerID, customerID), productErr); err != nil {
		return RemoveCartItemCommand{}, err
	}
	cmd.productID = productID

	return cmd, nil
}

func (c RemoveCartItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCartItemCommandIsNotConstructed)
}

func (c RemoveCartItemCommand) CustomerID() string { return c.customerID }
func (c RemoveCartItemCommand) ProductID() string  { return c.productID }
