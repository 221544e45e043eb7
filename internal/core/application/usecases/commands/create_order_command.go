package commands

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// LineItemInput is an order or cart line as submitted by a client.
type LineItemInput struct {
	ProductID string
	Name      string
	Price     float64
	Quantity  int
}

// CreateOrderCommand places a new order for a customer. The order number is
// not part of the command; it is allocated by the handler.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("AB12CD34", []LineItemInput{
//	    {ProductID: "P1", Name: "Mug", Price: 12.5, Quantity: 2},
//	}, 25)
//	if err != nil {
//	    return err // nothing was allocated
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID string
	items      []kernel.LineItem
	totalPrice float64

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates every field and reports all problems at
// once.
func NewCreateOrderCommand(customerID string, items []LineItemInput, totalPrice float64) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setItems(items),
		cmd.setTotalPrice(totalPrice),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) CustomerID() string {
	return c.customerID
}

func (c CreateOrderCommand) Items() []kernel.LineItem {
	return append([]kernel.LineItem(nil), c.items...)
}

func (c CreateOrderCommand) TotalPrice() float64 {
	return c.totalPrice
}

func (c *CreateOrderCommand) setCustomerID(customerID string) error {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return errs.NewValueIsRequiredError("customer_id")
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setItems(inputs []LineItemInput) error {
	items, err := lineItems(inputs)
	if err != nil {
		return err
	}
	c.items = items
	return nil
}

func (c *CreateOrderCommand) setTotalPrice(totalPrice float64) error {
	if totalPrice <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("total_price", fmt.Errorf("%v is not greater than 0", totalPrice))
	}
	c.totalPrice = totalPrice
	return nil
}

func lineItems(inputs []LineItemInput) ([]kernel.LineItem, error) {
	items := make([]kernel.LineItem, 0, len(inputs))
	var problems []error
	for i, in := range inputs {
		item, err := kernel.NewLineItem(in.ProductID, in.Name, in.Price, in.Quantity)
		if err != nil {
			problems = append(problems, fmt.Errorf("items[%d]: %w", i, err))
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	return items, nil
}
