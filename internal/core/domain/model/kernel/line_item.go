package kernel

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/pkg/errs"
)

// MaxQuantity bounds a single line's quantity.
const MaxQuantity = 10_000

// LineItem is a denormalized product snapshot inside an order or a cart. It
// is not a live reference: later product edits do not change it.
type LineItem struct {
	productID string
	name      string
	price     float64
	quantity  int
}

// NewLineItem validates and returns a line item. The product id is required,
// the price may be zero but not negative, and quantity must be in
// [1, MaxQuantity].
func NewLineItem(productID, name string, price float64, quantity int) (LineItem, error) {
	var problems []error

	productID = strings.TrimSpace(productID)
	if productID == "" {
		problems = append(problems, errs.NewValueIsRequiredError("product_id"))
	}
	if price < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"price", fmt.Errorf("%v is negative", price)))
	}
	if err := validateQuantity(quantity); err != nil {
		problems = append(problems, err)
	}

	if err := errors.Join(problems...); err != nil {
		return LineItem{}, err
	}

	return LineItem{
		productID: productID,
		name:      name,
		price:     price,
		quantity:  quantity,
	}, nil
}

func (i LineItem) ProductID() string { return i.productID }
func (i LineItem) Name() string      { return i.name }
func (i LineItem) Price() float64    { return i.price }
func (i LineItem) Quantity() int     { return i.quantity }

// Subtotal is price times quantity.
func (i LineItem) Subtotal() float64 {
	return i.price * float64(i.quantity)
}

// WithQuantity returns a copy of the item holding quantity.
func (i LineItem) WithQuantity(quantity int) (LineItem, error) {
	if err := validateQuantity(quantity); err != nil {
		return LineItem{}, err
	}
	i.quantity = quantity
	return i, nil
}

func validateQuantity(quantity int) error {
	if quantity < 1 || quantity > MaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxQuantity)
	}
	return nil
}
