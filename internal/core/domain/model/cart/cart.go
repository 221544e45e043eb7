// Package cart provides the shopping cart aggregate. Each customer has at most
// one cart; its total is recomputed from the items on every change.
package cart

import (
	"errors"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart constructor")

type Cart struct {
	customerID string
	items      []kernel.LineItem
	totalPrice float64
	createdAt  time.Time
	updatedAt  time.Time

	isConstructed bool
}

// NewCart returns an empty cart for the customer.
func NewCart(customerID string, now time.Time) (*Cart, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, errs.NewValueIsRequiredError("customer_id")
	}

	now = now.UTC()
	return &Cart{
		customerID:    customerID,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreCart rebuilds a stored cart. The stored total is ignored and
// recomputed from items.
func RestoreCart(customerID string, items []kernel.LineItem, createdAt, updatedAt time.Time) (*Cart, error) {
	c, err := NewCart(customerID, createdAt)
	if err != nil {
		return nil, err
	}
	c.items = append(c.items, items...)
	c.updatedAt = updatedAt.UTC()
	c.recalculate()
	return c, nil
}

func (c *Cart) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCartIsNotConstructed
	}
	return nil
}

func (c *Cart) CustomerID() string { return c.customerID }

func (c *Cart) Items() []kernel.LineItem {
	return append([]kernel.LineItem(nil), c.items...)
}

func (c *Cart) TotalPrice() float64  { return c.totalPrice }
func (c *Cart) CreatedAt() time.Time { return c.createdAt }
func (c *Cart) UpdatedAt() time.Time { return c.updatedAt }

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// AddItem appends item, or adds its quantity to the line already holding the
// same product.
func (c *Cart) AddItem(item kernel.LineItem, now time.Time) error {
	for i, existing := range c.items {
		if existing.ProductID() != item.ProductID() {
			continue
		}
		merged, err := existing.WithQuantity(existing.Quantity() + item.Quantity())
		if err != nil {
			return err
		}
		c.items[i] = merged
		c.touch(now)
		return nil
	}

	c.items = append(c.items, item)
	c.touch(now)
	return nil
}

// SetQuantity replaces the quantity of a product already in the cart.
func (c *Cart) SetQuantity(productID string, quantity int, now time.Time) error {
	for i, existing := range c.items {
		if existing.ProductID() != productID {
			continue
		}
		updated, err := existing.WithQuantity(quantity)
		if err != nil {
			return err
		}
		c.items[i] = updated
		c.touch(now)
		return nil
	}

	return errs.NewObjectNotFoundError("product_id", productID)
}

// RemoveItem drops the product from the cart. It reports whether the product
// was present; the cart is touched either way.
func (c *Cart) RemoveItem(productID string, now time.Time) bool {
	kept := c.items[:0]
	removed := false
	for _, item := range c.items {
		if item.ProductID() == productID {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	c.items = kept
	c.touch(now)
	return removed
}

func (c *Cart) touch(now time.Time) {
	c.updatedAt = now.UTC()
	c.recalculate()
}

func (c *Cart) recalculate() {
	total := 0.0
	for _, item := range c.items {
		total += item.Subtotal()
	}
	c.totalPrice = total
}
