package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of the order lifecycle.
//
// Invariants:
//   - id and number are assigned once at creation and never change
//   - total price is greater than 0
//   - status is a recognized value
//   - updatedAt is nil until the first status change
type Order struct {
	id         kernel.UUID
	number     Number
	customerID string
	items      []kernel.LineItem
	totalPrice float64
	status     Status
	createdAt  time.Time
	updatedAt  *time.Time

	isConstructed bool
}

// NewOrder creates a Pending order. The customer id is an opaque reference
// and is not checked against registered customers.
//
//	number, _ := order.NewNumber(seq)
//	o, err := order.NewOrder(kernel.NewUUID(), number, "AB12CD34", items, 150, time.Now())
func NewOrder(
	id kernel.UUID,
	number Number,
	customerID string,
	items []kernel.LineItem,
	totalPrice float64,
	createdAt time.Time,
) (*Order, error) {
	order := &Order{
		status:        Pending,
		createdAt:     createdAt.UTC(),
		items:         append([]kernel.LineItem(nil), items...),
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setNumber(number),
		order.setCustomerID(customerID),
		order.setTotalPrice(totalPrice),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder rebuilds an order read from storage.
func RestoreOrder(
	id kernel.UUID,
	number Number,
	customerID string,
	items []kernel.LineItem,
	totalPrice float64,
	status Status,
	createdAt time.Time,
	updatedAt *time.Time,
) (*Order, error) {
	order, err := NewOrder(id, number, customerID, items, totalPrice, createdAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}

	order.status = status
	if updatedAt != nil {
		t := updatedAt.UTC()
		order.updatedAt = &t
	}
	return order, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Number() Number {
	return o.number
}

func (o *Order) CustomerID() string {
	return o.customerID
}

// Items returns a copy of the line items in their original order.
func (o *Order) Items() []kernel.LineItem {
	return append([]kernel.LineItem(nil), o.items...)
}

func (o *Order) TotalPrice() float64 {
	return o.totalPrice
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt is nil until the first status change.
func (o *Order) UpdatedAt() *time.Time {
	if o.updatedAt == nil {
		return nil
	}
	t := *o.updatedAt
	return &t
}

// ChangeStatus moves the order to next and stamps updatedAt with at. Setting
// the status the order already holds is a no-op that reports changed=false
// and leaves updatedAt untouched.
func (o *Order) ChangeStatus(next Status, at time.Time) (bool, error) {
	if err := next.Validate(); err != nil {
		return false, err
	}
	if next == o.status {
		return false, nil
	}
	if !o.status.CanTransitionTo(next) {
		return false, errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%s cannot change to %s", o.status, next))
	}

	t := at.UTC()
	o.status = next
	o.updatedAt = &t
	return true, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number Number) error {
	if number.IsZero() {
		return errs.NewValueIsRequiredError("order_id")
	}
	o.number = number
	return nil
}

func (o *Order) setCustomerID(customerID string) error {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return errs.NewValueIsRequiredError("customer_id")
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setTotalPrice(totalPrice float64) error {
	if totalPrice <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("total_price", fmt.Errorf("%v is not greater than 0", totalPrice))
	}
	o.totalPrice = totalPrice
	return nil
}
