package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Status is the lifecycle state of an order. Values are the literals stored
// in documents and accepted over HTTP. New orders start in Pending.
type Status string

const (
	Pending   Status = "pending"
	Shipped   Status = "shipped"
	Delivered Status = "delivered"
	Cancelled Status = "cancelled"
)

// Statuses lists the recognized values in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, Shipped, Delivered, Cancelled}
}

// transitions decides which status changes are permitted. Tighten the policy
// here; nothing else in the code base knows about allowed transitions.
//
//nolint:gochecknoglobals // read-only policy table
var transitions = map[Status]map[Status]bool{
	Pending:   {Pending: true, Shipped: true, Delivered: true, Cancelled: true},
	Shipped:   {Pending: true, Shipped: true, Delivered: true, Cancelled: true},
	Delivered: {Pending: true, Shipped: true, Delivered: true, Cancelled: true},
	Cancelled: {Pending: true, Shipped: true, Delivered: true, Cancelled: true},
}

// ParseStatus converts a literal into a Status. Matching is exact: "Shipped"
// is not a recognized value.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate reports whether s is one of the recognized values.
func (s Status) Validate() error {
	if _, ok := transitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

// CanTransitionTo reports whether an order in s may move to next.
func (s Status) CanTransitionTo(next Status) bool {
	return transitions[s][next]
}
