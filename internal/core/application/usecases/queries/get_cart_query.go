package queries

import (
	"errors"
	"strings"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrGetCartQueryIsNotConstructed = errors.New(
	"GetCartQuery must be created via NewGetCartQuery constructor",
)

type GetCartQuery struct {
	customerID string

	guard guard.ConstructorGuard
}

func NewGetCartQuery(customerID string) (GetCartQuery, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return GetCartQuery{}, errs.NewValueIsRequiredError("customer_id")
	}
	return GetCartQuery{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

func (q GetCartQuery) CustomerID() string {
	return q.customerID
}
