package commands

import (
	"errors"
	"time"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrExpireCartsCommandIsNotConstructed = errors.New(
	"ExpireCartsCommand must be created via NewExpireCartsCommand constructor",
)

// ExpireCartsCommand removes carts not updated since cutoff.
type ExpireCartsCommand struct { //nolint:recvcheck //using for validation
	cutoff time.Time

	guard guard.ConstructorGuard
}

func NewExpireCartsCommand(cutoff time.Time) (ExpireCartsCommand, error) {
	if cutoff.IsZero() {
		return ExpireCartsCommand{}, errs.NewValueIsRequiredError("cutoff")
	}
	return ExpireCartsCommand{
		cutoff: cutoff.UTC(),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c ExpireCartsCommand) Validate() error {
	return c.guard.Validate(ErrExpireCartsCommandIsNotConstructed)
}

func (c ExpireCartsCommand) Cutoff() time.Time { return c.cutoff }
