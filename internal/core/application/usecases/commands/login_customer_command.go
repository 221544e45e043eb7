package commands

import (
	"errors"

	"storefront/internal/core/domain/model/customer"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrLoginCustomerCommandIsNotConstructed = errors.New(
	"LoginCustomerCommand must be created via NewLoginCustomerCommand constructor",
)

type LoginCustomerCommand struct { //nolint:recvcheck //using for validation
	email    string
	password string

	guard guard.ConstructorGuard
}

func NewLoginCustomerCommand(email, password string) (LoginCustomerCommand, error) {
	email = customer.NormalizeEmail(email)

	var problems []error
	if email == "" {
		problems = append(problems, errs.NewValueIsRequiredError("email"))
	}
	if password == "" {
		problems = append(problems, errs.NewValueIsRequiredError("password"))
	}
	if err := errors.Join(problems...); err != nil {
		return LoginCustomerCommand{}, err
	}

	return LoginCustomerCommand{
		email:    email,
		password: password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c LoginCustomerCommand) Validate() error {
	return c.guard.Validate(ErrLoginCustomerCommandIsNotConstructed)
}

func (c LoginCustomerCommand) Email() string    { return c.email }
func (c LoginCustomerCommand) Password() string { return c.password }
