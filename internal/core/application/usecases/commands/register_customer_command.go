package commands

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/customer"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrRegisterCustomerCommandIsNotConstructed = errors.New(
	"RegisterCustomerCommand must be created via NewRegisterCustomerCommand constructor",
)

// RegisterCustomerCommand signs up a new customer. GST details are kept only
// when gst.Required is set.
type RegisterCustomerCommand struct { //nolint:recvcheck //using for validation
	name     string
	email    string
	password string
	gst      customer.GST

	guard guard.ConstructorGuard
}

func NewRegisterCustomerCommand(name, email, password string, gst customer.GST) (RegisterCustomerCommand, error) {
	cmd := RegisterCustomerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setName(name),
		cmd.setEmail(email),
		cmd.setPassword(password),
	); err != nil {
		return RegisterCustomerCommand{}, err
	}

	if gst.Required {
		cmd.gst = gst
	}
	return cmd, nil
}

func (c RegisterCustomerCommand) Validate() error {
	return c.guard.Validate(ErrRegisterCustomerCommandIsNotConstructed)
}

func (c RegisterCustomerCommand) Name() string      { return c.name }
func (c RegisterCustomerCommand) Email() string     { return c.email }
func (c RegisterCustomerCommand) Password() string  { return c.password }
func (c RegisterCustomerCommand) GST() customer.GST { return c.gst }

func (c *RegisterCustomerCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *RegisterCustomerCommand) setEmail(email string) error {
	parsed, err := customer.ParseEmail(email)
	if err != nil {
		return err
	}
	c.email = parsed
	return nil
}

func (c *RegisterCustomerCommand) setPassword(password string) error {
	if password == "" {
		return errs.NewValueIsRequiredError("password")
	}
	c.password = password
	return nil
}
