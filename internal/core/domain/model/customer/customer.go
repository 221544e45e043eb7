package customer

import (
	"errors"
	"net/mail"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

// GST holds the optional tax invoice details.
type GST struct {
	Required       bool
	Number         string
	CompanyName    string
	BillingAddress string
}

type Customer struct {
	id           kernel.UUID
	code         Code
	name         string
	email        string
	passwordHash string
	gst          GST

	isConstructed bool
}

// NewCustomer validates the registration data. The email is stored
// lower-cased. GST details are dropped unless gst.Required is set.
func NewCustomer(id kernel.UUID, code Code, name, email, passwordHash string, gst GST) (*Customer, error) {
	c := &Customer{isConstructed: true}

	if err := errors.Join(
		c.setID(id),
		c.setCode(code),
		c.setName(name),
		c.setEmail(email),
		c.setPasswordHash(passwordHash),
	); err != nil {
		return nil, err
	}

	if gst.Required {
		c.gst = gst
	}
	return c, nil
}

func (c *Customer) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}
	return nil
}

func (c *Customer) ID() kernel.UUID      { return c.id }
func (c *Customer) Code() Code           { return c.code }
func (c *Customer) Name() string         { return c.name }
func (c *Customer) Email() string        { return c.email }
func (c *Customer) PasswordHash() string { return c.passwordHash }
func (c *Customer) GST() GST             { return c.gst }

// NormalizeEmail is the form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setCode(code Code) error {
	parsed, err := ParseCode(code.String())
	if err != nil {
		return err
	}
	c.code = parsed
	return nil
}

func (c *Customer) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

// ParseEmail normalizes email and checks it is a bare address.
func ParseEmail(email string) (string, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return "", errs.NewValueIsRequiredError("email")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", errs.NewValueIsInvalidErrorWithCause("email", errors.New("not a valid address"))
	}
	return email, nil
}

func (c *Customer) setEmail(email string) error {
	parsed, err := ParseEmail(email)
	if err != nil {
		return err
	}
	c.email = parsed
	return nil
}

func (c *Customer) setPasswordHash(hash string) error {
	if hash == "" {
		return errs.NewValueIsRequiredError("password")
	}
	c.passwordHash = hash
	return nil
}
