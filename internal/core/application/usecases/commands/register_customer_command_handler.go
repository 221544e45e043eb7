package commands

import (
	"context"
	"fmt"

	"storefront/internal/core/domain/model/customer"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
)

// RegisterCustomerCommandHandler stores a new customer with a hashed password
// and a random public code, then issues a customer token.
type RegisterCustomerCommandHandler struct {
	customerRepo ports.CustomerRepository
	hasher       ports.PasswordHasher
	issuer       ports.TokenIssuer
}

func NewRegisterCustomerCommandHandler(
	customerRepo ports.CustomerRepository,
	hasher ports.PasswordHasher,
	issuer ports.TokenIssuer,
) RegisterCustomerCommandHandler {
	return RegisterCustomerCommandHandler{
		customerRepo: customerRepo,
		hasher:       hasher,
		issuer:       issuer,
	}
}

// Handle returns an errs.ObjectAlreadyExistsError when the email is taken.
func (h RegisterCustomerCommandHandler) Handle(ctx context.Context, cmd RegisterCustomerCommand) (AuthResult, error) {
	if err := cmd.Validate(); err != nil {
		return AuthResult{}, err
	}

	hash, err := h.hasher.Hash(cmd.Password())
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	registered, err := customer.NewCustomer(kernel.NewUUID(), customer.NewCode(), cmd.Name(), cmd.Email(), hash, cmd.GST())
	if err != nil {
		return AuthResult{}, err
	}

	if err = h.customerRepo.Add(ctx, registered); err != nil {
		return AuthResult{}, err
	}

	return issueCustomerToken(h.issuer, registered)
}

func issueCustomerToken(issuer ports.TokenIssuer, c *customer.Customer) (AuthResult, error) {
	token, expiresAt, err := issuer.Issue(ports.Principal{
		Role:       ports.RoleCustomer,
		CustomerID: c.Code().String(),
		Email:      c.Email(),
	})
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}

	return AuthResult{
		CustomerID: c.Code().String(),
		Email:      c.Email(),
		Token:      token,
		ExpiresAt:  expiresAt,
	}, nil
}
