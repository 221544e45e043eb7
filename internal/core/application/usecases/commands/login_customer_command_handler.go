package commands

import (
	"context"
	"errors"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

type LoginCustomerCommandHandler struct {
	customerRepo ports.CustomerRepository
	hasher       ports.PasswordHasher
	issuer       ports.TokenIssuer
}

func NewLoginCustomerCommandHandler(
	customerRepo ports.CustomerRepository,
	hasher ports.PasswordHasher,
	issuer ports.TokenIssuer,
) LoginCustomerCommandHandler {
	return LoginCustomerCommandHandler{
		customerRepo: customerRepo,
		hasher:       hasher,
		issuer:       issuer,
	}
}

// Handle returns ErrInvalidCredentials for an unknown email or a wrong
// password.
func (h LoginCustomerCommandHandler) Handle(ctx context.Context, cmd LoginCustomerCommand) (AuthResult, error) {
	if err := cmd.Validate(); err != nil {
		return AuthResult{}, err
	}

	found, err := h.customerRepo.GetByEmail(ctx, cmd.Email())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	if err = h.hasher.Compare(found.PasswordHash(), cmd.Password()); err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}

	return issueCustomerToken(h.issuer, found)
}
