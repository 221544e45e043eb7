package commands

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/customer"
	"storefront/internal/core/ports"
)

// OwnerCredentials are the single store owner's login, taken from
// configuration.
type OwnerCredentials struct {
	Email    string
	Password string
}

// Configured reports whether owner login is possible at all.
func (o OwnerCredentials) Configured() bool {
	return strings.TrimSpace(o.Email) != "" && o.Password != ""
}

// LoginOwnerCommandHandler checks the owner credentials and issues an owner
// token. It reuses LoginCustomerCommand for the input.
type LoginOwnerCommandHandler struct {
	owner  OwnerCredentials
	issuer ports.TokenIssuer
}

func NewLoginOwnerCommandHandler(owner OwnerCredentials, issuer ports.TokenIssuer) LoginOwnerCommandHandler {
	owner.Email = customer.NormalizeEmail(owner.Email)
	return LoginOwnerCommandHandler{owner: owner, issuer: issuer}
}

// Handle always fails with ErrInvalidCredentials when no owner is configured.
func (h LoginOwnerCommandHandler) Handle(_ context.Context, cmd LoginCustomerCommand) (AuthResult, error) {
	if err := cmd.Validate(); err != nil {
		return AuthResult{}, err
	}
	if !h.owner.Configured() {
		return AuthResult{}, ErrInvalidCredentials
	}

	emailOK := subtle.ConstantTimeCompare([]byte(cmd.Email()), []byte(h.owner.Email)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(cmd.Password()), []byte(h.owner.Password)) == 1
	if !emailOK || !passwordOK {
		return AuthResult{}, ErrInvalidCredentials
	}

	token, expiresAt, err := h.issuer.Issue(ports.Principal{
		Role:  ports.RoleOwner,
		Email: h.owner.Email,
	})
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}

	return AuthResult{
		Email:     h.owner.Email,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
