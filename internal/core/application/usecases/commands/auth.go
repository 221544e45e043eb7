package commands

import (
	"fmt"
	"time"

	"storefront/internal/pkg/errs"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong password.
// The two cases are not distinguished.
var ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", errs.ErrUnauthorized)

// AuthResult is a successful login or registration.
type AuthResult struct {
	// CustomerID is the customer's public code. Empty for the owner.
	CustomerID string
	Email      string
	Token      string
	ExpiresAt  time.Time
}
