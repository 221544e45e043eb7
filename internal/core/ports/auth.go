package ports

import "time"

// Role distinguishes store owners from customers in issued tokens.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleOwner    Role = "owner"
)

// Principal is the identity carried by a token.
type Principal struct {
	Role       Role
	CustomerID string
	Email      string
}

// TokenIssuer signs and verifies session tokens.
type TokenIssuer interface {
	Issue(principal Principal) (token string, expiresAt time.Time, err error)

	// Verify returns the principal of a valid, unexpired token or an error
	// wrapping errs.ErrUnauthorized.
	Verify(token string) (Principal, error)
}

// PasswordHasher hashes and checks customer passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Compare returns nil when password matches hash.
	Compare(hash, password string) error
}
