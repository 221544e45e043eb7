// Package auth implements the token and password ports: HS256 JWTs via
// golang-jwt and bcrypt password hashes.
package auth

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

const issuerName = "storefront"

// ErrSecretIsRequired is returned when the signing secret is empty.
var ErrSecretIsRequired = errs.NewValueIsRequiredError("jwt secret")

type claims struct {
	jwt.RegisteredClaims
	Role       ports.Role `json:"role"`
	CustomerID string     `json:"customer_id,omitempty"`
	Email      string     `json:"email"`
}

// JWTIssuer signs tokens with HMAC-SHA256.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var _ ports.TokenIssuer = (*JWTIssuer)(nil)

func NewJWTIssuer(secret string, ttl time.Duration) (*JWTIssuer, error) {
	if secret == "" {
		return nil, ErrSecretIsRequired
	}
	if ttl <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("token ttl", ttl, "1ns", "unbounded")
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue returns a token expiring ttl after now.
func (i *JWTIssuer) Issue(principal ports.Principal) (string, time.Time, error) {
	issuedAt := i.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(i.ttl)

	subject := principal.CustomerID
	if principal.Role == ports.RoleOwner {
		subject = principal.Email
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuerName,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Role:       principal.Role,
		CustomerID: principal.CustomerID,
		Email:      principal.Email,
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify rejects tokens that are expired, signed with another key or
// algorithm, or carry an unknown role.
func (i *JWTIssuer) Verify(token string) (ports.Principal, error) {
	var parsed claims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuerName),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ports.Principal{}, fmt.Errorf("%w: token expired", errs.ErrUnauthorized)
		}
		return ports.Principal{}, fmt.Errorf("%w: %v", errs.ErrUnauthorized, err)
	}

	switch parsed.Role {
	case ports.RoleOwner:
	case ports.RoleCustomer:
		if parsed.CustomerID == "" {
			return ports.Principal{}, fmt.Errorf("%w: customer token without customer_id", errs.ErrUnauthorized)
		}
	default:
		return ports.Principal{}, fmt.Errorf("%w: unknown role %q", errs.ErrUnauthorized, parsed.Role)
	}

	return ports.Principal{
		Role:       parsed.Role,
		CustomerID: parsed.CustomerID,
		Email:      parsed.Email,
	}, nil
}
