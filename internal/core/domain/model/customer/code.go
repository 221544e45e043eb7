package customer

import (
	"fmt"
	"math/rand/v2"

	"storefront/internal/pkg/errs"
)

const (
	codeLength   = 8
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Code is the public customer identifier.
type Code string

// NewCode draws a random code.
func NewCode() Code {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeAlphabet[rand.IntN(len(codeAlphabet))]
	}
	return Code(b)
}

func ParseCode(s string) (Code, error) {
	if len(s) != codeLength {
		return "", errs.NewValueIsInvalidErrorWithCause("customer_id", fmt.Errorf("%q is not %d characters", s, codeLength))
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return "", errs.NewValueIsInvalidErrorWithCause("customer_id", fmt.Errorf("%q has characters outside A-Z0-9", s))
		}
	}
	return Code(s), nil
}

func (c Code) String() string {
	return string(c)
}
