package order

import (
	"fmt"
	"strconv"
	"strings"

	"storefront/internal/pkg/errs"
)

// NumberPrefix tags every order number.
const NumberPrefix = "ORD-"

// SequenceName is the counter order numbers are allocated from.
const SequenceName = "order_id"

const numberWidth = 6

// Number is the human-readable order identifier, e.g. ORD-000042. Values past
// 999999 keep growing in width.
type Number struct {
	seq int64
}

// NewNumber formats a sequence value. Sequence values start at 1.
func NewNumber(seq int64) (Number, error) {
	if seq < 1 {
		return Number{}, errs.NewValueIsOutOfRangeError("order number sequence", seq, 1, "unbounded")
	}
	return Number{seq: seq}, nil
}

// ParseNumber accepts the form produced by Number.String.
func ParseNumber(s string) (Number, error) {
	digits, ok := strings.CutPrefix(s, NumberPrefix)
	if !ok || len(digits) < numberWidth {
		return Number{}, errs.NewValueIsInvalidErrorWithCause(
			"order_id", fmt.Errorf("%q does not match %sNNNNNN", s, NumberPrefix))
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return Number{}, errs.NewValueIsInvalidErrorWithCause(
				"order_id", fmt.Errorf("%q does not match %sNNNNNN", s, NumberPrefix))
		}
	}

	seq, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return Number{}, errs.NewValueIsInvalidErrorWithCause("order_id", err)
	}
	// Zero padding is only allowed up to the fixed width.
	if len(digits) > numberWidth && digits[0] == '0' {
		return Number{}, errs.NewValueIsInvalidErrorWithCause(
			"order_id", fmt.Errorf("%q has extra leading zeros", s))
	}
	return NewNumber(seq)
}

func (n Number) Seq() int64 {
	return n.seq
}

func (n Number) String() string {
	return fmt.Sprintf("%s%0*d", NumberPrefix, numberWidth, n.seq)
}

func (n Number) IsZero() bool {
	return n.seq == 0
}
