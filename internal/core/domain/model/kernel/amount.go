package kernel

import (
	"cmp"
	"fmt"
	"math"
	"strconv"

	"escrow/internal/pkg/errs"
)

// Amount is a non-negative quantity of value in the smallest currency unit.
// The zero Amount is valid: zero-amount orders exist and settle without any transfer.
type Amount uint64

// ParseAmount parses a base-10 amount as it arrives from the environment.
func ParseAmount(s string) (Amount, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return Amount(v), nil
}

// Uint64 returns the raw value.
func (a Amount) Uint64() uint64 {
	return uint64(a)
}

func (a Amount) IsZero() bool {
	return a == 0
}

// Cmp returns -1, 0 or +1 depending on whether a is less than, equal to or greater than other.
func (a Amount) Cmp(other Amount) int {
	return cmp.Compare(a, other)
}

func (a Amount) Less(other Amount) bool {
	return a < other
}

// Add returns a+other, failing instead of wrapping around.
func (a Amount) Add(other Amount) (Amount, error) {
	if uint64(other) > math.MaxUint64-uint64(a) {
		return 0, errs.NewValueIsOutOfRangeError("amount", fmt.Sprintf("%d+%d", a, other), 0, uint64(math.MaxUint64))
	}
	return a + other, nil
}

// Sub returns a-other, failing when the result would be negative.
func (a Amount) Sub(other Amount) (Amount, error) {
	if other > a {
		return 0, errs.NewValueIsOutOfRangeError("amount", fmt.Sprintf("%d-%d", a, other), 0, uint64(math.MaxUint64))
	}
	return a - other, nil
}

func (a Amount) String() string {
	return strconv.FormatUint(uint64(a), 10)
}
