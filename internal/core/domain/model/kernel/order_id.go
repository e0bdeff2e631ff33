package kernel

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"escrow/internal/pkg/errs"
)

const OrderIDMaxLength = 64

// ErrOrderIDIsNotConstructed is returned when validating a zero-value OrderID.
var ErrOrderIDIsNotConstructed = errs.NewValueIsRequiredError("order ID must be created via NewOrderID")

// OrderID is the opaque, caller-chosen key of an order.
type OrderID struct {
	value string
}

// NewOrderID rejects empty, oversized, non UTF-8 or control-character
// identifiers. The value is kept byte for byte; surrounding whitespace is
// rejected, not stripped.
func NewOrderID(value string) (OrderID, error) {
	if value == "" {
		return OrderID{}, errs.NewValueIsRequiredError("order ID")
	}
	if len(value) > OrderIDMaxLength {
		return OrderID{}, errs.NewValueIsOutOfRangeError("order ID length", len(value), 1, OrderIDMaxLength)
	}
	if !utf8.ValidString(value) {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause(
			"order ID",
			fmt.Errorf("%q is not valid UTF-8", value),
		)
	}
	if strings.TrimSpace(value) != value {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause(
			"order ID",
			fmt.Errorf("%q has surrounding whitespace", value),
		)
	}
	if strings.IndexFunc(value, unicode.IsControl) >= 0 {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause(
			"order ID",
			fmt.Errorf("%q contains control characters", value),
		)
	}
	return OrderID{value: value}, nil
}

// MustNewOrderID is NewOrderID for identifiers known to be valid; it panics otherwise.
func MustNewOrderID(value string) OrderID {
	id, err := NewOrderID(value)
	if err != nil {
		panic(err)
	}
	return id
}

func (o OrderID) String() string {
	return o.value
}

func (o OrderID) IsEqual(other OrderID) bool {
	return o.value == other.value
}

// Validate returns ErrOrderIDIsNotConstructed for the zero value.
func (o OrderID) Validate() error {
	if o.value == "" {
		return ErrOrderIDIsNotConstructed
	}
	return nil
}
