package kernel

import (
	"fmt"
	"regexp"

	"escrow/internal/pkg/errs"
)

const (
	AccountIDMinLength = 2
	AccountIDMaxLength = 64
)

// ErrAccountIDIsNotConstructed is returned when validating a zero-value AccountID.
var ErrAccountIDIsNotConstructed = errs.NewValueIsRequiredError("account ID must be created via NewAccountID")

var accountIDPattern = regexp.MustCompile(`^(([a-z\d]+[-_])*[a-z\d]+\.)*([a-z\d]+[-_])*[a-z\d]+$`)

// AccountID identifies a party of the escrow: the owner, a payer or a
// transfer recipient. It follows the account naming rules of the ledger the
// escrow settles on: lower-case alphanumeric parts joined by '-', '_' or '.'.
type AccountID struct {
	value string
}

// NewAccountID validates and wraps an account identifier.
//
// Example:
//
//	payer, err := kernel.NewAccountID("alice.near")
//	if err != nil {
//	    return err
//	}
func NewAccountID(value string) (AccountID, error) {
	if value == "" {
		return AccountID{}, errs.NewValueIsRequiredError("account ID")
	}
	if len(value) < AccountIDMinLength || len(value) > AccountIDMaxLength {
		return AccountID{}, errs.NewValueIsOutOfRangeError(
			"account ID length", len(value), AccountIDMinLength, AccountIDMaxLength,
		)
	}
	if !accountIDPattern.MatchString(value) {
		return AccountID{}, errs.NewValueIsInvalidErrorWithCause(
			"account ID",
			fmt.Errorf("%q does not follow the account naming rules", value),
		)
	}
	return AccountID{value: value}, nil
}

// MustNewAccountID is NewAccountID for identifiers known to be valid; it panics otherwise.
func MustNewAccountID(value string) AccountID {
	id, err := NewAccountID(value)
	if err != nil {
		panic(err)
	}
	return id
}

func (a AccountID) String() string {
	return a.value
}

// IsEqual reports whether both identifiers name the same account.
func (a AccountID) IsEqual(other AccountID) bool {
	return a.value == other.value
}

// Validate returns ErrAccountIDIsNotConstructed for the zero value.
func (a AccountID) Validate() error {
	if a.value == "" {
		return ErrAccountIDIsNotConstructed
	}
	return nil
}
