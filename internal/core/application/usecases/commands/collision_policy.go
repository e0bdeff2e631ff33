package commands

import (
	"fmt"
	"strings"

	"escrow/internal/pkg/errs"
)

// CollisionPolicy decides what CreateOrder does when the order ID is taken.
type CollisionPolicy int

const (
	// RejectDuplicates fails with ErrDuplicateOrder and keeps the stored order.
	RejectDuplicates CollisionPolicy = iota

	// OverwriteExisting replaces the stored order, including its payment state.
	// Opt-in only: it can silently discard a paid order.
	OverwriteExisting
)

// ParseCollisionPolicy reads the policy from configuration. An empty value
// selects RejectDuplicates.
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reject":
		return RejectDuplicates, nil
	case "overwrite":
		return OverwriteExisting, nil
	default:
		return RejectDuplicates, errs.NewValueIsInvalidErrorWithCause(
			"order id collision policy",
			fmt.Errorf("%q is neither reject nor overwrite", s),
		)
	}
}

func (p CollisionPolicy) String() string {
	if p == OverwriteExisting {
		return "overwrite"
	}
	return "reject"
}
