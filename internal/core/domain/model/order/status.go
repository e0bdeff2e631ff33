package order

import (
	"fmt"

	"escrow/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It is derived from the
// persisted is_completed / is_refunded flags and enforces the only allowed
// path through the lifecycle:
//
//	Created ──> Paid ──> Refunded
//
// There is no transition back to an earlier state; Refunded is terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status: the order awaits payment by its payer.
	Created

	// Paid indicates the payer settled the order; its amount is held in escrow.
	Paid

	// Refunded indicates the owner returned the escrowed amount to the payer.
	Refunded
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "Unknown",
		Created:  "Created",
		Paid:     "Paid",
		Refunded: "Refunded",
	}
}

// StatusFromFlags derives a Status from the persisted completion flags.
// A refunded order that was never completed violates the lifecycle and is rejected.
func StatusFromFlags(isCompleted, isRefunded bool) (Status, error) {
	switch {
	case isRefunded && !isCompleted:
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("an order cannot be refunded without being completed"),
		)
	case isRefunded:
		return Refunded, nil
	case isCompleted:
		return Paid, nil
	default:
		return Created, nil
	}
}

// Validate checks that the status is one of Created, Paid or Refunded.
func (s Status) Validate() error {
	if s != Created && s != Paid && s != Refunded {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer; invalid values render as "Unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsCompleted reports whether the order has been paid (and possibly refunded since).
func (s Status) IsCompleted() bool {
	return s == Paid || s == Refunded
}

// IsRefunded reports whether the escrowed amount was returned to the payer.
func (s Status) IsRefunded() bool {
	return s == Refunded
}

// Pay transitions Created -> Paid. Any other status fails with ErrAlreadyPaid.
func (s Status) Pay() (Status, error) {
	if s != Created {
		return Unknown, fmt.Errorf("%w: %s is not a valid status to pay", ErrAlreadyPaid, s)
	}
	return Paid, nil
}

// Refund transitions Paid -> Refunded. Created ("never paid") and Refunded
// ("already refunded") both fail with ErrRefundNotAllowed.
func (s Status) Refund() (Status, error) {
	if s != Paid {
		return Unknown, fmt.Errorf("%w: %s is not a valid status to refund", ErrRefundNotAllowed, s)
	}
	return Refunded, nil
}
