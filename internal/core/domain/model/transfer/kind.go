package transfer

import (
	"fmt"

	"escrow/internal/pkg/errs"
)

// Kind tells why value is transferred.
type Kind int

const (
	UnknownKind Kind = iota
	Overpayment
	Refund
)

func (k Kind) String() string {
	switch k {
	case Overpayment:
		return "Overpayment"
	case Refund:
		return "Refund"
	default:
		return "Unknown"
	}
}

func (k Kind) Validate() error {
	if k != Overpayment && k != Refund {
		return errs.NewValueIsInvalidErrorWithCause("kind is invalid", fmt.Errorf("%d is not a valid transfer kind", k))
	}
	return nil
}

// Status is the delivery state of a transfer request.
type Status int

const (
	UnknownStatus Status = iota
	Pending
	Dispatched
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Dispatched:
		return "Dispatched"
	default:
		return "Unknown"
	}
}

func (s Status) Validate() error {
	if s != Pending && s != Dispatched {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid transfer status", s))
	}
	return nil
}
