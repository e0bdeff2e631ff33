package order

import (
	"errors"
	"fmt"
	"time"

	"escrow/internal/core/domain/model/kernel"
	"escrow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrWrongPayer is returned when someone other than the designated payer tries to settle an order.
	ErrWrongPayer = errors.New("signer is not the payer of the order")

	// ErrInsufficientDeposit is returned when the attached value is below the order amount.
	ErrInsufficientDeposit = errors.New("attached deposit is not enough to pay the order")

	// ErrAlreadyPaid is returned when an order is paid a second time.
	ErrAlreadyPaid = errors.New("order is already paid")

	// ErrRefundNotAllowed is returned when refunding an order that is not paid or already refunded.
	ErrRefundNotAllowed = errors.New("order cannot be refunded")
)

// Order is the escrowed transaction record between the owner and a payer.
// It is the aggregate root of the escrow domain.
//
// Order follows these invariants:
//   - id, payer and amount never change after creation
//   - the order is paid at most once and refunded at most once
//   - a refunded order is always a completed (paid) order
//   - every mutating method either applies its whole effect or none of it
type Order struct {
	// id is the caller-chosen key of the order
	id kernel.OrderID

	// payerID is the only identity allowed to settle the order
	payerID kernel.AccountID

	// amount is the price of the order in the smallest currency unit
	amount kernel.Amount

	// status is derived from the is_completed / is_refunded flags
	status Status

	// createdAt is the environment time at creation
	createdAt time.Time

	// isConstructed ensures the order was created via NewOrder or RestoreOrder
	isConstructed bool
}

// NewOrder creates an unpaid order. The creation time comes from the
// environment clock and is stored with microsecond precision, the resolution
// the order store keeps.
//
// Example:
//
//	o, err := order.NewOrder(kernel.MustNewOrderID("order_1"), payer, 1000, clock.Now())
//	if err != nil {
//	    return err
//	}
func NewOrder(id kernel.OrderID, payerID kernel.AccountID, amount kernel.Amount, createdAt time.Time) (*Order, error) {
	order := &Order{
		amount:        amount,
		status:        Created,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setPayerID(payerID),
		order.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder rebuilds an order from persisted state. The completion flags
// must describe a reachable lifecycle state.
func RestoreOrder(
	id kernel.OrderID,
	payerID kernel.AccountID,
	amount kernel.Amount,
	isCompleted bool,
	isRefunded bool,
	createdAt time.Time,
) (*Order, error) {
	status, err := StatusFromFlags(isCompleted, isRefunded)
	if err != nil {
		return nil, err
	}

	order, err := NewOrder(id, payerID, amount, createdAt)
	if err != nil {
		return nil, err
	}
	order.status = status

	return order, nil
}

// Validate ensures the Order was built through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's key.
func (o *Order) ID() kernel.OrderID {
	return o.id
}

// PayerID returns the identity designated to settle the order.
func (o *Order) PayerID() kernel.AccountID {
	return o.payerID
}

// Amount returns the order price.
func (o *Order) Amount() kernel.Amount {
	return o.amount
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// IsCompleted reports whether the order has been paid.
func (o *Order) IsCompleted() bool {
	return o.status.IsCompleted()
}

// IsRefunded reports whether the order has been refunded.
func (o *Order) IsRefunded() bool {
	return o.status.IsRefunded()
}

// CreatedAt returns the creation time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Escrowed returns the value the escrow currently holds for this order:
// the full amount between payment and refund, zero otherwise.
func (o *Order) Escrowed() kernel.Amount {
	if o.status == Paid {
		return o.amount
	}
	return 0
}

// Pay settles the order with the value attached by signer.
//
// Preconditions are checked in this order:
//   - signer is the order's payer, otherwise ErrWrongPayer
//   - attached covers the amount, otherwise ErrInsufficientDeposit
//   - the order is not paid yet, otherwise ErrAlreadyPaid
//
// On success the order becomes Paid and the excess (attached - amount) is
// returned so the caller can hand it back to the payer. On failure the
// order is left untouched.
func (o *Order) Pay(signer kernel.AccountID, attached kernel.Amount) (kernel.Amount, error) {
	if err := signer.Validate(); err != nil {
		return 0, err
	}

	if !signer.IsEqual(o.payerID) {
		return 0, fmt.Errorf("%w: %s is not %s", ErrWrongPayer, signer, o.payerID)
	}

	if attached.Less(o.amount) {
		return 0, fmt.Errorf("%w: attached %s, required %s", ErrInsufficientDeposit, attached, o.amount)
	}

	newStatus, err := o.status.Pay()
	if err != nil {
		return 0, err
	}

	excess, err := attached.Sub(o.amount)
	if err != nil {
		return 0, err
	}

	o.status = newStatus
	return excess, nil
}

// Refund marks a paid order as refunded and returns the payout owed to the
// payer, which is always exactly the order amount. Orders that were never
// paid or are already refunded fail with ErrRefundNotAllowed and stay unchanged.
func (o *Order) Refund() (kernel.Amount, error) {
	newStatus, err := o.status.Refund()
	if err != nil {
		return 0, err
	}

	o.status = newStatus
	return o.amount, nil
}

func (o *Order) setID(id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setPayerID(payerID kernel.AccountID) error {
	if err := payerID.Validate(); err != nil {
		return err
	}
	o.payerID = payerID
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	o.createdAt = createdAt.UTC().Truncate(time.Microsecond)
	return nil
}
