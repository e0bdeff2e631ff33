package transfer

import (
	"errors"
	"fmt"
	"time"

	"escrow/internal/core/domain/model/kernel"
	"escrow/internal/pkg/errs"
)

var (
	// ErrTransferIsNotConstructed is returned when a Transfer was not created via NewTransfer or RestoreTransfer.
	ErrTransferIsNotConstructed = errors.New("Transfer must be created via NewTransfer constructor")

	// ErrAlreadyDispatched is returned when dispatching a transfer a second time.
	ErrAlreadyDispatched = errors.New("transfer is already dispatched")
)

// Transfer is a request to move amount to recipient on behalf of an order.
type Transfer struct {
	id           kernel.UUID
	orderID      kernel.OrderID
	recipient    kernel.AccountID
	amount       kernel.Amount
	kind         Kind
	status       Status
	createdAt    time.Time
	dispatchedAt *time.Time

	isConstructed bool
}

// NewTransfer creates a pending transfer. Zero amounts are rejected: when
// nothing has to move, no transfer is issued at all.
func NewTransfer(
	orderID kernel.OrderID,
	recipient kernel.AccountID,
	amount kernel.Amount,
	kind Kind,
	createdAt time.Time,
) (*Transfer, error) {
	return RestoreTransfer(kernel.NewUUID(), orderID, recipient, amount, kind, Pending, createdAt, nil)
}

// RestoreTransfer rebuilds a transfer from persisted state.
func RestoreTransfer(
	id kernel.UUID,
	orderID kernel.OrderID,
	recipient kernel.AccountID,
	amount kernel.Amount,
	kind Kind,
	status Status,
	createdAt time.Time,
	dispatchedAt *time.Time,
) (*Transfer, error) {
	var amountErr error
	if amount.IsZero() {
		amountErr = errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is not greater than 0", amount))
	}

	var dispatchedErr error
	if (status == Dispatched) != (dispatchedAt != nil) {
		dispatchedErr = errs.NewValueIsInvalidErrorWithCause(
			"dispatched at",
			fmt.Errorf("%s transfer has an inconsistent dispatch time", status),
		)
	}

	var createdErr error
	if createdAt.IsZero() {
		createdErr = errs.NewValueIsRequiredError("created at")
	}

	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		recipient.Validate(),
		amountErr,
		kind.Validate(),
		status.Validate(),
		createdErr,
		dispatchedErr,
	); err != nil {
		return nil, err
	}

	t := &Transfer{
		id:            id,
		orderID:       orderID,
		recipient:     recipient,
		amount:        amount,
		kind:          kind,
		status:        status,
		createdAt:     createdAt.UTC().Truncate(time.Microsecond),
		isConstructed: true,
	}
	if dispatchedAt != nil {
		at := dispatchedAt.UTC().Truncate(time.Microsecond)
		t.dispatchedAt = &at
	}
	return t, nil
}

// Validate ensures the transfer was built through its constructors.
func (t *Transfer) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTransferIsNotConstructed
	}
	return nil
}

func (t *Transfer) ID() kernel.UUID {
	return t.id
}

func (t *Transfer) OrderID() kernel.OrderID {
	return t.orderID
}

func (t *Transfer) Recipient() kernel.AccountID {
	return t.recipient
}

func (t *Transfer) Amount() kernel.Amount {
	return t.amount
}

func (t *Transfer) Kind() Kind {
	return t.kind
}

func (t *Transfer) Status() Status {
	return t.status
}

func (t *Transfer) CreatedAt() time.Time {
	return t.createdAt
}

// DispatchedAt is nil while the transfer is pending.
func (t *Transfer) DispatchedAt() *time.Time {
	return t.dispatchedAt
}

// MarkDispatched records that the collaborator accepted the transfer.
func (t *Transfer) MarkDispatched(at time.Time) error {
	if t.status != Pending {
		return fmt.Errorf("%w: %s", ErrAlreadyDispatched, t.id)
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("dispatched at")
	}

	at = at.UTC().Truncate(time.Microsecond)
	t.status = Dispatched
	t.dispatchedAt = &at
	return nil
}
