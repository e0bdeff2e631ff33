package services

import (
	"time"

	"escrow/internal/core/domain/model/kernel"
	"escrow/internal/core/domain/model/order"
	"escrow/internal/core/domain/model/transfer"
	"escrow/internal/pkg/errs"
)

// Cashier is a domain service that settles and refunds orders and decides
// which value transfers those transitions require.
//
// Business rules:
//   - Payment keeps the order amount in escrow and returns any excess to the payer
//   - Refund returns exactly the order amount to the order's payer
//   - Zero amounts never produce a transfer
//   - On any failure neither the order nor a transfer is produced
//
// Example usage:
//
//	cashier := services.NewCashier()
//	overpayment, err := cashier.Settle(o, signer, attached, clock.Now())
//	if err != nil {
//	    return err
//	}
//	if overpayment != nil {
//	    // persist the transfer next to the order
//	}
type Cashier struct{}

// NewCashier creates a new Cashier instance.
func NewCashier() Cashier {
	return Cashier{}
}

// Settle pays o with the value attached by signer. When the deposit exceeds
// the order amount it returns an Overpayment transfer of the excess to the
// payer; otherwise the returned transfer is nil.
func (c Cashier) Settle(
	o *order.Order,
	signer kernel.AccountID,
	attached kernel.Amount,
	now time.Time,
) (*transfer.Transfer, error) {
	if err := validate(o, now); err != nil {
		return nil, err
	}

	excess, err := o.Pay(signer, attached)
	if err != nil {
		return nil, err
	}

	if excess.IsZero() {
		return nil, nil
	}

	return transfer.NewTransfer(o.ID(), o.PayerID(), excess, transfer.Overpayment, now)
}

// Refund marks o refunded and returns a Refund transfer of the order amount to
// the payer, or nil for a zero-amount order.
func (c Cashier) Refund(o *order.Order, now time.Time) (*transfer.Transfer, error) {
	if err := validate(o, now); err != nil {
		return nil, err
	}

	payout, err := o.Refund()
	if err != nil {
		return nil, err
	}

	if payout.IsZero() {
		return nil, nil
	}

	return transfer.NewTransfer(o.ID(), o.PayerID(), payout, transfer.Refund, now)
}

// validate runs every check a transfer could fail on before the order is touched.
func validate(o *order.Order, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if now.IsZero() {
		return errs.NewValueIsRequiredError("now")
	}
	return nil
}
