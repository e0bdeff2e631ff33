package commands

import (
	"errors"

	"escrow/internal/core/domain/model/kernel"
	"escrow/internal/pkg/guard"
)

var ErrPayOrderCommandIsNotConstructed = errors.New(
	"PayOrderCommand must be created via NewPayOrderCommand constructor",
)

// PayOrderCommand carries a payment: who signed it, which order it settles and
// how much value came attached to the call.
type PayOrderCommand struct {
	signer   kernel.AccountID
	orderID  kernel.OrderID
	attached kernel.Amount

	guard guard.ConstructorGuard
}

func NewPayOrderCommand(signer kernel.AccountID, orderID kernel.OrderID, attached kernel.Amount) (PayOrderCommand, error) {
	if err := errors.Join(signer.Validate(), orderID.Validate()); err != nil {
		return PayOrderCommand{}, err
	}

	return PayOrderCommand{
		signer:   signer,
		orderID:  orderID,
		attached: attached,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c PayOrderCommand) Validate() error {
	return c.guard.Validate(ErrPayOrderCommandIsNotConstructed)
}

func (c PayOrderCommand) Signer() kernel.AccountID {
	return c.signer
}

func (c PayOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// Attached returns the value deposited with the call.
func (c PayOrderCommand) Attached() kernel.Amount {
	return c.attached
}
