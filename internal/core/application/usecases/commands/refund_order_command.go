package commands

import (
	"errors"

	"escrow/internal/core/domain/model/kernel"
	"escrow/internal/pkg/guard"
)

var ErrRefundOrderCommandIsNotConstructed = errors.New(
	"RefundOrderCommand must be created via NewRefundOrderCommand constructor",
)

// RefundOrderCommand asks the escrow to return a paid order's amount to its payer.
type RefundOrderCommand struct {
	caller  kernel.AccountID
	orderID kernel.OrderID

	guard guard.ConstructorGuard
}

func NewRefundOrderCommand(caller kernel.AccountID, orderID kernel.OrderID) (RefundOrderCommand, error) {
	if err := errors.Join(caller.Validate(), orderID.Validate()); err != nil {
		return RefundOrderCommand{}, err
	}

	return RefundOrderCommand{
		caller:  caller,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RefundOrderCommand) Validate() error {
	return c.guard.Validate(ErrRefundOrderCommandIsNotConstructed)
}

func (c RefundOrderCommand) Caller() kernel.AccountID {
	return c.caller
}

func (c RefundOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}
