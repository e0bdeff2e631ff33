package commands

import (
	"errors"

	"escrow/internal/core/domain/model/kernel"
	"escrow/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand asks the escrow to register an order that payerID will later settle.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(caller, kernel.MustNewOrderID("order_1"), payer, 1000)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	caller  kernel.AccountID
	orderID kernel.OrderID
	payerID kernel.AccountID
	amount  kernel.Amount

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates every identifier. Any amount, zero included, is accepted.
func NewCreateOrderCommand(
	caller kernel.AccountID,
	orderID kernel.OrderID,
	payerID kernel.AccountID,
	amount kernel.Amount,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		amount: amount,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCaller(caller),
		cmd.setOrderID(orderID),
		cmd.setPayerID(payerID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Caller returns the identity that issued the call.
func (c CreateOrderCommand) Caller() kernel.AccountID {
	return c.caller
}

func (c CreateOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

func (c CreateOrderCommand) PayerID() kernel.AccountID {
	return c.payerID
}

func (c CreateOrderCommand) Amount() kernel.Amount {
	return c.amount
}

func (c *CreateOrderCommand) setCaller(caller kernel.AccountID) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	c.caller = caller
	return nil
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setPayerID(payerID kernel.AccountID) error {
	if err := payerID.Validate(); err != nil {
		return err
	}
	c.payerID = payerID
	return nil
}
