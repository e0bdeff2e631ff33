package commands

import (
	"context"
	"errors"
	"fmt"

	"escrow/internal/core/domain/services"
	"escrow/internal/core/ports"
	"escrow/internal/pkg/errs"
)

// PayOrderCommandHandler settles an order with the deposit attached by its payer.
// The order amount stays in escrow; any excess is issued back to the payer as
// an overpayment transfer recorded in the same transaction.
//
// Example:
//
//	handler := NewPayOrderCommandHandler(uowFactory, ports.SystemClock)
//	outcome, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrWrongPayer):
//	case errors.Is(err, order.ErrInsufficientDeposit):
//	case errors.Is(err, order.ErrAlreadyPaid):
//	case err == nil && outcome.Issued:
//	    log.Printf("returning %s to %s", outcome.Amount, outcome.Recipient)
//	}
type PayOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
	cashier    services.Cashier
}

func NewPayOrderCommandHandler(uowFactory UoWFactory, clock ports.Clock) PayOrderCommandHandler {
	return PayOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		cashier:    services.NewCashier(),
	}
}

// Handle locks the order, settles it and persists the order together with the
// overpayment transfer, if any. On error nothing is written.
func (h PayOrderCommandHandler) Handle(ctx context.Context, cmd PayOrderCommand) (TransferOutcome, error) {
	if err := cmd.Validate(); err != nil {
		return NoTransfer, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return NoTransfer, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return NoTransfer, fmt.Errorf("%w: %w", ErrOrderNotFound, err)
	}
	if err != nil {
		return NoTransfer, err
	}

	overpayment, err := h.cashier.Settle(o, cmd.Signer(), cmd.Attached(), h.clock.Now())
	if err != nil {
		return NoTransfer, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return NoTransfer, err
	}

	if overpayment != nil {
		if err = uow.TransferRepository().Add(ctx, overpayment); err != nil {
			return NoTransfer, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return NoTransfer, err
	}

	return outcomeOf(overpayment), nil
}
