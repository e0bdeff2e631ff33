package commands

import (
	"context"
	"errors"
	"fmt"

	"escrow/internal/core/domain/model/kernel"
	"escrow/internal/core/domain/services"
	"escrow/internal/core/ports"
	"escrow/internal/pkg/errs"
)

// RefundOrderCommandHandler lets the owner return the escrowed amount of a
// paid order to the order's payer.
type RefundOrderCommandHandler struct {
	uowFactory UoWFactory
	owner      kernel.AccountID
	clock      ports.Clock
	cashier    services.Cashier
}

func NewRefundOrderCommandHandler(uowFactory UoWFactory, owner kernel.AccountID, clock ports.Clock) RefundOrderCommandHandler {
	return RefundOrderCommandHandler{
		uowFactory: uowFactory,
		owner:      owner,
		clock:      clock,
		cashier:    services.NewCashier(),
	}
}

// Handle checks ownership before touching the store, then locks the order,
// refunds it and records the refund transfer. A zero-amount order is marked
// refunded without issuing a transfer.
func (h RefundOrderCommandHandler) Handle(ctx context.Context, cmd RefundOrderCommand) (TransferOutcome, error) {
	if err := cmd.Validate(); err != nil {
		return NoTransfer, err
	}

	if !cmd.Caller().IsEqual(h.owner) {
		return NoTransfer, fmt.Errorf("%w: %s cannot refund orders", ErrUnauthorized, cmd.Caller())
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

	refund, err := h.cashier.Refund(o, h.clock.Now())
	if err != nil {
		return NoTransfer, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return NoTransfer, err
	}

	if refund != nil {
		if err = uow.TransferRepository().Add(ctx, refund); err != nil {
			return NoTransfer, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return NoTransfer, err
	}

	return outcomeOf(refund), nil
}
