package commands

import (
	"context"
	"errors"
	"fmt"

	"escrow/internal/core/domain/model/kernel"
	"escrow/internal/core/domain/model/order"
	"escrow/internal/core/ports"
	"escrow/internal/pkg/errs"
)

// CreateOrderCommandHandler registers new unpaid orders on behalf of the owner.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, owner, ports.SystemClock, RejectDuplicates)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrUnauthorized):
//	    // only the owner creates orders
//	case errors.Is(err, ErrDuplicateOrder):
//	    // the order ID is taken
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	owner      kernel.AccountID
	clock      ports.Clock
	policy     CollisionPolicy
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// owner is fixed for the life of the handler.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	owner kernel.AccountID,
	clock ports.Clock,
	policy CollisionPolicy,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		owner:      owner,
		clock:      clock,
		policy:     policy,
	}
}

// Handle checks the caller is the owner, then stores the order with
// is_completed and is_refunded cleared and created_at from the clock.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Caller().IsEqual(h.owner) {
		return fmt.Errorf("%w: %s cannot create orders", ErrUnauthorized, cmd.Caller())
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.PayerID(), cmd.Amount(), h.clock.Now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	if h.policy == OverwriteExisting {
		err = orderRepo.Put(ctx, o)
	} else {
		err = orderRepo.Add(ctx, o)
	}
	if errors.Is(err, errs.ErrObjectAlreadyExists) {
		return fmt.Errorf("%w: %w", ErrDuplicateOrder, err)
	}
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}
