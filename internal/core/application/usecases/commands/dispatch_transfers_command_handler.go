package commands

import (
	"context"

	"escrow/internal/core/domain/model/kernel"
	"escrow/internal/core/ports"
)

// FailedTransfer is a transfer the value transfer service did not accept.
// It stays pending and is picked up again by the next dispatch.
type FailedTransfer struct {
	TransferID kernel.UUID
	Err        error
}

// DispatchResult summarizes one dispatch run.
type DispatchResult struct {
	Dispatched int
	Failed     []FailedTransfer
}

// DispatchTransfersCommandHandler drains the transfer outbox.
//
// Delivery is at least once: a transfer accepted by the service but whose
// dispatched mark fails to commit is handed over again on the next run.
//
// Example:
//
//	handler := NewDispatchTransfersCommandHandler(uowFactory, transferer, ports.SystemClock)
//	cmd, _ := NewDispatchTransfersCommand(DefaultDispatchBatchSize)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	for _, f := range result.Failed {
//	    log.Printf("transfer %s stays pending: %v", f.TransferID, f.Err)
//	}
type DispatchTransfersCommandHandler struct {
	uowFactory TransferUoWFactory
	transferer ports.ValueTransferer
	clock      ports.Clock
}

func NewDispatchTransfersCommandHandler(
	uowFactory TransferUoWFactory,
	transferer ports.ValueTransferer,
	clock ports.Clock,
) DispatchTransfersCommandHandler {
	return DispatchTransfersCommandHandler{
		uowFactory: uowFactory,
		transferer: transferer,
		clock:      clock,
	}
}

// Handle locks a batch of pending transfers, hands each to the value transfer
// service and marks the accepted ones dispatched. Rejected transfers do not
// fail the run; they are reported in the result.
func (h DispatchTransfersCommandHandler) Handle(ctx context.Context, cmd DispatchTransfersCommand) (DispatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return DispatchResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DispatchResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	transferRepo := uow.TransferRepository()

	pending, err := transferRepo.GetPending(ctx, cmd.BatchSize())
	if err != nil {
		return DispatchResult{}, err
	}

	var result DispatchResult
	for _, t := range pending {
		if sendErr := h.transferer.Transfer(ctx, t); sendErr != nil {
			result.Failed = append(result.Failed, FailedTransfer{TransferID: t.ID(), Err: sendErr})
			continue
		}

		if err = t.MarkDispatched(h.clock.Now()); err != nil {
			return DispatchResult{}, err
		}

		if err = transferRepo.Update(ctx, t); err != nil {
			return DispatchResult{}, err
		}
		result.Dispatched++
	}

	if err = uow.Commit(ctx); err != nil {
		return DispatchResult{}, err
	}

	return result, nil
}
