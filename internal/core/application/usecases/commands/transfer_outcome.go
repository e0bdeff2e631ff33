package commands

import (
	"escrow/internal/core/domain/model/kernel"
	"escrow/internal/core/domain/model/transfer"
)

// TransferOutcome tells the caller whether a value transfer was issued.
// The transfer is only requested: it is delivered after the call returns.
type TransferOutcome struct {
	Issued     bool
	TransferID kernel.UUID
	Recipient  kernel.AccountID
	Amount     kernel.Amount
}

// NoTransfer is the outcome of a call that moved no value.
var NoTransfer = TransferOutcome{}

func outcomeOf(t *transfer.Transfer) TransferOutcome {
	if t == nil {
		return NoTransfer
	}
	return TransferOutcome{
		Issued:     true,
		TransferID: t.ID(),
		Recipient:  t.Recipient(),
		Amount:     t.Amount(),
	}
}
