package ports

import (
	"context"

	"escrow/internal/core/domain/model/transfer"
)

// TransferRepository is the transfer outbox. Transfers are written in the same
// unit of work as the order change that issued them and are delivered later.
type TransferRepository interface {
	// Add records a new pending transfer.
	Add(ctx context.Context, aggregate *transfer.Transfer) error

	// Update persists the dispatch state of a transfer.
	Update(ctx context.Context, aggregate *transfer.Transfer) error

	// GetPending returns up to limit pending transfers, oldest first, locked for
	// the current unit of work. Rows locked by another worker are skipped.
	GetPending(ctx context.Context, limit int) ([]*transfer.Transfer, error)
}
