package ports

import (
	"context"

	"escrow/internal/core/domain/model/transfer"
)

// ValueTransferer hands a transfer to the external value transfer service.
// Delivery is at least once: the same transfer may be handed over again after
// a failure, so receivers deduplicate by transfer ID.
type ValueTransferer interface {
	Transfer(ctx context.Context, t *transfer.Transfer) error
}
