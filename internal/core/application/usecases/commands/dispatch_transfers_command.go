package commands

import (
	"errors"
	"fmt"

	"escrow/internal/pkg/errs"
	"escrow/internal/pkg/guard"
)

const (
	DefaultDispatchBatchSize = 50
	MaxDispatchBatchSize     = 1000
)

var ErrDispatchTransfersCommandIsNotConstructed = errors.New(
	"DispatchTransfersCommand must be created via NewDispatchTransfersCommand constructor",
)

// DispatchTransfersCommand hands up to batchSize pending transfers to the
// value transfer service. It is run periodically and whenever a new transfer
// is recorded.
type DispatchTransfersCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewDispatchTransfersCommand(batchSize int) (DispatchTransfersCommand, error) {
	if batchSize < 1 || batchSize > MaxDispatchBatchSize {
		return DispatchTransfersCommand{}, errs.NewValueIsOutOfRangeErrorWithCause(
			"batch size", batchSize, 1, MaxDispatchBatchSize,
			fmt.Errorf("cannot dispatch %d transfers at once", batchSize),
		)
	}

	return DispatchTransfersCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c DispatchTransfersCommand) Validate() error {
	return c.guard.Validate(ErrDispatchTransfersCommandIsNotConstructed)
}

func (c DispatchTransfersCommand) BatchSize() int {
	return c.batchSize
}
