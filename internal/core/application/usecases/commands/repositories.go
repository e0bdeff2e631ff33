// Package commands contains the escrow operations that change state: creating,
// paying and refunding orders, and dispatching the transfers they issue.
// Every handler validates its command, opens a unit of work, applies the
// domain logic and commits; nothing is written when any step fails.
package commands

import (
	"context"

	"escrow/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order store within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// TransferRepoFactory provides access to the transfer outbox within a transaction.
	TransferRepoFactory interface {
		TransferRepository() ports.TransferRepository
	}

	// OrderUoW is used by commands that only write orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// TransferUoW is used by commands that only touch the outbox.
	TransferUoW interface {
		TxManager
		TransferRepoFactory
	}

	// TransferUoWFactory creates new transfer unit of work instances.
	TransferUoWFactory interface {
		Create() TransferUoW
	}

	// UoW spans an order change and the transfer it issues, so both are
	// committed together or not at all.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, id)
	//   // ... settle, then Update the order and Add the transfer
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		TransferRepoFactory
	}

	// UoWFactory creates new unit of work instances for order+transfer operations.
	UoWFactory interface {
		Create() UoW
	}
)
