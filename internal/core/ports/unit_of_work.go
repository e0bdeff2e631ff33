package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for every command so concurrent
// calls never share a transaction.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the boundary of one escrow call. Either every write made
// through its repositories is committed, or none is.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback discards the current transaction. It is a no-op after Commit.
	Rollback(ctx context.Context) error

	// OrderRepository returns the order store bound to the current transaction.
	OrderRepository() OrderRepository

	// TransferRepository returns the transfer outbox bound to the current transaction.
	TransferRepository() TransferRepository
}
