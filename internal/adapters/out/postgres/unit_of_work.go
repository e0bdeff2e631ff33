// Package postgres implements the escrow unit of work on GORM.
//
// One GormUnitOfWork wraps one database transaction. Repositories obtained
// from it after Begin share that transaction, so an order change and the
// transfer it issues are committed together or rolled back together.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	o, err := uow.OrderRepository().GetForUpdate(ctx, id)
//	// ... mutate o, issue a transfer
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	if err := uow.TransferRepository().Add(ctx, t); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency:
//   - Each UnitOfWork instance owns its transaction; never share one between goroutines
//   - GetForUpdate row locks serialize concurrent calls on the same order
//   - Pending transfers are claimed with SKIP LOCKED so dispatchers never block each other
package postgres

import (
	"context"

	"escrow/internal/adapters/out/postgres/orderrepo"
	"escrow/internal/adapters/out/postgres/transferrepo"
	"escrow/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	Key       string
	Aggregate any
}

// CommitObserver is told which aggregates a committed unit of work wrote.
type CommitObserver interface {
	AggregatesCommitted(aggregates []any)
}

type noopObserver struct{}

func (noopObserver) AggregatesCommitted([]any) {}

// GormUnitOfWorkFactory creates a fresh GormUnitOfWork per business operation.
type GormUnitOfWorkFactory struct {
	db       *gorm.DB
	observer CommitObserver
}

// NewGormUnitOfWorkFactory creates a factory sharing db. observer may be nil.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db, metrics.NewEscrowMetrics(prometheus.DefaultRegisterer))
func NewGormUnitOfWorkFactory(db *gorm.DB, observer CommitObserver) *GormUnitOfWorkFactory {
	if observer == nil {
		observer = noopObserver{}
	}
	return &GormUnitOfWorkFactory{db: db, observer: observer}
}

// Create produces a new unit of work with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		observer:          f.observer,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and remembers the
// aggregates written through its repositories. After a successful commit the
// observer receives them, e.g. to count issued transfers.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	observer          CommitObserver
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it again while a transaction is open
// is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Commit makes every write of the transaction durable and closes it.
// Returns gorm.ErrInvalidTransaction if no transaction is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return err
	}

	uow.observer.AggregatesCommitted(uow.TrackedAggregates())
	return nil
}

// Rollback discards the transaction. After Commit it returns
// gorm.ErrInvalidTransaction, which deferred callers ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// OrderRepository returns the order store bound to the open transaction, or
// to the plain connection when none is open.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// TransferRepository returns the transfer outbox bound like OrderRepository.
func (uow *GormUnitOfWork) TransferRepository() ports.TransferRepository {
	return transferrepo.NewGormTransferRepository(uow.conn(), uow)
}

// TrackAggregate registers an aggregate written by a repository.
func (uow *GormUnitOfWork) TrackAggregate(key string, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		Key:       key,
		Aggregate: aggregate,
	})
}

// TrackedAggregates returns the aggregates written since Begin.
func (uow *GormUnitOfWork) TrackedAggregates() []any {
	aggregates := make([]any, 0, len(uow.trackedAggregates))
	for _, tracked := range uow.trackedAggregates {
		aggregates = append(aggregates, tracked.Aggregate)
	}
	return aggregates
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
