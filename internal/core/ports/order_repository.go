// Package ports defines the contracts between the escrow core and the outside
// world: the order store, the transfer outbox, the unit of work that makes a
// call atomic, the environment clock and the value transfer collaborator.
package ports

import (
	"context"

	"escrow/internal/core/domain/model/kernel"
	"escrow/internal/core/domain/model/order"
)

// OrderRepository is the order store: a mapping from order ID to Order.
// A write is durable once the surrounding unit of work commits.
type OrderRepository interface {
	// Add inserts a new order. An existing order with the same ID makes it
	// fail with errs.ErrObjectAlreadyExists and leaves the stored order untouched.
	Add(ctx context.Context, aggregate *order.Order) error

	// Put stores the order under its ID, overwriting any existing record.
	Put(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by ID. A missing order yields errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.OrderID) (*order.Order, error)

	// GetForUpdate is Get that also locks the order until the unit of work ends,
	// serializing concurrent calls on the same order.
	GetForUpdate(ctx context.Context, id kernel.OrderID) (*order.Order, error)
}
