// Package queries contains read-only views of the escrow: single orders, the
// funds currently held and the transfers issued for an order. Queries read the
// database directly and never take locks.
package queries

import (
	"errors"
	"time"

	"escrow/internal/core/domain/model/kernel"
	"escrow/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order by ID.
//
// Example:
//
//	query, err := NewGetOrderQuery(kernel.MustNewOrderID("order_1"))
//	if err != nil {
//	    return err
//	}
//
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // no such order
//	}
type GetOrderQuery struct {
	orderID kernel.OrderID
	guard   guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.OrderID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.OrderID {
	return q.orderID
}

// GetOrderQueryResponse is the stored order record.
type GetOrderQueryResponse struct {
	OrderID     kernel.OrderID
	PayerID     kernel.AccountID
	Amount      kernel.Amount
	IsCompleted bool
	IsRefunded  bool
	CreatedAt   time.Time
}
