package queries

import (
	"errors"
	"time"

	"escrow/internal/core/domain/model/kernel"
	"escrow/internal/core/domain/model/transfer"
	"escrow/internal/pkg/guard"
)

var ErrGetOrderTransfersQueryIsNotConstructed = errors.New(
	"GetOrderTransfersQuery must be created via NewGetOrderTransfersQuery constructor",
)

// GetOrderTransfersQuery lists the transfers issued for one order, in the
// order they were issued. An unknown order simply has no transfers.
type GetOrderTransfersQuery struct {
	orderID kernel.OrderID
	guard   guard.ConstructorGuard
}

func NewGetOrderTransfersQuery(orderID kernel.OrderID) (GetOrderTransfersQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderTransfersQuery{}, err
	}
	return GetOrderTransfersQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderTransfersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTransfersQueryIsNotConstructed)
}

func (q GetOrderTransfersQuery) OrderID() kernel.OrderID {
	return q.orderID
}

type GetOrderTransfersQueryResponse struct {
	ID           kernel.UUID
	Recipient    kernel.AccountID
	Amount       kernel.Amount
	Kind         transfer.Kind
	Status       transfer.Status
	CreatedAt    time.Time
	DispatchedAt *time.Time
}
