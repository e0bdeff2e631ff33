// Package orderrepo persists the Order aggregate in the orders table: one row
// per order ID holding the payer, the amount and the two lifecycle flags.
package orderrepo

import (
	"time"

	"escrow/internal/adapters/out/postgres/columns"
	"escrow/internal/core/domain/model/kernel"
	"escrow/internal/core/domain/model/order"
)

// OrderDTO is the orders table row.
type OrderDTO struct {
	OrderID     string         `gorm:"type:varchar(64);primaryKey"`
	PayerID     string         `gorm:"type:varchar(64);not null;index"`
	Amount      columns.Amount `gorm:"type:numeric(20,0);not null"`
	IsCompleted bool           `gorm:"not null"`
	IsRefunded  bool           `gorm:"not null;check:chk_orders_refunded_completed,NOT is_refunded OR is_completed"`
	CreatedAt   time.Time      `gorm:"not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		OrderID:     o.ID().String(),
		PayerID:     o.PayerID().String(),
		Amount:      columns.FromAmount(o.Amount()),
		IsCompleted: o.IsCompleted(),
		IsRefunded:  o.IsRefunded(),
		CreatedAt:   o.CreatedAt(),
	}
}

// toDomain rebuilds the aggregate through RestoreOrder, so a row that breaks
// the lifecycle rules is reported instead of loaded.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.NewOrderID(dto.OrderID)
	if err != nil {
		return nil, err
	}

	payerID, err := kernel.NewAccountID(dto.PayerID)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, payerID, dto.Amount.Amount(), dto.IsCompleted, dto.IsRefunded, dto.CreatedAt)
}
