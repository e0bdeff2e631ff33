package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetEscrowBalanceQueryHandler sums the escrowed amounts in the orders table.
// The sum of many uint64 amounts can exceed uint64, so it is read as a decimal.
type GetEscrowBalanceQueryHandler struct {
	db *gorm.DB
}

func NewGetEscrowBalanceQueryHandler(db *gorm.DB) GetEscrowBalanceQueryHandler {
	return GetEscrowBalanceQueryHandler{db: db}
}

func (h GetEscrowBalanceQueryHandler) Handle(
	ctx context.Context,
	query GetEscrowBalanceQuery,
) (GetEscrowBalanceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetEscrowBalanceQueryResponse{}, err
	}

	var resp GetEscrowBalanceQueryResponse
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(amount), 0),
			COUNT(*)
		FROM orders
		WHERE is_completed AND NOT is_refunded
	`).Row().Scan(&resp.Held, &resp.HeldOrders)
	if err != nil {
		return GetEscrowBalanceQueryResponse{}, err
	}

	return resp, nil
}
