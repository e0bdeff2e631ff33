package queries

import (
	"context"
	"database/sql"
	"errors"

	"escrow/internal/core/domain/model/kernel"
	"escrow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads orders straight from the orders table.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the order or an error matching errs.ErrObjectNotFound.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var (
		payerID string
		amount  string
		resp    GetOrderQueryResponse
	)
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			payer_id,
			amount,
			is_completed,
			is_refunded,
			created_at
		FROM orders
		WHERE order_id = ?
	`, query.OrderID().String()).Row().Scan(
		&payerID,
		&amount,
		&resp.IsCompleted,
		&resp.IsRefunded,
		&resp.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.PayerID, err = kernel.NewAccountID(payerID)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Amount, err = kernel.ParseAmount(amount)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.OrderID = query.OrderID()
	resp.CreatedAt = resp.CreatedAt.UTC()

	return resp, nil
}
