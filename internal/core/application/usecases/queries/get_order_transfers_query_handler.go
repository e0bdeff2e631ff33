package queries

import (
	"context"

	"escrow/internal/core/domain/model/kernel"
	"escrow/internal/core/domain/model/transfer"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderTransfersQueryHandler reads the transfer outbox for one order.
type GetOrderTransfersQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderTransfersQueryHandler(db *gorm.DB) GetOrderTransfersQueryHandler {
	return GetOrderTransfersQueryHandler{db: db}
}

func (h GetOrderTransfersQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTransfersQuery,
) ([]GetOrderTransfersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	transfers := make([]GetOrderTransfersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			recipient,
			amount,
			kind,
			status,
			created_at,
			dispatched_at
		FROM transfers
		WHERE order_id = ?
		ORDER BY created_at, id
	`, query.OrderID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp      GetOrderTransfersQueryResponse
			id        uuid.UUID
			recipient string
			amount    string
			kind      int
			status    int
		)

		err = rows.Scan(
			&id,
			&recipient,
			&amount,
			&kind,
			&status,
			&resp.CreatedAt,
			&resp.DispatchedAt,
		)
		if err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}

		resp.Recipient, err = kernel.NewAccountID(recipient)
		if err != nil {
			return nil, err
		}

		resp.Amount, err = kernel.ParseAmount(amount)
		if err != nil {
			return nil, err
		}

		resp.Kind = transfer.Kind(kind)
		resp.Status = transfer.Status(status)
		transfers = append(transfers, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return transfers, nil
}
