// Package transferrepo persists the transfer outbox: every value transfer the
// escrow has issued, pending until the dispatcher hands it over.
package transferrepo

import (
	"time"

	"escrow/internal/adapters/out/postgres/columns"
	"escrow/internal/core/domain/model/kernel"
	"escrow/internal/core/domain/model/transfer"

	"github.com/google/uuid"
)

// TransferDTO is the transfers table row.
type TransferDTO struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OrderID      string         `gorm:"type:varchar(64);not null;index"`
	Recipient    string         `gorm:"type:varchar(64);not null"`
	Amount       columns.Amount `gorm:"type:numeric(20,0);not null"`
	Kind         int            `gorm:"type:smallint;not null"`
	Status       int            `gorm:"type:smallint;not null;index:idx_transfers_pending,priority:1"`
	CreatedAt    time.Time      `gorm:"not null;index:idx_transfers_pending,priority:2"`
	DispatchedAt *time.Time
}

func (TransferDTO) TableName() string {
	return "transfers"
}

func fromDomain(t *transfer.Transfer) TransferDTO {
	return TransferDTO{
		ID:           t.ID().Bytes(),
		OrderID:      t.OrderID().String(),
		Recipient:    t.Recipient().String(),
		Amount:       columns.FromAmount(t.Amount()),
		Kind:         int(t.Kind()),
		Status:       int(t.Status()),
		CreatedAt:    t.CreatedAt(),
		DispatchedAt: t.DispatchedAt(),
	}
}

func toDomain(dto TransferDTO) (*transfer.Transfer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.NewOrderID(dto.OrderID)
	if err != nil {
		return nil, err
	}

	recipient, err := kernel.NewAccountID(dto.Recipient)
	if err != nil {
		return nil, err
	}

	return transfer.RestoreTransfer(
		id,
		orderID,
		recipient,
		dto.Amount.Amount(),
		transfer.Kind(dto.Kind),
		transfer.Status(dto.Status),
		dto.CreatedAt,
		dto.DispatchedAt,
	)
}
