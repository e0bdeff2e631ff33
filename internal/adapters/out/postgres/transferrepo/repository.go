package transferrepo

import (
	"context"
	"errors"

	"escrow/internal/core/domain/model/transfer"
	"escrow/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Channel is the LISTEN/NOTIFY channel that announces new pending transfers.
// The payload is the transfer ID. Notifications are delivered on commit only.
const Channel = "escrow_transfers"

var ErrInvalidLimit = errors.New("limit must be greater than 0")

// GormTransferRepository implements ports.TransferRepository using GORM.
type GormTransferRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(key string, aggregate any)
}

func NewGormTransferRepository(db *gorm.DB, tracker aggregateTracker) *GormTransferRepository {
	return &GormTransferRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add records a pending transfer and notifies listeners on Channel.
func (r *GormTransferRepository) Add(ctx context.Context, aggregate *transfer.Transfer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	if err := db.Create(&dto).Error; err != nil {
		return err
	}

	if err := db.Exec("SELECT pg_notify(?, ?)", Channel, dto.ID.String()).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(dto.ID.String(), aggregate)
	return nil
}

// Update writes the dispatch state of a transfer.
func (r *GormTransferRepository) Update(ctx context.Context, aggregate *transfer.Transfer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&TransferDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":        dto.Status,
			"dispatched_at": dto.DispatchedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("transfer", dto.ID.String())
	}

	r.tracker.TrackAggregate(dto.ID.String(), aggregate)
	return nil
}

// GetPending locks up to limit pending transfers, oldest first. Rows already
// locked by a concurrent dispatcher are skipped rather than waited for.
func (r *GormTransferRepository) GetPending(ctx context.Context, limit int) ([]*transfer.Transfer, error) {
	if limit < 1 {
		return nil, ErrInvalidLimit
	}

	var dtos []TransferDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{
			Strength: clause.LockingStrengthUpdate,
			Options:  clause.LockingOptionsSkipLocked,
		}).
		Where("status = ?", int(transfer.Pending)).
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	transfers := make([]*transfer.Transfer, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, t)
	}

	return transfers, nil
}
