package repository

import (
	"context"
	"time"

	"slotbook/internal/domain/slot"
	"slotbook/internal/infra"
	"slotbook/internal/infra/db"
	"slotbook/internal/pkg/pgconv"
	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// SlotRepository is the write side of the availability store. Every status
// mutation here is a predicate-guarded UPDATE: the storage engine serializes
// conflicting writes to the same row, which is the only mutual exclusion the
// reservation protocol relies on.
type SlotRepository struct {
	db db.DBTX
}

func NewSlotRepository(dbtx db.DBTX) *SlotRepository {
	return &SlotRepository{db: dbtx}
}

const insertSlotSQL = `
INSERT INTO time_slots (id, product_id, room_type_id, date, start_time, end_time, status)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT DO NOTHING`

func (r *SlotRepository) BulkInsert(ctx context.Context, slots []shared.NewSlot) (int64, error) {
	var inserted int64
	for _, s := range slots {
		tag, err := r.db.Exec(ctx, insertSlotSQL,
			uuid.New(),
			s.ProductID,
			pgconv.UUIDPtrToPgtype(s.RoomTypeID),
			pgconv.DateToPgtype(s.Date),
			s.StartTime,
			s.EndTime,
			slot.StatusAvailable.String(),
		)
		if err != nil {
			return 0, infra.WrapRepoErr("failed to insert slot", err)
		}
		inserted += tag.RowsAffected()
	}
	return inserted, nil
}

func (r *SlotRepository) ExistingKeys(ctx context.Context, productID uuid.UUID, from, to time.Time) (map[slot.DayTime]struct{}, error) {
	rows, err := r.db.Query(ctx, `
		SELECT date, start_time
		FROM time_slots
		WHERE product_id = $1 AND room_type_id IS NULL AND date BETWEEN $2 AND $3`,
		productID, pgconv.DateToPgtype(from), pgconv.DateToPgtype(to),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load existing slot keys", err)
	}
	defer rows.Close()

	existing := make(map[slot.DayTime]struct{})
	for rows.Next() {
		var (
			date      pgtype.Date
			startTime string
		)
		if err := rows.Scan(&date, &startTime); err != nil {
			return nil, infra.WrapRepoErr("failed to scan slot key", err)
		}
		existing[slot.Key(pgconv.DateFromPgtype(date), startTime)] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate slot keys", err)
	}
	return existing, nil
}

// ClaimAvailable is the crux of the reservation protocol: a single
// conditional update, not a read followed by a write. Two concurrent claims
// of the same slot cannot both observe a row change.
func (r *SlotRepository) ClaimAvailable(ctx context.Context, slotIDs []uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE time_slots SET status = $1
		WHERE id = ANY($2) AND status = $3`,
		slot.StatusBooked.String(), slotIDs, slot.StatusAvailable.String(),
	)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to claim slots", err)
	}
	return tag.RowsAffected(), nil
}

func (r *SlotRepository) Release(ctx context.Context, slotIDs []uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE time_slots SET status = $1
		WHERE id = ANY($2) AND status = $3`,
		slot.StatusAvailable.String(), slotIDs, slot.StatusBooked.String(),
	)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to release slots", err)
	}
	return tag.RowsAffected(), nil
}

// An occupied slot cannot be hand-toggled; it must go through cancellation.
func (r *SlotRepository) SetStatusGuarded(ctx context.Context, slotID uuid.UUID, status slot.Status) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE time_slots SET status = $1
		WHERE id = $2 AND status <> $3`,
		status.String(), slotID, slot.StatusBooked.String(),
	)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to set slot status", err)
	}
	return tag.RowsAffected(), nil
}
