package repository

import (
	"context"

	"slotbook/internal/domain/booking"
	"slotbook/internal/infra"
	"slotbook/internal/infra/db"
	"slotbook/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	var note *string
	if !b.Note().IsEmpty() {
		v := b.Note().String()
		note = &v
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO bookings (id, user_id, time_slot_id, group_id, note, status, room_type_name, price_snapshot)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		b.ID(),
		b.UserID(),
		b.TimeSlotID(),
		pgconv.UUIDPtrToPgtype(b.GroupID()),
		pgconv.StringPtrToPgtype(note),
		b.Status().String(),
		pgconv.StringPtrToPgtype(b.RoomTypeName()),
		pgconv.Int32PtrToPgtype(b.PriceSnapshot()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

// Guarded so a cancelled booking cannot be resurrected by a racing confirm.
func (r *BookingRepository) ConfirmIfPending(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE bookings SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3`,
		booking.StatusConfirmed.String(), bookingID, booking.StatusPending.String(),
	)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to confirm booking", err)
	}
	return tag.RowsAffected(), nil
}

func (r *BookingRepository) CancelIfLive(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE bookings SET status = $1, updated_at = now()
		WHERE id = $2 AND status IN ($3, $4)`,
		booking.StatusCancelled.String(), bookingID,
		booking.StatusPending.String(), booking.StatusConfirmed.String(),
	)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to cancel booking", err)
	}
	return tag.RowsAffected(), nil
}
