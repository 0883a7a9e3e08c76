package readstore

import (
	"context"
	"time"

	"slotbook/internal/infra"
	"slotbook/internal/infra/db"
	"slotbook/internal/pkg/pgconv"
	"slotbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type SlotReadStore struct {
	db db.DBTX
}

func NewSlotReadStore(dbtx db.DBTX) *SlotReadStore {
	return &SlotReadStore{db: dbtx}
}

// Ordered by room type first so a UI can cluster slots per room.
const listSlotsSQL = `
SELECT ts.id, ts.product_id, ts.room_type_id, rt.name, ts.date, ts.start_time, ts.end_time, ts.status,
       b.id, b.status, u.id, u.email, u.name, u.phone
FROM time_slots ts
LEFT JOIN room_types rt ON rt.id = ts.room_type_id
LEFT JOIN bookings b ON b.time_slot_id = ts.id AND b.status <> 'CANCELLED'
LEFT JOIN users u ON u.id = b.user_id
WHERE ts.product_id = $1
  AND ts.date = $2
  AND ($3::uuid IS NULL OR ts.room_type_id = $3)
ORDER BY ts.room_type_id ASC NULLS FIRST, ts.start_time ASC`

func (r *SlotReadStore) ListByProductAndDate(ctx context.Context, productID uuid.UUID, date time.Time, roomTypeID *uuid.UUID) ([]*queries.SlotView, error) {
	rows, err := r.db.Query(ctx, listSlotsSQL, productID, pgconv.DateToPgtype(date), pgconv.UUIDPtrToPgtype(roomTypeID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list slots", err)
	}
	defer rows.Close()

	var views []*queries.SlotView
	for rows.Next() {
		var (
			v             queries.SlotView
			slotDate      pgtype.Date
			roomTypeIDCol pgtype.UUID
			roomTypeName  pgtype.Text
			bookingID     pgtype.UUID
			bookingStatus pgtype.Text
			userID        pgtype.UUID
			userEmail     pgtype.Text
			userName      pgtype.Text
			userPhone     pgtype.Text
		)
		if err := rows.Scan(
			&v.ID, &v.ProductID, &roomTypeIDCol, &roomTypeName, &slotDate, &v.StartTime, &v.EndTime, &v.Status,
			&bookingID, &bookingStatus, &userID, &userEmail, &userName, &userPhone,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan slot", err)
		}

		v.Date = pgconv.DateFromPgtype(slotDate)
		v.RoomTypeID = pgconv.UUIDPtrFromPgtype(roomTypeIDCol)
		v.RoomTypeName = pgconv.StringPtrFromPgtype(roomTypeName)

		if bookingID.Valid {
			v.Booking = &queries.SlotBookingView{
				BookingID: uuid.UUID(bookingID.Bytes),
				Status:    bookingStatus.String,
				User: queries.UserView{
					ID:    uuid.UUID(userID.Bytes),
					Email: userEmail.String,
					Name:  userName.String,
					Phone: pgconv.StringPtrFromPgtype(userPhone),
				},
			}
		}

		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate slots", err)
	}
	return views, nil
}
