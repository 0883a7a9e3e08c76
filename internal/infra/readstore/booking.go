package readstore

import (
	"context"

	"slotbook/internal/domain/booking"
	"slotbook/internal/infra"
	"slotbook/internal/infra/db"
	"slotbook/internal/pkg/pgconv"
	"slotbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

// The user projection is restricted to id, email, name, phone. Credential
// columns are never selected. Slot and product are outer-joined: a booking
// outlives its inventory when a product or room type is deleted.
const bookingViewSQL = `
SELECT b.id, b.group_id, b.status, b.note, b.room_type_name, b.price_snapshot,
       u.id, u.email, u.name, u.phone,
       ts.id, ts.date, ts.start_time, ts.end_time, ts.status,
       p.id, p.name, p.category,
       b.created_at, b.updated_at
FROM bookings b
JOIN users u ON u.id = b.user_id
LEFT JOIN time_slots ts ON ts.id = b.time_slot_id
LEFT JOIN products p ON p.id = ts.product_id`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := r.db.QueryRow(ctx, bookingViewSQL+` WHERE b.id = $1`, id)
	view, err := scanBookingView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return view, nil
}

func (r *BookingReadStore) List(ctx context.Context, statusFilter *booking.Status) ([]*queries.BookingView, error) {
	var filter pgtype.Text
	if statusFilter != nil {
		filter = pgconv.StringToPgtype(statusFilter.String())
	}

	rows, err := r.db.Query(ctx, bookingViewSQL+`
		WHERE ($1::text IS NULL OR b.status = $1)
		ORDER BY b.created_at DESC`, filter)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var views []*queries.BookingView
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}
	return views, nil
}

func (r *BookingReadStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*queries.MyBookingView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT b.id, b.group_id, b.status, p.name, b.room_type_name, b.price_snapshot,
		       ts.date, ts.start_time, ts.end_time, b.created_at
		FROM bookings b
		LEFT JOIN time_slots ts ON ts.id = b.time_slot_id
		LEFT JOIN products p ON p.id = ts.product_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list user bookings", err)
	}
	defer rows.Close()

	var views []*queries.MyBookingView
	for rows.Next() {
		var (
			v             queries.MyBookingView
			groupID       pgtype.UUID
			productName   pgtype.Text
			roomTypeName  pgtype.Text
			priceSnapshot pgtype.Int4
			date          pgtype.Date
			startTime     pgtype.Text
			endTime       pgtype.Text
			createdAt     pgtype.Timestamptz
		)
		if err := rows.Scan(&v.ID, &groupID, &v.Status, &productName, &roomTypeName, &priceSnapshot,
			&date, &startTime, &endTime, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan user booking", err)
		}
		v.GroupID = pgconv.UUIDPtrFromPgtype(groupID)
		v.ProductName = pgconv.StringPtrFromPgtype(productName)
		v.RoomTypeName = pgconv.StringPtrFromPgtype(roomTypeName)
		v.PriceSnapshot = pgconv.Int32PtrFromPgtype(priceSnapshot)
		if date.Valid {
			d := pgconv.DateFromPgtype(date)
			v.Date = &d
		}
		v.StartTime = pgconv.StringPtrFromPgtype(startTime)
		v.EndTime = pgconv.StringPtrFromPgtype(endTime)
		v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate user bookings", err)
	}
	return views, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var (
		v             queries.BookingView
		groupID       pgtype.UUID
		note          pgtype.Text
		roomTypeName  pgtype.Text
		priceSnapshot pgtype.Int4
		phone         pgtype.Text
		slotID        pgtype.UUID
		date          pgtype.Date
		startTime     pgtype.Text
		endTime       pgtype.Text
		slotStatus    pgtype.Text
		productID     pgtype.UUID
		productName   pgtype.Text
		category      pgtype.Text
		createdAt     pgtype.Timestamptz
		updatedAt     pgtype.Timestamptz
	)
	err := row.Scan(
		&v.ID, &groupID, &v.Status, &note, &roomTypeName, &priceSnapshot,
		&v.User.ID, &v.User.Email, &v.User.Name, &phone,
		&slotID, &date, &startTime, &endTime, &slotStatus,
		&productID, &productName, &category,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.GroupID = pgconv.UUIDPtrFromPgtype(groupID)
	v.Note = pgconv.StringPtrFromPgtype(note)
	v.RoomTypeName = pgconv.StringPtrFromPgtype(roomTypeName)
	v.PriceSnapshot = pgconv.Int32PtrFromPgtype(priceSnapshot)
	v.User.Phone = pgconv.StringPtrFromPgtype(phone)
	if id := pgconv.UUIDPtrFromPgtype(slotID); id != nil {
		v.Slot = &queries.BookingSlotView{
			ID:        *id,
			Date:      pgconv.DateFromPgtype(date),
			StartTime: startTime.String,
			EndTime:   endTime.String,
			Status:    slotStatus.String,
		}
	}
	if id := pgconv.UUIDPtrFromPgtype(productID); id != nil {
		v.Product = &queries.BookingProductView{
			ID:       *id,
			Name:     productName.String,
			Category: category.String,
		}
	}
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &v, nil
}
