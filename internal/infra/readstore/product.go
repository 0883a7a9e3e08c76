package readstore

import (
	"context"

	"slotbook/internal/infra"
	"slotbook/internal/infra/db"
	"slotbook/internal/pkg/pgconv"
	"slotbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type ProductReadStore struct {
	db db.DBTX
}

func NewProductReadStore(dbtx db.DBTX) *ProductReadStore {
	return &ProductReadStore{db: dbtx}
}

const productViewSQL = `
SELECT p.id, p.name, p.description, p.category, p.images, p.price_per_slot, p.address,
       p.open_time, p.close_time, p.slot_duration_min, p.is_active,
       (SELECT count(*) FROM time_slots ts WHERE ts.product_id = p.id),
       p.created_at, p.updated_at
FROM products p`

func (r *ProductReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ProductView, error) {
	row := r.db.QueryRow(ctx, productViewSQL+` WHERE p.id = $1`, id)
	view, err := scanProductView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product by ID", err)
	}
	return view, nil
}

func (r *ProductReadStore) List(ctx context.Context, activeOnly bool) ([]*queries.ProductView, error) {
	rows, err := r.db.Query(ctx, productViewSQL+`
		WHERE ($1 = false OR p.is_active)
		ORDER BY p.created_at DESC`, activeOnly)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products", err)
	}
	defer rows.Close()

	var views []*queries.ProductView
	for rows.Next() {
		view, err := scanProductView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan product", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate products", err)
	}
	return views, nil
}

func scanProductView(row pgx.Row) (*queries.ProductView, error) {
	var (
		v         queries.ProductView
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&v.ID, &v.Name, &v.Description, &v.Category, &v.Images, &v.PricePerSlot, &v.Address,
		&v.OpenTime, &v.CloseTime, &v.SlotDurationMin, &v.IsActive,
		&v.SlotCount,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &v, nil
}

type RoomTypeReadStore struct {
	db db.DBTX
}

func NewRoomTypeReadStore(dbtx db.DBTX) *RoomTypeReadStore {
	return &RoomTypeReadStore{db: dbtx}
}

func (r *RoomTypeReadStore) ListByProduct(ctx context.Context, productID uuid.UUID, activeOnly bool) ([]*queries.RoomTypeView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT rt.id, rt.product_id, rt.name, rt.price, rt.capacity, rt.is_active,
		       (SELECT count(*) FROM time_slots ts WHERE ts.room_type_id = rt.id),
		       rt.created_at
		FROM room_types rt
		WHERE rt.product_id = $1 AND ($2 = false OR rt.is_active)
		ORDER BY rt.created_at ASC`, productID, activeOnly)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list room types", err)
	}
	defer rows.Close()

	var views []*queries.RoomTypeView
	for rows.Next() {
		var (
			v         queries.RoomTypeView
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Name, &v.Price, &v.Capacity, &v.IsActive,
			&v.SlotCount, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room type", err)
		}
		v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate room types", err)
	}
	return views, nil
}
