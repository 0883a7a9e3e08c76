package repository

import (
	"context"

	"slotbook/internal/domain/product"
	"slotbook/internal/infra"
	"slotbook/internal/infra/db"

	"github.com/google/uuid"
)

type RoomTypeRepository struct {
	db db.DBTX
}

func NewRoomTypeRepository(dbtx db.DBTX) *RoomTypeRepository {
	return &RoomTypeRepository{db: dbtx}
}

func (r *RoomTypeRepository) Create(ctx context.Context, rt *product.RoomType) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO room_types (id, product_id, name, price, capacity, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		rt.ID(), rt.ProductID(), rt.Name(), rt.Price(), rt.Capacity(), rt.IsActive(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create room type", err)
	}
	return nil
}

func (r *RoomTypeRepository) Update(ctx context.Context, rt *product.RoomType) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE room_types
		SET name = $2, price = $3, capacity = $4, is_active = $5, updated_at = now()
		WHERE id = $1`,
		rt.ID(), rt.Name(), rt.Price(), rt.Capacity(), rt.IsActive(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update room type", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room type not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *RoomTypeRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM room_types WHERE id = $1`, id)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete room type", err)
	}
	return tag.RowsAffected(), nil
}
