package repository

import (
	"context"

	"slotbook/internal/domain/product"
	"slotbook/internal/infra"
	"slotbook/internal/infra/db"

	"github.com/google/uuid"
)

type ProductRepository struct {
	db db.DBTX
}

func NewProductRepository(dbtx db.DBTX) *ProductRepository {
	return &ProductRepository{db: dbtx}
}

func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO products (id, name, description, category, images, price_per_slot, address,
		                      open_time, close_time, slot_duration_min, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID(), p.Name(), p.Description(), p.Category().String(), p.Images(), p.PricePerSlot(),
		p.Address(), p.Hours().Open().String(), p.Hours().Close().String(), p.SlotDurationMin(), p.IsActive(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create product", err)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET name = $2, description = $3, category = $4, images = $5, price_per_slot = $6,
		    address = $7, open_time = $8, close_time = $9, slot_duration_min = $10,
		    is_active = $11, updated_at = now()
		WHERE id = $1`,
		p.ID(), p.Name(), p.Description(), p.Category().String(), p.Images(), p.PricePerSlot(),
		p.Address(), p.Hours().Open().String(), p.Hours().Close().String(), p.SlotDurationMin(), p.IsActive(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update product", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete product", err)
	}
	return tag.RowsAffected(), nil
}
