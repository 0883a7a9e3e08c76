package queries

import (
	"context"

	"github.com/google/uuid"
)

type ProductReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductView, error)
	List(ctx context.Context, activeOnly bool) ([]*ProductView, error)
}

type RoomTypeReadStore interface {
	ListByProduct(ctx context.Context, productID uuid.UUID, activeOnly bool) ([]*RoomTypeView, error)
}

type ProductQueries interface {
	Get(ctx context.Context, id uuid.UUID) (*ProductView, error)
	List(ctx context.Context, activeOnly bool) ([]*ProductView, error)
	ListRoomTypes(ctx context.Context, productID uuid.UUID, activeOnly bool) ([]*RoomTypeView, error)
}

type productQueriesImpl struct {
	products  ProductReadStore
	roomTypes RoomTypeReadStore
}

func NewProductQueries(products ProductReadStore, roomTypes RoomTypeReadStore) ProductQueries {
	return &productQueriesImpl{products: products, roomTypes: roomTypes}
}

func (q *productQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*ProductView, error) {
	return q.products.FindByID(ctx, id)
}

func (q *productQueriesImpl) List(ctx context.Context, activeOnly bool) ([]*ProductView, error) {
	return q.products.List(ctx, activeOnly)
}

func (q *productQueriesImpl) ListRoomTypes(ctx context.Context, productID uuid.UUID, activeOnly bool) ([]*RoomTypeView, error) {
	return q.roomTypes.ListByProduct(ctx, productID, activeOnly)
}
