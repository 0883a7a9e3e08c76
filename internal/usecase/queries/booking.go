package queries

import (
	"context"

	"slotbook/internal/domain/booking"

	"github.com/google/uuid"
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, statusFilter *booking.Status) ([]*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*MyBookingView, error)
}

// BookingQueries are the admin listing/detail reads plus the caller's own
// bookings. Role enforcement happens at the handler boundary.
type BookingQueries interface {
	Get(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, statusFilter *booking.Status) ([]*BookingView, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]*MyBookingView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *bookingQueriesImpl) List(ctx context.Context, statusFilter *booking.Status) ([]*BookingView, error) {
	return q.store.List(ctx, statusFilter)
}

func (q *bookingQueriesImpl) ListMine(ctx context.Context, userID uuid.UUID) ([]*MyBookingView, error) {
	return q.store.ListByUser(ctx, userID)
}
