package queries

import (
	"context"
	"time"

	"slotbook/internal/domain/user"

	"github.com/google/uuid"
)

type SlotReadStore interface {
	ListByProductAndDate(ctx context.Context, productID uuid.UUID, date time.Time, roomTypeID *uuid.UUID) ([]*SlotView, error)
}

type SlotQueries interface {
	// List returns the slots for a product and date, ordered by room type
	// then start time. Booking details are stripped for non-admin callers.
	List(ctx context.Context, actorRole user.Role, productID uuid.UUID, date time.Time, roomTypeID *uuid.UUID) ([]*SlotView, error)
}

type slotQueriesImpl struct {
	store SlotReadStore
}

func NewSlotQueries(store SlotReadStore) SlotQueries {
	return &slotQueriesImpl{store: store}
}

func (q *slotQueriesImpl) List(ctx context.Context, actorRole user.Role, productID uuid.UUID, date time.Time, roomTypeID *uuid.UUID) ([]*SlotView, error) {
	views, err := q.store.ListByProductAndDate(ctx, productID, date, roomTypeID)
	if err != nil {
		return nil, err
	}
	if !actorRole.IsAdmin() {
		for _, v := range views {
			v.Booking = nil
		}
	}
	return views, nil
}
