package commands

import (
	"context"
	"log/slog"

	"slotbook/internal/domain/booking"
	"slotbook/internal/infra"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/pkg/metrics"
	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrSlotUnavailable = errs.New("slot is not available")
	// ErrPartialUnavailability is the group variant of ErrSlotUnavailable:
	// at least one slot of an all-or-nothing set was lost.
	ErrPartialUnavailability = errs.New("slot group partially unavailable")
	ErrEmptySlotGroup        = errs.New("no slots requested")
	ErrGroupTooLarge         = errs.New("slot group too large")
	ErrDuplicateSlots        = errs.New("duplicate slot in request")
	ErrMixedProducts         = errs.New("slots span multiple products")
	ErrInvalidNote           = errs.New("invalid booking note")
	ErrSlotPricingBroken     = errs.New("slot pricing could not be resolved")
)

// MaxGroupSize bounds a single multi-slot reservation request.
const MaxGroupSize = 31

type ReserveResult struct {
	BookingIDs []uuid.UUID
	GroupID    *uuid.UUID
}

type ReservationCommands interface {
	// Reserve claims one slot for the user. The claim is a conditional
	// status transition inside a transaction, so two racing requests for
	// the same slot can never both succeed.
	Reserve(ctx context.Context, userID, slotID uuid.UUID, note string) (*ReserveResult, error)
	// ReserveGroup claims several slots all or nothing, minting one group
	// ID shared by the resulting bookings. Used for multi-night stays.
	ReserveGroup(ctx context.Context, userID uuid.UUID, slotIDs []uuid.UUID, note string) (*ReserveResult, error)
}

type reservationUseCaseImpl struct {
	uow       shared.UnitOfWork
	publisher shared.EventPublisher
	metrics   *metrics.Metrics
}

func NewReservationUseCase(uow shared.UnitOfWork, publisher shared.EventPublisher, m *metrics.Metrics) ReservationCommands {
	return &reservationUseCaseImpl{uow: uow, publisher: publisher, metrics: m}
}

func (u *reservationUseCaseImpl) Reserve(ctx context.Context, userID, slotID uuid.UUID, note string) (*ReserveResult, error) {
	res, err := u.reserve(ctx, userID, []uuid.UUID{slotID}, nil, note)
	if err != nil {
		return nil, err
	}
	u.metrics.BookingsCreated.WithLabelValues("single").Inc()
	return res, nil
}

func (u *reservationUseCaseImpl) ReserveGroup(ctx context.Context, userID uuid.UUID, slotIDs []uuid.UUID, note string) (*ReserveResult, error) {
	if len(slotIDs) == 0 {
		return nil, ErrEmptySlotGroup
	}
	if len(slotIDs) > MaxGroupSize {
		return nil, ErrGroupTooLarge
	}
	seen := make(map[uuid.UUID]struct{}, len(slotIDs))
	for _, id := range slotIDs {
		if _, dup := seen[id]; dup {
			return nil, ErrDuplicateSlots
		}
		seen[id] = struct{}{}
	}

	groupID := uuid.New()
	res, err := u.reserve(ctx, userID, slotIDs, &groupID, note)
	if err != nil {
		return nil, err
	}
	u.metrics.BookingsCreated.WithLabelValues("group").Add(float64(len(slotIDs)))
	return res, nil
}

// reserve runs the claim protocol: conditionally flip every requested slot
// AVAILABLE -> BOOKED, compare the affected row count against the request,
// and create booking rows only when every slot was won. Any shortfall rolls
// the transaction back, leaving no partial state.
func (u *reservationUseCaseImpl) reserve(ctx context.Context, userID uuid.UUID, slotIDs []uuid.UUID, groupID *uuid.UUID, note string) (*ReserveResult, error) {
	bookingNote, err := booking.NewNote(note)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidNote)
	}

	bookingIDs := make([]uuid.UUID, 0, len(slotIDs))
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		bookingIDs = bookingIDs[:0]

		pricing, err := tx.Reads().SlotPricing(ctx, slotIDs)
		if err != nil {
			return errs.Wrap(err, "failed to resolve slot pricing")
		}
		if len(pricing) != len(slotIDs) {
			// At least one requested slot does not exist.
			return errs.Mark(errs.New("unknown slot in request"), ErrSlotNotFound)
		}
		if groupID != nil {
			if err := u.checkSameProduct(ctx, tx, slotIDs); err != nil {
				return err
			}
		}

		claimed, err := tx.Slots().ClaimAvailable(ctx, slotIDs)
		if err != nil {
			return errs.Wrap(err, "failed to claim slots")
		}
		if claimed != int64(len(slotIDs)) {
			u.metrics.ClaimConflicts.Inc()
			if groupID != nil {
				return ErrPartialUnavailability
			}
			return ErrSlotUnavailable
		}

		bySlot := make(map[uuid.UUID]shared.SlotPricing, len(pricing))
		for _, p := range pricing {
			bySlot[p.SlotID] = p
		}
		for _, slotID := range slotIDs {
			p, ok := bySlot[slotID]
			if !ok {
				return ErrSlotPricingBroken
			}
			price := p.Price
			b := booking.NewBooking(userID, slotID, groupID, bookingNote, p.RoomTypeName, &price)
			if err := tx.Bookings().Create(ctx, b); err != nil {
				return errs.Wrap(err, "failed to create booking")
			}
			bookingIDs = append(bookingIDs, b.ID())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.publish(ctx, shared.EventBookingCreated, map[string]any{
		"user_id":     userID,
		"booking_ids": bookingIDs,
		"group_id":    groupID,
	})
	return &ReserveResult{BookingIDs: bookingIDs, GroupID: groupID}, nil
}

// checkSameProduct rejects slot groups spanning products. A stay is one
// product; mixing products in one group would make group-level operations
// meaningless.
func (u *reservationUseCaseImpl) checkSameProduct(ctx context.Context, tx shared.Tx, slotIDs []uuid.UUID) error {
	var productID *uuid.UUID
	for _, id := range slotIDs {
		snap, err := tx.Reads().SlotByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrSlotNotFound)
			}
			return errs.Wrap(err, "failed to load slot")
		}
		if productID == nil {
			pid := snap.ProductID
			productID = &pid
			continue
		}
		if snap.ProductID != *productID {
			return ErrMixedProducts
		}
	}
	return nil
}

func (u *reservationUseCaseImpl) publish(ctx context.Context, eventType string, payload any) {
	if err := u.publisher.Publish(ctx, eventType, payload); err != nil {
		slog.Warn("failed to publish event", "type", eventType, "error", err)
	}
}
