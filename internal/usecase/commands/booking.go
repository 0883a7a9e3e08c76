package commands

import (
	"context"
	"log/slog"

	"slotbook/internal/domain/user"
	"slotbook/internal/infra"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/pkg/metrics"
	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound    = errs.New("booking not found")
	ErrBookingNotPending  = errs.New("booking is not pending")
	ErrBookingTerminal    = errs.New("booking already finished")
	ErrBookingNotYours    = errs.New("booking belongs to another user")
)

type BookingCommands interface {
	// Confirm moves a PENDING booking to CONFIRMED. The slot stays BOOKED.
	Confirm(ctx context.Context, bookingID uuid.UUID) error
	// Cancel moves a live booking to CANCELLED and releases its slot back
	// to AVAILABLE in the same transaction. Users cancel their own
	// bookings; admins cancel anyone's.
	Cancel(ctx context.Context, bookingID, actorID uuid.UUID, actorRole user.Role) error
}

type bookingUseCaseImpl struct {
	uow       shared.UnitOfWork
	publisher shared.EventPublisher
	metrics   *metrics.Metrics
}

func NewBookingUseCase(uow shared.UnitOfWork, publisher shared.EventPublisher, m *metrics.Metrics) BookingCommands {
	return &bookingUseCaseImpl{uow: uow, publisher: publisher, metrics: m}
}

func (u *bookingUseCaseImpl) Confirm(ctx context.Context, bookingID uuid.UUID) error {
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rows, err := tx.Bookings().ConfirmIfPending(ctx, bookingID)
		if err != nil {
			return errs.Wrap(err, "failed to confirm booking")
		}
		if rows == 0 {
			snap, err := tx.Reads().BookingByID(ctx, bookingID)
			if err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					return errs.Mark(err, ErrBookingNotFound)
				}
				return errs.Wrap(err, "failed to load booking")
			}
			// A cancelled booking stays cancelled; confirming it would
			// resurrect a claim on a slot that may already be re-booked.
			return errs.Mark(errs.New(string(snap.Status)), ErrBookingNotPending)
		}
		return nil
	})
	if err != nil {
		return err
	}

	u.publish(ctx, shared.EventBookingConfirmed, map[string]any{"booking_id": bookingID})
	return nil
}

func (u *bookingUseCaseImpl) Cancel(ctx context.Context, bookingID, actorID uuid.UUID, actorRole user.Role) error {
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrBookingNotFound)
			}
			return errs.Wrap(err, "failed to load booking")
		}
		if !actorRole.IsAdmin() && snap.UserID != actorID {
			return ErrBookingNotYours
		}
		if snap.Status.IsTerminal() {
			return ErrBookingTerminal
		}

		rows, err := tx.Bookings().CancelIfLive(ctx, bookingID)
		if err != nil {
			return errs.Wrap(err, "failed to cancel booking")
		}
		if rows == 0 {
			// Lost a race with another cancel between the read and the
			// conditional update.
			return ErrBookingTerminal
		}

		if snap.TimeSlotID == nil {
			// The slot was cascaded away with its product or room type;
			// only the booking row itself is left to cancel.
			return nil
		}
		released, err := tx.Slots().Release(ctx, []uuid.UUID{*snap.TimeSlotID})
		if err != nil {
			return errs.Wrap(err, "failed to release slot")
		}
		if released == 0 {
			// Slot left BOOKED by something other than this booking would
			// be a data integrity bug; surface it instead of committing.
			return errs.New("cancelled booking's slot was not booked")
		}
		return nil
	})
	if err != nil {
		return err
	}

	u.metrics.BookingsCancelled.Inc()
	u.publish(ctx, shared.EventBookingCancelled, map[string]any{"booking_id": bookingID})
	return nil
}

func (u *bookingUseCaseImpl) publish(ctx context.Context, eventType string, payload any) {
	if err := u.publisher.Publish(ctx, eventType, payload); err != nil {
		slog.Warn("failed to publish event", "type", eventType, "error", err)
	}
}
