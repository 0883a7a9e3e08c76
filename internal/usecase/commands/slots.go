package commands

import (
	"context"
	"log/slog"
	"time"

	"slotbook/internal/domain/product"
	"slotbook/internal/domain/slot"
	"slotbook/internal/infra"
	"slotbook/internal/pkg/clock"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/pkg/metrics"
	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound       = errs.New("product not found")
	ErrProductInactive       = errs.New("product is not active")
	ErrRoomTypeNotFound      = errs.New("room type not found")
	ErrRoomTypeWrongProduct  = errs.New("room type does not belong to product")
	ErrInvalidDateRange      = errs.New("invalid date range")
	ErrInvalidOperatingHours = errs.New("invalid operating hours")
	ErrSlotNotFound          = errs.New("slot not found")
	ErrSlotOccupied          = errs.New("slot is booked and cannot be edited")
	ErrInvalidSlotStatus     = errs.New("status cannot be set manually")
)

// MaxGenerationDays caps one generation request so a bad date range cannot
// flood the inventory table.
const MaxGenerationDays = 366

type GenerateSlotsResult struct {
	Requested int
	Inserted  int64
}

type SlotCommands interface {
	// Generate expands the product's operating hours into concrete slots for
	// every day in [from, to] and inserts the ones not already present.
	Generate(ctx context.Context, productID uuid.UUID, roomTypeID *uuid.UUID, from, to time.Time) (*GenerateSlotsResult, error)
	// SetStatus hand-sets a slot to AVAILABLE or BLOCKED. Booked slots are
	// never touched; release them by cancelling the booking instead.
	SetStatus(ctx context.Context, slotID uuid.UUID, status slot.Status) error
}

type slotUseCaseImpl struct {
	uow       shared.UnitOfWork
	clock     clock.Clock
	publisher shared.EventPublisher
	metrics   *metrics.Metrics
}

func NewSlotUseCase(uow shared.UnitOfWork, clk clock.Clock, publisher shared.EventPublisher, m *metrics.Metrics) SlotCommands {
	return &slotUseCaseImpl{uow: uow, clock: clk, publisher: publisher, metrics: m}
}

func (u *slotUseCaseImpl) Generate(ctx context.Context, productID uuid.UUID, roomTypeID *uuid.UUID, from, to time.Time) (*GenerateSlotsResult, error) {
	if to.Before(from) {
		return nil, errs.Mark(errs.New("end date before start date"), ErrInvalidDateRange)
	}
	now := u.clock.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if to.Before(today) {
		return nil, errs.Mark(errs.New("date range entirely in the past"), ErrInvalidDateRange)
	}
	// Both endpoints are generated, so a [from, from] range is one day.
	if int(to.Sub(from).Hours()/24)+1 > MaxGenerationDays {
		return nil, errs.Mark(errs.New("date range exceeds generation cap"), ErrInvalidDateRange)
	}

	var inserted int64
	var requested int
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		prod, err := tx.Reads().ProductByID(ctx, productID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrProductNotFound)
			}
			return errs.Wrap(err, "failed to load product")
		}
		if !prod.IsActive {
			return ErrProductInactive
		}
		if roomTypeID != nil {
			rt, err := tx.Reads().RoomTypeByID(ctx, *roomTypeID)
			if err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					return errs.Mark(err, ErrRoomTypeNotFound)
				}
				return errs.Wrap(err, "failed to load room type")
			}
			if rt.ProductID != productID {
				return ErrRoomTypeWrongProduct
			}
		}

		hours, err := product.NewOperatingHours(prod.OpenTime, prod.CloseTime)
		if err != nil {
			return errs.Mark(err, ErrInvalidOperatingHours)
		}
		kind := product.Classify(prod.Category, hours)
		candidates := slot.Expand(kind, hours, prod.SlotDurationMin, from, to)
		requested = len(candidates)
		if len(candidates) == 0 {
			return nil
		}

		// Room-typed rows are deduplicated by a partial unique index, but a
		// NULL room type never collides in a unique index, so the null path
		// filters against existing rows inside the same transaction.
		if roomTypeID == nil {
			existing, err := tx.Slots().ExistingKeys(ctx, productID, from, to)
			if err != nil {
				return errs.Wrap(err, "failed to load existing slot keys")
			}
			candidates = slot.FilterExisting(candidates, existing)
		}

		rows := make([]shared.NewSlot, 0, len(candidates))
		for _, c := range candidates {
			rows = append(rows, shared.NewSlot{
				ProductID:  productID,
				RoomTypeID: roomTypeID,
				Date:       c.Date,
				StartTime:  c.StartTime,
				EndTime:    c.EndTime,
			})
		}
		inserted, err = tx.Slots().BulkInsert(ctx, rows)
		if err != nil {
			return errs.Wrap(err, "failed to insert slots")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.metrics.SlotsGenerated.Add(float64(inserted))
	u.publish(ctx, shared.EventSlotsGenerated, map[string]any{
		"product_id": productID,
		"inserted":   inserted,
	})
	return &GenerateSlotsResult{Requested: requested, Inserted: inserted}, nil
}

func (u *slotUseCaseImpl) SetStatus(ctx context.Context, slotID uuid.UUID, status slot.Status) error {
	if !status.CanSetManually() {
		return ErrInvalidSlotStatus
	}
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rows, err := tx.Slots().SetStatusGuarded(ctx, slotID, status)
		if err != nil {
			return errs.Wrap(err, "failed to set slot status")
		}
		if rows == 0 {
			// Distinguish a missing slot from one locked by a live booking.
			snap, err := tx.Reads().SlotByID(ctx, slotID)
			if err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					return errs.Mark(err, ErrSlotNotFound)
				}
				return errs.Wrap(err, "failed to load slot")
			}
			if snap.Status == slot.StatusBooked {
				return ErrSlotOccupied
			}
			return errs.New("slot status update affected no rows")
		}
		return nil
	})
	if err != nil {
		return err
	}

	u.publish(ctx, shared.EventSlotStatusSet, map[string]any{
		"slot_id": slotID,
		"status":  status.String(),
	})
	return nil
}

func (u *slotUseCaseImpl) publish(ctx context.Context, eventType string, payload any) {
	if err := u.publisher.Publish(ctx, eventType, payload); err != nil {
		slog.Warn("failed to publish event", "type", eventType, "error", err)
	}
}
