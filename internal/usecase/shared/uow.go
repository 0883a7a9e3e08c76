package shared

import (
	"context"
	"time"

	"slotbook/internal/domain/booking"
	"slotbook/internal/domain/product"
	"slotbook/internal/domain/slot"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Slots() SlotRepository
	Bookings() BookingRepository
	Products() ProductRepository
	RoomTypes() RoomTypeRepository
	Reads() CommandReads
}

// CommandReads are the minimal lookups the write side needs. Bound to the
// transaction when obtained through Tx.Reads().
type CommandReads interface {
	ProductByID(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error)
	RoomTypeByID(ctx context.Context, id uuid.UUID) (*RoomTypeSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	SlotByID(ctx context.Context, id uuid.UUID) (*SlotSnapshot, error)
	// SlotPricing resolves the denormalized booking snapshot (room type name
	// and price) for each slot: room type price when the slot is room-typed,
	// the product's price per slot otherwise.
	SlotPricing(ctx context.Context, slotIDs []uuid.UUID) ([]SlotPricing, error)
}

type ProductSnapshot struct {
	ID              uuid.UUID
	Name            string
	Category        product.Category
	OpenTime        string
	CloseTime       string
	SlotDurationMin int
	PricePerSlot    int32
	IsActive        bool
}

type RoomTypeSnapshot struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Name      string
	Price     int32
	IsActive  bool
}

type BookingSnapshot struct {
	ID     uuid.UUID
	UserID uuid.UUID
	// TimeSlotID is nil when the slot was removed by cascading inventory
	// deletion; the booking survives as history.
	TimeSlotID *uuid.UUID
	GroupID    *uuid.UUID
	Status     booking.Status
}

type SlotSnapshot struct {
	ID         uuid.UUID
	ProductID  uuid.UUID
	RoomTypeID *uuid.UUID
	Status     slot.Status
}

type SlotPricing struct {
	SlotID       uuid.UUID
	RoomTypeName *string
	Price        int32
}

// NewSlot is one row the generator hands to the availability store.
type NewSlot struct {
	ProductID  uuid.UUID
	RoomTypeID *uuid.UUID
	Date       time.Time
	StartTime  string
	EndTime    string
}

type SlotRepository interface {
	// BulkInsert writes candidates and returns the count actually inserted.
	// Rows colliding with the (product, room type, date, start) uniqueness
	// constraint are skipped, not errored.
	BulkInsert(ctx context.Context, slots []NewSlot) (int64, error)
	// ExistingKeys loads (date, start) pairs already present for the
	// product's null-room-type inventory in [from, to].
	ExistingKeys(ctx context.Context, productID uuid.UUID, from, to time.Time) (map[slot.DayTime]struct{}, error)
	// ClaimAvailable atomically transitions the given slots
	// AVAILABLE -> BOOKED and returns how many rows actually changed.
	ClaimAvailable(ctx context.Context, slotIDs []uuid.UUID) (int64, error)
	// Release reverts BOOKED -> AVAILABLE for compensating cancellation.
	Release(ctx context.Context, slotIDs []uuid.UUID) (int64, error)
	// SetStatusGuarded hand-sets AVAILABLE/BLOCKED, refusing when the slot
	// is currently BOOKED. Returns rows changed.
	SetStatusGuarded(ctx context.Context, slotID uuid.UUID, status slot.Status) (int64, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	// ConfirmIfPending transitions PENDING -> CONFIRMED; rows changed.
	ConfirmIfPending(ctx context.Context, bookingID uuid.UUID) (int64, error)
	// CancelIfLive transitions PENDING/CONFIRMED -> CANCELLED; rows changed.
	CancelIfLive(ctx context.Context, bookingID uuid.UUID) (int64, error)
}

type ProductRepository interface {
	Create(ctx context.Context, p *product.Product) error
	Update(ctx context.Context, p *product.Product) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type RoomTypeRepository interface {
	Create(ctx context.Context, rt *product.RoomType) error
	Update(ctx context.Context, rt *product.RoomType) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}
