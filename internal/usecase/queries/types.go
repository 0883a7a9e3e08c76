package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type SlotView struct {
	ID           uuid.UUID  `json:"id"`
	ProductID    uuid.UUID  `json:"product_id"`
	RoomTypeID   *uuid.UUID `json:"room_type_id,omitempty"`
	RoomTypeName *string    `json:"room_type_name,omitempty"`
	Date         time.Time  `json:"date"`
	StartTime    string     `json:"start_time"`
	EndTime      string     `json:"end_time"`
	Status       string     `json:"status"`
	// Booking is present on admin calendar reads for occupied slots.
	Booking *SlotBookingView `json:"booking,omitempty"`
}

type SlotBookingView struct {
	BookingID uuid.UUID `json:"booking_id"`
	Status    string    `json:"status"`
	User      UserView  `json:"user"`
}

// UserView is the restricted projection exposed to administrators.
// Credential fields never appear here.
type UserView struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Phone *string   `json:"phone,omitempty"`
}

type BookingView struct {
	ID            uuid.UUID  `json:"id"`
	GroupID       *uuid.UUID `json:"group_id,omitempty"`
	Status        string     `json:"status"`
	Note          *string    `json:"note,omitempty"`
	RoomTypeName  *string    `json:"room_type_name,omitempty"`
	PriceSnapshot *int32     `json:"price_snapshot,omitempty"`
	User          UserView   `json:"user"`
	// Slot and Product are nil for historical bookings whose inventory was
	// deleted; the snapshot columns above are all that remains of it.
	Slot      *BookingSlotView    `json:"slot,omitempty"`
	Product   *BookingProductView `json:"product,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

type BookingSlotView struct {
	ID        uuid.UUID `json:"id"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Status    string    `json:"status"`
}

type BookingProductView struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
}

type MyBookingView struct {
	ID            uuid.UUID  `json:"id"`
	GroupID       *uuid.UUID `json:"group_id,omitempty"`
	Status        string     `json:"status"`
	RoomTypeName  *string    `json:"room_type_name,omitempty"`
	PriceSnapshot *int32     `json:"price_snapshot,omitempty"`
	// Nil slot details mean the underlying inventory was deleted after the
	// booking was made.
	ProductName *string    `json:"product_name,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	StartTime   *string    `json:"start_time,omitempty"`
	EndTime     *string    `json:"end_time,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type ProductView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Images          []string  `json:"images"`
	PricePerSlot    int32     `json:"price_per_slot"`
	Address         string    `json:"address"`
	OpenTime        string    `json:"open_time"`
	CloseTime       string    `json:"close_time"`
	SlotDurationMin int       `json:"slot_duration_min"`
	IsActive        bool      `json:"is_active"`
	SlotCount       int64     `json:"slot_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type RoomTypeView struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Price     int32     `json:"price"`
	Capacity  int       `json:"capacity"`
	IsActive  bool      `json:"is_active"`
	SlotCount int64     `json:"slot_count"`
	CreatedAt time.Time `json:"created_at"`
}
