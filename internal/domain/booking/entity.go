package booking

import (
	"errors"
	"strings"
	"time"

	"slotbook/internal/domain/user"

	"github.com/google/uuid"
)

const MaxNoteLength = 500

var (
	ErrNoteTooLong   = errors.New("note exceeds maximum length")
	ErrNotCancelable = errors.New("booking cannot be cancelled")
	ErrNotPending    = errors.New("booking is not pending")
)

// Booking is one claim on exactly one time slot. A multi-night stay is a set
// of bookings sharing a group ID, one per night.
type Booking struct {
	id         uuid.UUID
	userID     uuid.UUID
	timeSlotID uuid.UUID
	groupID    *uuid.UUID
	note       Note
	status     Status
	// Snapshots taken at booking time so later room-type edits or deletion
	// don't corrupt booking history.
	roomTypeName  *string
	priceSnapshot *int32
	createdAt     time.Time
	updatedAt     time.Time
}

func NewBooking(
	userID, timeSlotID uuid.UUID,
	groupID *uuid.UUID,
	note Note,
	roomTypeName *string,
	priceSnapshot *int32,
) *Booking {
	return &Booking{
		id:            uuid.New(),
		userID:        userID,
		timeSlotID:    timeSlotID,
		groupID:       groupID,
		note:          note,
		status:        StatusPending,
		roomTypeName:  roomTypeName,
		priceSnapshot: priceSnapshot,
	}
}

func ReconstructBooking(
	id, userID, timeSlotID uuid.UUID,
	groupID *uuid.UUID,
	note Note,
	status Status,
	roomTypeName *string,
	priceSnapshot *int32,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		userID:        userID,
		timeSlotID:    timeSlotID,
		groupID:       groupID,
		note:          note,
		status:        status,
		roomTypeName:  roomTypeName,
		priceSnapshot: priceSnapshot,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// CanBeCancelledBy implements the ownership rule: the booking's owner or an
// administrator may cancel.
func (b *Booking) CanBeCancelledBy(actorID uuid.UUID, actorRole user.Role) bool {
	return b.userID == actorID || actorRole.IsAdmin()
}

func (b *Booking) IsCancelled() bool {
	return b.status == StatusCancelled
}

func (b *Booking) ID() uuid.UUID         { return b.id }
func (b *Booking) UserID() uuid.UUID     { return b.userID }
func (b *Booking) TimeSlotID() uuid.UUID { return b.timeSlotID }
func (b *Booking) GroupID() *uuid.UUID   { return b.groupID }
func (b *Booking) Note() Note            { return b.note }
func (b *Booking) Status() Status        { return b.status }
func (b *Booking) RoomTypeName() *string { return b.roomTypeName }
func (b *Booking) PriceSnapshot() *int32 { return b.priceSnapshot }
func (b *Booking) CreatedAt() time.Time  { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time  { return b.updatedAt }

type Note struct {
	value string
}

func NewNote(value string) (Note, error) {
	value = strings.TrimSpace(value)
	if len(value) > MaxNoteLength {
		return Note{}, ErrNoteTooLong
	}
	return Note{value: value}, nil
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}
