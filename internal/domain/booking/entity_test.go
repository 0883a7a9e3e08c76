//go:build unit

package booking_test

import (
	"strings"
	"testing"

	"slotbook/internal/domain/booking"
	"slotbook/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		name string
		from booking.Status
		to   booking.Status
		ok   bool
	}{
		{name: "pending to confirmed", from: booking.StatusPending, to: booking.StatusConfirmed, ok: true},
		{name: "pending to cancelled", from: booking.StatusPending, to: booking.StatusCancelled, ok: true},
		{name: "confirmed to cancelled", from: booking.StatusConfirmed, to: booking.StatusCancelled, ok: true},
		{name: "confirmed to pending", from: booking.StatusConfirmed, to: booking.StatusPending, ok: false},
		{name: "cancelled to confirmed", from: booking.StatusCancelled, to: booking.StatusConfirmed, ok: false},
		{name: "cancelled to pending", from: booking.StatusCancelled, to: booking.StatusPending, ok: false},
		{name: "pending to pending", from: booking.StatusPending, to: booking.StatusPending, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, booking.StatusPending.IsTerminal())
	assert.False(t, booking.StatusConfirmed.IsTerminal())
	assert.True(t, booking.StatusCancelled.IsTerminal())
}

func TestNewNote(t *testing.T) {
	t.Run("valid note", func(t *testing.T) {
		note, err := booking.NewNote("late arrival, around 9pm")
		require.NoError(t, err)
		assert.Equal(t, "late arrival, around 9pm", note.String())
		assert.False(t, note.IsEmpty())
	})

	t.Run("empty note", func(t *testing.T) {
		note, err := booking.NewNote("")
		require.NoError(t, err)
		assert.True(t, note.IsEmpty())
	})

	t.Run("note at maximum length", func(t *testing.T) {
		_, err := booking.NewNote(strings.Repeat("a", booking.MaxNoteLength))
		assert.NoError(t, err)
	})

	t.Run("note too long", func(t *testing.T) {
		_, err := booking.NewNote(strings.Repeat("a", booking.MaxNoteLength+1))
		assert.ErrorIs(t, err, booking.ErrNoteTooLong)
	})
}

func TestNewBooking(t *testing.T) {
	userID := uuid.New()
	slotID := uuid.New()
	groupID := uuid.New()
	note, err := booking.NewNote("two guests")
	require.NoError(t, err)
	roomTypeName := "Twin"
	price := int32(12000)

	b := booking.NewBooking(userID, slotID, &groupID, note, &roomTypeName, &price)

	assert.NotEqual(t, uuid.Nil, b.ID())
	assert.Equal(t, userID, b.UserID())
	assert.Equal(t, slotID, b.TimeSlotID())
	require.NotNil(t, b.GroupID())
	assert.Equal(t, groupID, *b.GroupID())
	assert.Equal(t, booking.StatusPending, b.Status())
	require.NotNil(t, b.RoomTypeName())
	assert.Equal(t, "Twin", *b.RoomTypeName())
	require.NotNil(t, b.PriceSnapshot())
	assert.Equal(t, int32(12000), *b.PriceSnapshot())
}

func TestCanBeCancelledBy(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	note, err := booking.NewNote("")
	require.NoError(t, err)
	b := booking.NewBooking(owner, uuid.New(), nil, note, nil, nil)

	assert.True(t, b.CanBeCancelledBy(owner, user.RoleUser))
	assert.False(t, b.CanBeCancelledBy(stranger, user.RoleUser))
	assert.True(t, b.CanBeCancelledBy(stranger, user.RoleAdmin))
}
