package response

import (
	"time"

	"slotbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotResponse struct {
	ID           uuid.UUID            `json:"id"`
	ProductID    uuid.UUID            `json:"productId"`
	RoomTypeID   *uuid.UUID           `json:"roomTypeId,omitempty"`
	RoomTypeName *string              `json:"roomTypeName,omitempty"`
	Date         string               `json:"date"`
	StartTime    string               `json:"startTime"`
	EndTime      string               `json:"endTime"`
	Status       string               `json:"status"`
	Booking      *SlotBookingResponse `json:"booking,omitempty"`
}

type SlotBookingResponse struct {
	BookingID uuid.UUID    `json:"bookingId"`
	Status    string       `json:"status"`
	User      UserResponse `json:"user"`
}

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Phone *string   `json:"phone,omitempty"`
}

type GenerateSlotsResponse struct {
	Requested int   `json:"requested"`
	Inserted  int64 `json:"inserted"`
}

func FromSlotView(v *queries.SlotView) *SlotResponse {
	resp := &SlotResponse{
		ID:           v.ID,
		ProductID:    v.ProductID,
		RoomTypeID:   v.RoomTypeID,
		RoomTypeName: v.RoomTypeName,
		Date:         v.Date.Format(time.DateOnly),
		StartTime:    v.StartTime,
		EndTime:      v.EndTime,
		Status:       v.Status,
	}
	if v.Booking != nil {
		resp.Booking = &SlotBookingResponse{
			BookingID: v.Booking.BookingID,
			Status:    v.Booking.Status,
			User: UserResponse{
				ID:    v.Booking.User.ID,
				Email: v.Booking.User.Email,
				Name:  v.Booking.User.Name,
				Phone: v.Booking.User.Phone,
			},
		}
	}
	return resp
}

func FromSlotViews(views []*queries.SlotView) []*SlotResponse {
	out := make([]*SlotResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromSlotView(v))
	}
	return out
}
