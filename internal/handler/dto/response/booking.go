package response

import (
	"time"

	"slotbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID            uuid.UUID    `json:"id"`
	GroupID       *uuid.UUID   `json:"groupId,omitempty"`
	Status        string       `json:"status"`
	Note          *string      `json:"note,omitempty"`
	RoomTypeName  *string      `json:"roomTypeName,omitempty"`
	PriceSnapshot *int32       `json:"priceSnapshot,omitempty"`
	User          UserResponse `json:"user"`
	// Slot and Product are omitted for bookings whose inventory was deleted
	// after the fact; the snapshot fields above remain.
	Slot      *BookingSlotResponse `json:"slot,omitempty"`
	Product   *BookingProductInfo  `json:"product,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

type BookingSlotResponse struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Status    string    `json:"status"`
}

type BookingProductInfo struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
}

type MyBookingResponse struct {
	ID            uuid.UUID  `json:"id"`
	GroupID       *uuid.UUID `json:"groupId,omitempty"`
	Status        string     `json:"status"`
	ProductName   *string    `json:"productName,omitempty"`
	RoomTypeName  *string    `json:"roomTypeName,omitempty"`
	PriceSnapshot *int32     `json:"priceSnapshot,omitempty"`
	Date          *string    `json:"date,omitempty"`
	StartTime     *string    `json:"startTime,omitempty"`
	EndTime       *string    `json:"endTime,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type ReserveResponse struct {
	BookingIDs []uuid.UUID `json:"bookingIds"`
	GroupID    *uuid.UUID  `json:"groupId,omitempty"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	resp := &BookingResponse{
		ID:            v.ID,
		GroupID:       v.GroupID,
		Status:        v.Status,
		Note:          v.Note,
		RoomTypeName:  v.RoomTypeName,
		PriceSnapshot: v.PriceSnapshot,
		User: UserResponse{
			ID:    v.User.ID,
			Email: v.User.Email,
			Name:  v.User.Name,
			Phone: v.User.Phone,
		},
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
	if v.Slot != nil {
		resp.Slot = &BookingSlotResponse{
			ID:        v.Slot.ID,
			Date:      v.Slot.Date.Format(time.DateOnly),
			StartTime: v.Slot.StartTime,
			EndTime:   v.Slot.EndTime,
			Status:    v.Slot.Status,
		}
	}
	if v.Product != nil {
		resp.Product = &BookingProductInfo{
			ID:       v.Product.ID,
			Name:     v.Product.Name,
			Category: v.Product.Category,
		}
	}
	return resp
}

func FromBookingViews(views []*queries.BookingView) []*BookingResponse {
	out := make([]*BookingResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromBookingView(v))
	}
	return out
}

func FromMyBookingView(v *queries.MyBookingView) *MyBookingResponse {
	resp := &MyBookingResponse{
		ID:            v.ID,
		GroupID:       v.GroupID,
		Status:        v.Status,
		ProductName:   v.ProductName,
		RoomTypeName:  v.RoomTypeName,
		PriceSnapshot: v.PriceSnapshot,
		StartTime:     v.StartTime,
		EndTime:       v.EndTime,
		CreatedAt:     v.CreatedAt,
	}
	if v.Date != nil {
		d := v.Date.Format(time.DateOnly)
		resp.Date = &d
	}
	return resp
}

func FromMyBookingViews(views []*queries.MyBookingView) []*MyBookingResponse {
	out := make([]*MyBookingResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromMyBookingView(v))
	}
	return out
}
