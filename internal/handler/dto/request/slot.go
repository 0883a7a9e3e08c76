package request

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("date must be YYYY-MM-DD")

type GenerateSlotsRequest struct {
	StartDate  string     `json:"start_date" binding:"required"`
	EndDate    string     `json:"end_date" binding:"required"`
	RoomTypeID *uuid.UUID `json:"room_type_id,omitempty"`
}

func (r GenerateSlotsRequest) ParseDates() (from, to time.Time, err error) {
	from, err = time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	to, err = time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	return from, to, nil
}

type SetSlotStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
