package request

import (
	"strings"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	SlotID uuid.UUID `json:"slot_id" binding:"required"`
	Note   *string   `json:"note,omitempty"`
}

func (r CreateBookingRequest) GetNote() string {
	return trimmedNote(r.Note)
}

type CreateGroupBookingRequest struct {
	SlotIDs []uuid.UUID `json:"slot_ids" binding:"required,min=1"`
	Note    *string     `json:"note,omitempty"`
}

func (r CreateGroupBookingRequest) GetNote() string {
	return trimmedNote(r.Note)
}

func trimmedNote(note *string) string {
	if note == nil {
		return ""
	}
	return strings.TrimSpace(*note)
}
