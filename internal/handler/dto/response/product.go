package response

import (
	"time"

	"slotbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type ProductResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Images          []string  `json:"images"`
	PricePerSlot    int32     `json:"pricePerSlot"`
	Address         string    `json:"address"`
	OpenTime        string    `json:"openTime"`
	CloseTime       string    `json:"closeTime"`
	SlotDurationMin int       `json:"slotDurationMin"`
	IsActive        bool      `json:"isActive"`
	SlotCount       int64     `json:"slotCount"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type RoomTypeResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Price     int32     `json:"price"`
	Capacity  int       `json:"capacity"`
	IsActive  bool      `json:"isActive"`
	SlotCount int64     `json:"slotCount"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

func FromProductView(v *queries.ProductView) *ProductResponse {
	return &ProductResponse{
		ID:              v.ID,
		Name:            v.Name,
		Description:     v.Description,
		Category:        v.Category,
		Images:          v.Images,
		PricePerSlot:    v.PricePerSlot,
		Address:         v.Address,
		OpenTime:        v.OpenTime,
		CloseTime:       v.CloseTime,
		SlotDurationMin: v.SlotDurationMin,
		IsActive:        v.IsActive,
		SlotCount:       v.SlotCount,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

func FromProductViews(views []*queries.ProductView) []*ProductResponse {
	out := make([]*ProductResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromProductView(v))
	}
	return out
}

func FromRoomTypeView(v *queries.RoomTypeView) *RoomTypeResponse {
	return &RoomTypeResponse{
		ID:        v.ID,
		ProductID: v.ProductID,
		Name:      v.Name,
		Price:     v.Price,
		Capacity:  v.Capacity,
		IsActive:  v.IsActive,
		SlotCount: v.SlotCount,
		CreatedAt: v.CreatedAt,
	}
}

func FromRoomTypeViews(views []*queries.RoomTypeView) []*RoomTypeResponse {
	out := make([]*RoomTypeResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromRoomTypeView(v))
	}
	return out
}
