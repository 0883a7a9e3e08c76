package request

import (
	"slotbook/internal/usecase/commands"
)

type ProductRequest struct {
	Name            string   `json:"name" binding:"required"`
	Description     string   `json:"description"`
	Category        string   `json:"category" binding:"required"`
	Images          []string `json:"images"`
	PricePerSlot    int32    `json:"price_per_slot" binding:"min=0"`
	Address         string   `json:"address"`
	OpenTime        string   `json:"open_time" binding:"required"`
	CloseTime       string   `json:"close_time" binding:"required"`
	SlotDurationMin int      `json:"slot_duration_min" binding:"required"`
	IsActive        bool     `json:"is_active"`
}

func (r ProductRequest) ToInput() commands.ProductInput {
	return commands.ProductInput{
		Name:            r.Name,
		Description:     r.Description,
		Category:        r.Category,
		Images:          r.Images,
		PricePerSlot:    r.PricePerSlot,
		Address:         r.Address,
		OpenTime:        r.OpenTime,
		CloseTime:       r.CloseTime,
		SlotDurationMin: r.SlotDurationMin,
		IsActive:        r.IsActive,
	}
}

type RoomTypeRequest struct {
	Name     string `json:"name" binding:"required"`
	Price    int32  `json:"price" binding:"min=0"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
	IsActive bool   `json:"is_active"`
}

func (r RoomTypeRequest) ToInput() commands.RoomTypeInput {
	return commands.RoomTypeInput{
		Name:     r.Name,
		Price:    r.Price,
		Capacity: r.Capacity,
		IsActive: r.IsActive,
	}
}
