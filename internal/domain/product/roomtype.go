package product

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyRoomTypeName = errors.New("room type name must not be empty")
	ErrInvalidCapacity   = errors.New("room type capacity must be positive")
)

// RoomType is an optional sub-resource of an overnight product. Slot inventory
// for a product with room types is keyed per room type.
type RoomType struct {
	id        uuid.UUID
	productID uuid.UUID
	name      string
	price     int32
	capacity  int
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
}

func NewRoomType(productID uuid.UUID, name string, price int32, capacity int, isActive bool) (*RoomType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyRoomTypeName
	}
	if len(name) > MaxNameLength {
		return nil, ErrNameTooLong
	}
	if price < 0 {
		return nil, ErrNegativePrice
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	return &RoomType{
		id:        uuid.New(),
		productID: productID,
		name:      name,
		price:     price,
		capacity:  capacity,
		isActive:  isActive,
	}, nil
}

func ReconstructRoomType(
	id, productID uuid.UUID,
	name string,
	price int32,
	capacity int,
	isActive bool,
	createdAt, updatedAt time.Time,
) *RoomType {
	return &RoomType{
		id:        id,
		productID: productID,
		name:      name,
		price:     price,
		capacity:  capacity,
		isActive:  isActive,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (r *RoomType) ID() uuid.UUID        { return r.id }
func (r *RoomType) ProductID() uuid.UUID { return r.productID }
func (r *RoomType) Name() string         { return r.name }
func (r *RoomType) Price() int32         { return r.price }
func (r *RoomType) Capacity() int        { return r.capacity }
func (r *RoomType) IsActive() bool       { return r.isActive }
func (r *RoomType) CreatedAt() time.Time { return r.createdAt }
func (r *RoomType) UpdatedAt() time.Time { return r.updatedAt }
