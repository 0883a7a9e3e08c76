package product

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 2000
	MaxAddressLength     = 200
	MinSlotDurationMin   = 30
	MaxSlotDurationMin   = 120
)

var (
	ErrEmptyName           = errors.New("product name must not be empty")
	ErrNameTooLong         = errors.New("product name exceeds maximum length")
	ErrDescriptionTooLong  = errors.New("product description exceeds maximum length")
	ErrAddressTooLong      = errors.New("product address exceeds maximum length")
	ErrNegativePrice       = errors.New("price per slot cannot be negative")
	ErrInvalidSlotDuration = errors.New("slot duration out of range")
)

type Product struct {
	id           uuid.UUID
	name         string
	description  string
	category     Category
	images       []string
	pricePerSlot int32
	address      string
	hours        OperatingHours
	slotDuration int
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewProduct(
	name, description string,
	category Category,
	images []string,
	pricePerSlot int32,
	address string,
	hours OperatingHours,
	slotDurationMin int,
	isActive bool,
) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return nil, ErrNameTooLong
	}
	if len(description) > MaxDescriptionLength {
		return nil, ErrDescriptionTooLong
	}
	if len(address) > MaxAddressLength {
		return nil, ErrAddressTooLong
	}
	if pricePerSlot < 0 {
		return nil, ErrNegativePrice
	}
	if slotDurationMin < MinSlotDurationMin || slotDurationMin > MaxSlotDurationMin {
		return nil, ErrInvalidSlotDuration
	}

	return &Product{
		id:           uuid.New(),
		name:         name,
		description:  description,
		category:     category,
		images:       images,
		pricePerSlot: pricePerSlot,
		address:      address,
		hours:        hours,
		slotDuration: slotDurationMin,
		isActive:     isActive,
	}, nil
}

func ReconstructProduct(
	id uuid.UUID,
	name, description string,
	category Category,
	images []string,
	pricePerSlot int32,
	address string,
	hours OperatingHours,
	slotDurationMin int,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Product {
	return &Product{
		id:           id,
		name:         name,
		description:  description,
		category:     category,
		images:       images,
		pricePerSlot: pricePerSlot,
		address:      address,
		hours:        hours,
		slotDuration: slotDurationMin,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (p *Product) Kind() Kind {
	return Classify(p.category, p.hours)
}

func (p *Product) ID() uuid.UUID          { return p.id }
func (p *Product) Name() string           { return p.name }
func (p *Product) Description() string    { return p.description }
func (p *Product) Category() Category     { return p.category }
func (p *Product) Images() []string       { return p.images }
func (p *Product) PricePerSlot() int32    { return p.pricePerSlot }
func (p *Product) Address() string        { return p.address }
func (p *Product) Hours() OperatingHours  { return p.hours }
func (p *Product) SlotDurationMin() int   { return p.slotDuration }
func (p *Product) IsActive() bool         { return p.isActive }
func (p *Product) CreatedAt() time.Time   { return p.createdAt }
func (p *Product) UpdatedAt() time.Time   { return p.updatedAt }
