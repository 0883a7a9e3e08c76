package product

import "errors"

var ErrInvalidCategory = errors.New("invalid product category")

type Category string

const (
	CategoryPension Category = "PENSION"
	CategoryHotel   Category = "HOTEL"
	CategorySpace   Category = "SPACE"
)

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryPension, CategoryHotel, CategorySpace:
		return true
	default:
		return false
	}
}

func NewCategory(s string) (Category, error) {
	category := Category(s)
	if !category.IsValid() {
		return "", ErrInvalidCategory
	}
	return category, nil
}

// Kind is the booking-unit classification derived from a product's category
// and operating hours.
type Kind string

const (
	// KindTimed products divide the day into fixed-duration slots.
	KindTimed Kind = "TIMED"
	// KindOvernight products have one slot per date spanning a full night.
	KindOvernight Kind = "OVERNIGHT"
)

// Classify determines the booking unit. Lodging categories are always
// overnight; SPACE is overnight only when its hours wrap past midnight.
func Classify(category Category, hours OperatingHours) Kind {
	switch category {
	case CategoryPension, CategoryHotel:
		return KindOvernight
	default:
		if hours.WrapsMidnight() {
			return KindOvernight
		}
		return KindTimed
	}
}
