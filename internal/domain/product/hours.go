package product

import (
	"errors"
	"fmt"
)

var ErrInvalidClockTime = errors.New("clock time must be HH:MM in 24h format")

// ClockTime is a wall-clock time of day ("15:00") with no date attached.
type ClockTime struct {
	minutes int
}

func ParseClockTime(s string) (ClockTime, error) {
	if len(s) != 5 || s[2] != ':' {
		return ClockTime{}, ErrInvalidClockTime
	}
	h, m := 0, 0
	for _, c := range s[:2] {
		if c < '0' || c > '9' {
			return ClockTime{}, ErrInvalidClockTime
		}
		h = h*10 + int(c-'0')
	}
	for _, c := range s[3:] {
		if c < '0' || c > '9' {
			return ClockTime{}, ErrInvalidClockTime
		}
		m = m*10 + int(c-'0')
	}
	if h > 23 || m > 59 {
		return ClockTime{}, ErrInvalidClockTime
	}
	return ClockTime{minutes: h*60 + m}, nil
}

func ClockTimeFromMinutes(minutes int) ClockTime {
	return ClockTime{minutes: minutes}
}

func (t ClockTime) Minutes() int {
	return t.minutes
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

// OperatingHours is the daily open/close window of a product. Close may fall
// before open, meaning the window wraps past midnight into the next day.
type OperatingHours struct {
	open  ClockTime
	close ClockTime
}

func NewOperatingHours(open, close string) (OperatingHours, error) {
	o, err := ParseClockTime(open)
	if err != nil {
		return OperatingHours{}, err
	}
	c, err := ParseClockTime(close)
	if err != nil {
		return OperatingHours{}, err
	}
	return OperatingHours{open: o, close: c}, nil
}

func (h OperatingHours) Open() ClockTime {
	return h.open
}

func (h OperatingHours) Close() ClockTime {
	return h.close
}

func (h OperatingHours) WrapsMidnight() bool {
	return h.open.Minutes() >= h.close.Minutes()
}
