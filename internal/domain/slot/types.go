package slot

import "errors"

var ErrInvalidStatus = errors.New("invalid slot status")

type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusBooked    Status = "BOOKED"
	StatusBlocked   Status = "BLOCKED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusBooked, StatusBlocked:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// CanSetManually reports whether an administrator may hand-set this status.
// BOOKED is only ever reached through the reservation protocol.
func (s Status) CanSetManually() bool {
	return s == StatusAvailable || s == StatusBlocked
}
