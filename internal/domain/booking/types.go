package booking

import "strings"

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusPending   Status = "pending"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusPending:
		return true
	default:
		return false
	}
}

// ParseStatus maps provider status strings (CONFIRMED, CANCELLED, ...) onto stored statuses.
func ParseStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "confirmed", "ok":
		return StatusConfirmed
	case "cancelled", "canceled", "cancelled_with_charges":
		return StatusCancelled
	default:
		return StatusPending
	}
}

// Action is a guest-initiated change to an existing booking.
type Action string

const ActionCancel Action = "cancel"
