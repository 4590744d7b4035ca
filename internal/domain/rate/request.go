package rate

import (
	"errors"
	"math"
	"strings"
	"time"
)

var (
	ErrNoHotels        = errors.New("at least one hotel id is required")
	ErrInvalidStay     = errors.New("check-out must be after check-in")
	ErrInvalidOccupant = errors.New("adults must be at least 1 and children at least 0")
	ErrInvalidRooms    = errors.New("rooms must be at least 1")
	ErrInvalidMargin   = errors.New("margin must be between 0 and 100")
)

const DateLayout = "2006-01-02"

// SearchRequest describes one stay to price across a set of hotels.
type SearchRequest struct {
	HotelIDs         []string
	CheckIn          time.Time
	CheckOut         time.Time
	Adults           int
	Children         int
	ChildAges        []int
	Rooms            int
	Margin           *float64
	Currency         string
	GuestNationality string
}

func (r SearchRequest) Validate() error {
	if len(r.HotelIDs) == 0 {
		return ErrNoHotels
	}
	return r.ValidateStay()
}

// ValidateStay checks everything except the hotel list, which directory searches fill in later.
func (r SearchRequest) ValidateStay() error {
	if !r.CheckOut.After(r.CheckIn) {
		return ErrInvalidStay
	}
	if r.Adults < 1 || r.Children < 0 {
		return ErrInvalidOccupant
	}
	if r.Rooms < 1 {
		return ErrInvalidRooms
	}
	if r.Margin != nil && (*r.Margin < 0 || *r.Margin > 100) {
		return ErrInvalidMargin
	}
	return nil
}

// Nights is the ceiling of the day difference between check-in and check-out.
func (r SearchRequest) Nights() int {
	return Nights(r.CheckIn, r.CheckOut)
}

func Nights(checkIn, checkOut time.Time) int {
	d := checkOut.Sub(checkIn)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Hours() / 24))
}

// WithHotels returns a copy of r priced against ids.
func (r SearchRequest) WithHotels(ids []string) SearchRequest {
	r.HotelIDs = ids
	return r
}

// ParseHotelIDs splits a comma separated id list, dropping blanks.
func ParseHotelIDs(s string) []string {
	var ids []string
	for _, part := range strings.Split(s, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
