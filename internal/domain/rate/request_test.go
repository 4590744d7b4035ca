package rate_test

import (
	"testing"
	"time"

	"ski-stays/internal/domain/rate"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	d, _ := rate.ParseDate(s)
	return d
}

func TestSearchRequest_Validate(t *testing.T) {
	margin := 120.0
	base := rate.SearchRequest{
		HotelIDs: []string{"H1"},
		CheckIn:  date("2025-12-10"),
		CheckOut: date("2025-12-13"),
		Adults:   2,
		Rooms:    1,
	}

	cases := []struct {
		name   string
		mutate func(r *rate.SearchRequest)
		errIs  error
	}{
		{name: "valid", mutate: func(*rate.SearchRequest) {}},
		{name: "no hotels", mutate: func(r *rate.SearchRequest) { r.HotelIDs = nil }, errIs: rate.ErrNoHotels},
		{name: "same day", mutate: func(r *rate.SearchRequest) { r.CheckOut = r.CheckIn }, errIs: rate.ErrInvalidStay},
		{name: "reversed", mutate: func(r *rate.SearchRequest) { r.CheckIn, r.CheckOut = r.CheckOut, r.CheckIn }, errIs: rate.ErrInvalidStay},
		{name: "no adults", mutate: func(r *rate.SearchRequest) { r.Adults = 0 }, errIs: rate.ErrInvalidOccupant},
		{name: "no rooms", mutate: func(r *rate.SearchRequest) { r.Rooms = 0 }, errIs: rate.ErrInvalidRooms},
		{name: "margin too high", mutate: func(r *rate.SearchRequest) { r.Margin = &margin }, errIs: rate.ErrInvalidMargin},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := base
			c.mutate(&r)
			err := r.Validate()
			if c.errIs == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, c.errIs)
			}
		})
	}
}

func TestNights(t *testing.T) {
	assert.Equal(t, 3, rate.Nights(date("2025-12-10"), date("2025-12-13")))
	assert.Equal(t, 0, rate.Nights(date("2025-12-13"), date("2025-12-10")))
	// a partial day counts as a night
	assert.Equal(t, 2, rate.Nights(date("2025-12-10"), date("2025-12-11").Add(3*time.Hour)))
}

func TestParseHotelIDs(t *testing.T) {
	assert.Equal(t, []string{"H1", "H2"}, rate.ParseHotelIDs(" H1, ,H2,"))
	assert.Empty(t, rate.ParseHotelIDs(""))
}
