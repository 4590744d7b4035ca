package request

import (
	"strings"
	"time"

	"ski-stays/internal/domain/rate"
	"ski-stays/internal/usecase/queries"
)

// StayQuery holds the occupancy fields shared by every rate query string.
type StayQuery struct {
	CheckIn          time.Time `form:"checkIn" time_format:"2006-01-02" binding:"required"`
	CheckOut         time.Time `form:"checkOut" time_format:"2006-01-02" binding:"required,gtfield=CheckIn"`
	Adults           int       `form:"adults,default=2" binding:"min=1"`
	Children         int       `form:"children,default=0" binding:"min=0"`
	ChildAges        []int     `form:"childAges" binding:"omitempty,dive,min=0,max=17"`
	Rooms            int       `form:"rooms,default=1" binding:"min=1"`
	Margin           *float64  `form:"margin" binding:"omitempty,min=0,max=100"`
	Currency         string    `form:"currency" binding:"omitempty,len=3"`
	GuestNationality string    `form:"guestNationality" binding:"omitempty,len=2"`
}

func (q StayQuery) ToDomain(hotelIDs []string) rate.SearchRequest {
	return rate.SearchRequest{
		HotelIDs:         hotelIDs,
		CheckIn:          q.CheckIn,
		CheckOut:         q.CheckOut,
		Adults:           q.Adults,
		Children:         q.Children,
		ChildAges:        q.ChildAges,
		Rooms:            q.Rooms,
		Margin:           q.Margin,
		Currency:         q.Currency,
		GuestNationality: q.GuestNationality,
	}
}

type RatesQuery struct {
	HotelIDs string `form:"hotelIds" binding:"required"`
	StayQuery
}

func (q RatesQuery) ToDomain() rate.SearchRequest {
	return q.StayQuery.ToDomain(rate.ParseHotelIDs(q.HotelIDs))
}

// HotelSearchQuery searches the city directory. Without dates only the directory is returned.
type HotelSearchQuery struct {
	CountryCode      string   `form:"countryCode" binding:"omitempty,len=2"`
	City             string   `form:"city"`
	Limit            int      `form:"limit" binding:"omitempty,min=1,max=1000"`
	CheckIn          string   `form:"checkIn" binding:"omitempty,datetime=2006-01-02"`
	CheckOut         string   `form:"checkOut" binding:"omitempty,datetime=2006-01-02"`
	Adults           int      `form:"adults,default=2" binding:"min=1"`
	Children         int      `form:"children,default=0" binding:"min=0"`
	ChildAges        []int    `form:"childAges" binding:"omitempty,dive,min=0,max=17"`
	Rooms            int      `form:"rooms,default=1" binding:"min=1"`
	Margin           *float64 `form:"margin" binding:"omitempty,min=0,max=100"`
	Currency         string   `form:"currency" binding:"omitempty,len=3"`
	GuestNationality string   `form:"guestNationality" binding:"omitempty,len=2"`
}

func (q HotelSearchQuery) HasDates() bool {
	return strings.TrimSpace(q.CheckIn) != "" && strings.TrimSpace(q.CheckOut) != ""
}

func (q HotelSearchQuery) ToDomain() (queries.HotelSearchRequest, error) {
	checkIn, err := time.Parse(rate.DateLayout, q.CheckIn)
	if err != nil {
		return queries.HotelSearchRequest{}, rate.ErrInvalidStay
	}
	checkOut, err := time.Parse(rate.DateLayout, q.CheckOut)
	if err != nil {
		return queries.HotelSearchRequest{}, rate.ErrInvalidStay
	}
	return queries.HotelSearchRequest{
		CountryCode: q.CountryCode,
		City:        q.City,
		Stay: rate.SearchRequest{
			CheckIn:          checkIn,
			CheckOut:         checkOut,
			Adults:           q.Adults,
			Children:         q.Children,
			ChildAges:        q.ChildAges,
			Rooms:            q.Rooms,
			Margin:           q.Margin,
			Currency:         q.Currency,
			GuestNationality: q.GuestNationality,
		},
	}, nil
}

// StreamRatesRequest is the JSON body of the streaming rate search.
type StreamRatesRequest struct {
	HotelIDs         []string `json:"hotelIds" binding:"required,min=1"`
	CheckIn          string   `json:"checkIn" binding:"required,datetime=2006-01-02"`
	CheckOut         string   `json:"checkOut" binding:"required,datetime=2006-01-02"`
	Adults           int      `json:"adults" binding:"required,min=1"`
	Children         int      `json:"children" binding:"min=0"`
	ChildAges        []int    `json:"childAges" binding:"omitempty,dive,min=0,max=17"`
	Rooms            int      `json:"rooms" binding:"omitempty,min=1"`
	Margin           *float64 `json:"margin" binding:"omitempty,min=0,max=100"`
	Currency         string   `json:"currency" binding:"omitempty,len=3"`
	GuestNationality string   `json:"guestNationality" binding:"omitempty,len=2"`
}

func (r StreamRatesRequest) ToDomain() (rate.SearchRequest, error) {
	checkIn, err := time.Parse(rate.DateLayout, r.CheckIn)
	if err != nil {
		return rate.SearchRequest{}, rate.ErrInvalidStay
	}
	checkOut, err := time.Parse(rate.DateLayout, r.CheckOut)
	if err != nil {
		return rate.SearchRequest{}, rate.ErrInvalidStay
	}
	rooms := r.Rooms
	if rooms == 0 {
		rooms = 1
	}
	return rate.SearchRequest{
		HotelIDs:         r.HotelIDs,
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		Adults:           r.Adults,
		Children:         r.Children,
		ChildAges:        r.ChildAges,
		Rooms:            rooms,
		Margin:           r.Margin,
		Currency:         r.Currency,
		GuestNationality: r.GuestNationality,
	}, nil
}

type HotelDetailsQuery struct {
	HotelID string `form:"hotelId" binding:"required"`
}

type ReviewsQuery struct {
	HotelID string `form:"hotelId" binding:"required"`
	Limit   int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type AdminBookingsQuery struct {
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=200"`
}
