package response

import (
	"time"

	"ski-stays/internal/domain/rate"
	"ski-stays/internal/usecase/queries"

	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

// AdminBookingResponse is one row of the admin booking list.
type AdminBookingResponse struct {
	BookingID   string          `json:"bookingId"`
	PrebookID   string          `json:"prebookId"`
	HotelID     string          `json:"hotelId"`
	HotelName   string          `json:"hotelName"`
	CheckIn     string          `json:"checkIn" copier:"-"`
	CheckOut    string          `json:"checkOut" copier:"-"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Currency    string          `json:"currency"`
	Status      string          `json:"status"`
	GuestEmail  string          `json:"guestEmail"`
	Registered  bool            `json:"registered"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type AdminBookingListResponse struct {
	Items      []AdminBookingResponse `json:"items"`
	NextCursor string                 `json:"nextCursor,omitempty"`
}

func FromBookingPage(p *queries.BookingPage) *AdminBookingListResponse {
	items := make([]AdminBookingResponse, len(p.Items))
	for i := range p.Items {
		v := &p.Items[i]
		_ = copier.Copy(&items[i], v)
		items[i].CheckIn = v.CheckIn.Format(rate.DateLayout)
		items[i].CheckOut = v.CheckOut.Format(rate.DateLayout)
		items[i].Registered = v.UserID != nil
	}
	return &AdminBookingListResponse{Items: items, NextCursor: p.NextCursor}
}

type CurrencyAmountResponse struct {
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

type AdminStatsResponse struct {
	TotalBookings int64                    `json:"totalBookings"`
	Confirmed     int64                    `json:"confirmed"`
	Cancelled     int64                    `json:"cancelled"`
	Pending       int64                    `json:"pending"`
	Revenue       []CurrencyAmountResponse `json:"revenue"`
}

func FromBookingStats(s *queries.BookingStats) *AdminStatsResponse {
	res := AdminStatsResponse{Revenue: []CurrencyAmountResponse{}}
	_ = copier.Copy(&res, s)
	if res.Revenue == nil {
		res.Revenue = []CurrencyAmountResponse{}
	}
	return &res
}
