package builder

import (
	"time"

	reqdto "ski-stays/internal/handler/dto/request"
	"ski-stays/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingBuilder struct {
	BookingID       string
	PrebookID       string
	PaymentIntentID string
	HotelID         string
	HotelName       string
	GuestEmail      string
	Total           string
	Currency        string
	Status          string
	CreatedAt       time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		BookingID:       "BK1",
		PrebookID:       "PB1",
		PaymentIntentID: "pi_1",
		HotelID:         "lp1",
		HotelName:       "Powder Lodge",
		GuestEmail:      "guest@example.com",
		Total:           "450.00",
		Currency:        "USD",
		Status:          "confirmed",
		CreatedAt:       time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildConfirmDTO() reqdto.ConfirmBookingRequest {
	return reqdto.ConfirmBookingRequest{
		PrebookID:       b.PrebookID,
		PaymentIntentID: b.PaymentIntentID,
		Holder: reqdto.HolderRequest{
			FirstName: "Ada",
			LastName:  "Skier",
			Email:     b.GuestEmail,
		},
		Guests: []reqdto.GuestRequest{
			{OccupancyNumber: 1, FirstName: "Ada", LastName: "Skier", Email: b.GuestEmail},
		},
	}
}

func (b *BookingBuilder) BuildLookupDTO() reqdto.LookupBookingRequest {
	return reqdto.LookupBookingRequest{BookingID: b.BookingID, Email: b.GuestEmail}
}

func (b *BookingBuilder) BuildManageDTO() reqdto.ManageBookingRequest {
	return reqdto.ManageBookingRequest{BookingID: b.BookingID, Email: b.GuestEmail, Action: "cancel"}
}

func (b *BookingBuilder) BuildView() queries.BookingView {
	return queries.BookingView{
		ID:          uuid.New(),
		BookingID:   b.BookingID,
		PrebookID:   b.PrebookID,
		HotelID:     b.HotelID,
		HotelName:   b.HotelName,
		CheckIn:     time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:    time.Date(2025, 12, 13, 0, 0, 0, 0, time.UTC),
		TotalAmount: decimal.RequireFromString(b.Total),
		Currency:    b.Currency,
		Status:      b.Status,
		GuestEmail:  b.GuestEmail,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.CreatedAt,
	}
}
