package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Read models (DTO for read side)

type AuthorizedUserView struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

type SessionView struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// BookingView is a stored user_bookings row.
type BookingView struct {
	ID              uuid.UUID       `json:"id"`
	UserID          *uuid.UUID      `json:"user_id,omitempty"`
	BookingID       string          `json:"booking_id"`
	PrebookID       string          `json:"prebook_id"`
	HotelID         string          `json:"hotel_id"`
	HotelName       string          `json:"hotel_name"`
	CheckIn         time.Time       `json:"check_in"`
	CheckOut        time.Time       `json:"check_out"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Currency        string          `json:"currency"`
	Status          string          `json:"status"`
	GuestEmail      string          `json:"guest_email"`
	PaymentIntentID *string         `json:"payment_intent_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type CurrencyAmount struct {
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

type BookingStats struct {
	TotalBookings int64            `json:"total_bookings"`
	Confirmed     int64            `json:"confirmed"`
	Cancelled     int64            `json:"cancelled"`
	Pending       int64            `json:"pending"`
	Revenue       []CurrencyAmount `json:"revenue"`
}

// KeysetCursor positions a created_at DESC, id DESC scan.
type KeysetCursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}
