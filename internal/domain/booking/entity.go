package booking

import (
	"errors"
	"time"

	"ski-stays/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrMissingBookingID  = errors.New("booking id is required")
	ErrMissingPrebookID  = errors.New("prebook id is required")
	ErrAlreadyCancelled  = errors.New("booking is already cancelled")
	ErrInvalidGuestEmail = errors.New("guest email is invalid")
)

// Booking is the local record of a confirmed provider booking.
type Booking struct {
	id              uuid.UUID
	userID          *uuid.UUID
	bookingID       string
	prebookID       string
	hotelID         string
	hotelName       string
	stay            Stay
	total           Money
	status          Status
	guestEmail      user.Email
	paymentIntentID string
	createdAt       time.Time
	updatedAt       time.Time
}

type NewParams struct {
	UserID          *uuid.UUID
	BookingID       string
	PrebookID       string
	HotelID         string
	HotelName       string
	Stay            Stay
	Total           Money
	Status          Status
	GuestEmail      string
	PaymentIntentID string
}

func New(p NewParams, now time.Time) (*Booking, error) {
	if p.BookingID == "" {
		return nil, ErrMissingBookingID
	}
	if p.PrebookID == "" {
		return nil, ErrMissingPrebookID
	}
	email, err := user.NewEmail(p.GuestEmail)
	if err != nil {
		return nil, ErrInvalidGuestEmail
	}
	status := p.Status
	if !status.IsValid() {
		status = StatusConfirmed
	}

	return &Booking{
		id:              uuid.New(),
		userID:          p.UserID,
		bookingID:       p.BookingID,
		prebookID:       p.PrebookID,
		hotelID:         p.HotelID,
		hotelName:       p.HotelName,
		stay:            p.Stay,
		total:           p.Total,
		status:          status,
		guestEmail:      email,
		paymentIntentID: p.PaymentIntentID,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	userID *uuid.UUID,
	bookingID, prebookID, hotelID, hotelName string,
	stay Stay,
	total Money,
	status Status,
	guestEmail user.Email,
	paymentIntentID string,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:              id,
		userID:          userID,
		bookingID:       bookingID,
		prebookID:       prebookID,
		hotelID:         hotelID,
		hotelName:       hotelName,
		stay:            stay,
		total:           total,
		status:          status,
		guestEmail:      guestEmail,
		paymentIntentID: paymentIntentID,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// Cancel moves a booking to cancelled. Cancelling twice is an error.
func (b *Booking) Cancel(now time.Time) error {
	if b.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	b.status = StatusCancelled
	b.updatedAt = now
	return nil
}

// CanBeAccessedBy reports whether email may view or manage this booking.
func (b *Booking) CanBeAccessedBy(email string) bool {
	return b.guestEmail.Matches(email)
}

func (b *Booking) ID() uuid.UUID           { return b.id }
func (b *Booking) UserID() *uuid.UUID      { return b.userID }
func (b *Booking) BookingID() string       { return b.bookingID }
func (b *Booking) PrebookID() string       { return b.prebookID }
func (b *Booking) HotelID() string         { return b.hotelID }
func (b *Booking) HotelName() string       { return b.hotelName }
func (b *Booking) Stay() Stay              { return b.stay }
func (b *Booking) Total() Money            { return b.total }
func (b *Booking) Status() Status          { return b.status }
func (b *Booking) GuestEmail() user.Email  { return b.guestEmail }
func (b *Booking) PaymentIntentID() string { return b.paymentIntentID }
func (b *Booking) CreatedAt() time.Time    { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time    { return b.updatedAt }
