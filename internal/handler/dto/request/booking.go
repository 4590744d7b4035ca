package request

import (
	"strings"

	"ski-stays/internal/domain/booking"
)

type PrebookRequest struct {
	OfferID string `json:"offerId" binding:"required"`
}

type HolderRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
}

type GuestRequest struct {
	OccupancyNumber int    `json:"occupancyNumber" binding:"omitempty,min=1"`
	FirstName       string `json:"firstName" binding:"required"`
	LastName        string `json:"lastName" binding:"required"`
	Email           string `json:"email" binding:"omitempty,email"`
}

type ConfirmBookingRequest struct {
	PrebookID       string         `json:"prebookId" binding:"required"`
	PaymentIntentID string         `json:"paymentIntentId" binding:"required"`
	Holder          HolderRequest  `json:"holder" binding:"required"`
	Guests          []GuestRequest `json:"guests" binding:"omitempty,dive"`
}

// HolderGuest returns the lead guest named on the booking.
func (r ConfirmBookingRequest) HolderGuest() booking.Guest {
	return booking.Guest{
		FirstName: strings.TrimSpace(r.Holder.FirstName),
		LastName:  strings.TrimSpace(r.Holder.LastName),
		Email:     strings.TrimSpace(r.Holder.Email),
		Phone:     strings.TrimSpace(r.Holder.Phone),
	}
}

type LookupBookingRequest struct {
	BookingID string `json:"bookingId" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
}

type ManageBookingRequest struct {
	BookingID string `json:"bookingId" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Action    string `json:"action" binding:"required"`
}

func (r ManageBookingRequest) ToAction() booking.Action {
	return booking.Action(strings.ToLower(strings.TrimSpace(r.Action)))
}
