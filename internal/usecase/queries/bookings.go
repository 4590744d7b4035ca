package queries

import (
	"context"
	"log/slog"
	"time"

	"ski-stays/internal/domain/booking"
	"ski-stays/internal/domain/rate"
	"ski-stays/internal/infra"
	"ski-stays/internal/infra/upstream"
	"ski-stays/internal/pkg/clock"
	"ski-stays/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	SourceUpstream = "upstream"
	SourceLocal    = "local"
)

// BookingDetailView is what a guest sees when looking up a booking.
type BookingDetailView struct {
	BookingID             string                    `json:"bookingId"`
	Status                string                    `json:"status"`
	HotelID               string                    `json:"hotelId"`
	HotelName             string                    `json:"hotelName"`
	CheckIn               string                    `json:"checkIn"`
	CheckOut              string                    `json:"checkOut"`
	TotalAmount           decimal.Decimal           `json:"totalAmount"`
	Currency              string                    `json:"currency"`
	GuestEmail            string                    `json:"guestEmail"`
	HotelConfirmationCode string                    `json:"hotelConfirmationCode,omitempty"`
	CancellationPolicies  []rate.CancellationPolicy `json:"cancellationPolicies"`
	Source                string                    `json:"source"`
}

type BookingPage struct {
	Items      []BookingView `json:"items"`
	NextCursor string        `json:"nextCursor,omitempty"`
}

type BookingQueries interface {
	Lookup(ctx context.Context, bookingID, email string) (*BookingDetailView, error)
	AdminStats(ctx context.Context) (*BookingStats, error)
	AdminBookings(ctx context.Context, cursor string, limit int) (*BookingPage, error)
}

type BookingReadStore interface {
	FindByBookingID(ctx context.Context, bookingID string) (*BookingView, error)
	FindByPrebookID(ctx context.Context, prebookID string) (*BookingView, error)
	List(ctx context.Context, after *KeysetCursor, limit int) ([]BookingView, error)
	Stats(ctx context.Context) (*BookingStats, error)
}

type BookingAccessStore interface {
	HasAccess(ctx context.Context, bookingID, email string) (bool, error)
	RecordAccess(ctx context.Context, bookingID, email string, at time.Time) error
}

type BookingProvider interface {
	GetBooking(ctx context.Context, bookingID string) (*upstream.Booking, error)
}

type bookingQueriesImpl struct {
	bookings BookingReadStore
	access   BookingAccessStore
	provider BookingProvider
	clock    clock.Clock
}

func NewBookingQueries(bookings BookingReadStore, access BookingAccessStore, provider BookingProvider, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{
		bookings: bookings,
		access:   access,
		provider: provider,
		clock:    clk,
	}
}

func (q *bookingQueriesImpl) Lookup(ctx context.Context, bookingID, email string) (*BookingDetailView, error) {
	stored, err := q.authorize(ctx, bookingID, email)
	if err != nil {
		return nil, err
	}

	if err := q.access.RecordAccess(ctx, bookingID, email, q.clock.Now()); err != nil {
		slog.Warn("failed to record booking access", "booking_id", bookingID, "error", err.Error())
	}

	remote, err := q.provider.GetBooking(ctx, bookingID)
	if err != nil {
		if upstream.IsNotFound(err) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		slog.Warn("serving stored booking, provider lookup failed", "booking_id", bookingID, "error", err.Error())
		return fromStoredBooking(stored), nil
	}
	return fromProviderBooking(remote, stored), nil
}

// authorize returns the stored booking when email was granted access to it.
func (q *bookingQueriesImpl) authorize(ctx context.Context, bookingID, email string) (*BookingView, error) {
	stored, err := q.bookings.FindByBookingID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	ok, err := q.access.HasAccess(ctx, bookingID, email)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !ok {
		return nil, errs.ErrBookingAccessDenied
	}
	return stored, nil
}

func (q *bookingQueriesImpl) AdminStats(ctx context.Context) (*BookingStats, error) {
	stats, err := q.bookings.Stats(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return stats, nil
}

func (q *bookingQueriesImpl) AdminBookings(ctx context.Context, cursor string, limit int) (*BookingPage, error) {
	after, err := DecodeAfterCursor(cursor)
	if err != nil {
		return nil, err
	}
	limit = ValidateLimit(limit)

	// one extra row tells whether another page exists
	rows, err := q.bookings.List(ctx, after, limit+1)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	page := &BookingPage{Items: rows}
	if len(rows) > limit {
		page.Items = rows[:limit]
		last := page.Items[limit-1]
		page.NextCursor = EncodeAfterCursor(last.CreatedAt, last.ID)
	}
	return page, nil
}

func fromStoredBooking(b *BookingView) *BookingDetailView {
	return &BookingDetailView{
		BookingID:            b.BookingID,
		Status:               b.Status,
		HotelID:              b.HotelID,
		HotelName:            b.HotelName,
		CheckIn:              b.CheckIn.Format(rate.DateLayout),
		CheckOut:             b.CheckOut.Format(rate.DateLayout),
		TotalAmount:          b.TotalAmount,
		Currency:             b.Currency,
		GuestEmail:           b.GuestEmail,
		CancellationPolicies: []rate.CancellationPolicy{},
		Source:               SourceLocal,
	}
}

func fromProviderBooking(r *upstream.Booking, stored *BookingView) *BookingDetailView {
	v := fromStoredBooking(stored)
	v.Status = booking.ParseStatus(r.Status).String()
	v.HotelConfirmationCode = r.HotelConfirmationCode
	v.CancellationPolicies = rate.NormalizeCancellation(r.CancellationPolicies.ToDomain())
	v.Source = SourceUpstream
	if r.Hotel.Name != "" {
		v.HotelName = r.Hotel.Name
	}
	if r.Checkin != "" {
		v.CheckIn = r.Checkin
	}
	if r.Checkout != "" {
		v.CheckOut = r.Checkout
	}
	if r.Price.IsPositive() {
		v.TotalAmount = r.Price
		v.Currency = r.Currency
	}
	return v
}
