package repository

import (
	"context"
	"time"

	"ski-stays/internal/domain/booking"
	"ski-stays/internal/infra"
	"ski-stays/internal/infra/db"
	"ski-stays/internal/pkg/pgconv"
	"ski-stays/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

const bookingColumns = `id, user_id, booking_id, prebook_id, hotel_id, hotel_name, check_in, check_out,
total_amount::text, currency, status, guest_email, payment_intent_id, created_at, updated_at`

const (
	createBookingSQL = `
INSERT INTO user_bookings (
    id, user_id, booking_id, prebook_id, hotel_id, hotel_name, check_in, check_out,
    total_amount, currency, status, guest_email, payment_intent_id, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::text::numeric, $10, $11, $12, $13, $14, $15)`

	updateBookingStatusSQL = `UPDATE user_bookings SET status = $2, updated_at = $3 WHERE booking_id = $1`

	findBookingByBookingIDSQL = `SELECT ` + bookingColumns + ` FROM user_bookings WHERE booking_id = $1`

	findBookingByPrebookIDSQL = `SELECT ` + bookingColumns + ` FROM user_bookings WHERE prebook_id = $1`

	listBookingsSQL = `
SELECT ` + bookingColumns + `
FROM user_bookings
WHERE $1::timestamptz IS NULL OR (created_at, id) < ($1::timestamptz, $2::uuid)
ORDER BY created_at DESC, id DESC
LIMIT $3`

	bookingCountsSQL = `
SELECT count(*),
       count(*) FILTER (WHERE status = 'confirmed'),
       count(*) FILTER (WHERE status = 'cancelled'),
       count(*) FILTER (WHERE status = 'pending')
FROM user_bookings`

	bookingRevenueSQL = `
SELECT currency, sum(total_amount)::text
FROM user_bookings
WHERE status = 'confirmed'
GROUP BY currency
ORDER BY currency`
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	var paymentIntentID *string
	if id := b.PaymentIntentID(); id != "" {
		paymentIntentID = &id
	}

	_, err := r.db.Exec(ctx, createBookingSQL,
		b.ID(),
		pgconv.UUIDPtrToPgtype(b.UserID()),
		b.BookingID(),
		b.PrebookID(),
		b.HotelID(),
		b.HotelName(),
		b.Stay().CheckIn(),
		b.Stay().CheckOut(),
		pgconv.DecimalToText(b.Total().Amount()),
		b.Total().Currency(),
		b.Status().String(),
		b.GuestEmail().Value(),
		pgconv.StringPtrToPgtype(paymentIntentID),
		b.CreatedAt(),
		b.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, bookingID string, status booking.Status, at time.Time) error {
	tag, err := r.db.Exec(ctx, updateBookingStatusSQL, bookingID, status.String(), at)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) FindByBookingID(ctx context.Context, bookingID string) (*queries.BookingView, error) {
	v, err := scanBooking(r.db.QueryRow(ctx, findBookingByBookingIDSQL, bookingID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return v, nil
}

func (r *BookingRepository) FindByPrebookID(ctx context.Context, prebookID string) (*queries.BookingView, error) {
	v, err := scanBooking(r.db.QueryRow(ctx, findBookingByPrebookIDSQL, prebookID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking by prebook", err)
	}
	return v, nil
}

func (r *BookingRepository) List(ctx context.Context, after *queries.KeysetCursor, limit int) ([]queries.BookingView, error) {
	var (
		afterAt any
		afterID any
	)
	if after != nil {
		afterAt = after.CreatedAt
		afterID = after.ID
	}

	rows, err := r.db.Query(ctx, listBookingsSQL, afterAt, afterID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	views := make([]queries.BookingView, 0, limit)
	for rows.Next() {
		v, err := scanBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		views = append(views, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}
	return views, nil
}

func (r *BookingRepository) Stats(ctx context.Context) (*queries.BookingStats, error) {
	stats := &queries.BookingStats{Revenue: []queries.CurrencyAmount{}}
	err := r.db.QueryRow(ctx, bookingCountsSQL).Scan(
		&stats.TotalBookings, &stats.Confirmed, &stats.Cancelled, &stats.Pending,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count bookings", err)
	}

	rows, err := r.db.Query(ctx, bookingRevenueSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to sum revenue", err)
	}
	defer rows.Close()

	for rows.Next() {
		var currency, total string
		if err := rows.Scan(&currency, &total); err != nil {
			return nil, infra.WrapRepoErr("failed to scan revenue", err)
		}
		amount, err := pgconv.DecimalFromText(total)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to convert revenue", err)
		}
		stats.Revenue = append(stats.Revenue, queries.CurrencyAmount{Currency: currency, Amount: amount})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate revenue", err)
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*queries.BookingView, error) {
	var (
		v               queries.BookingView
		userID          pgtype.UUID
		total           string
		paymentIntentID pgtype.Text
	)
	err := row.Scan(
		&v.ID, &userID, &v.BookingID, &v.PrebookID, &v.HotelID, &v.HotelName, &v.CheckIn, &v.CheckOut,
		&total, &v.Currency, &v.Status, &v.GuestEmail, &paymentIntentID, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	amount, err := pgconv.DecimalFromText(total)
	if err != nil {
		return nil, err
	}
	v.TotalAmount = amount
	v.UserID = pgconv.UUIDPtrFromPgtype(userID)
	v.PaymentIntentID = pgconv.StringPtrFromPgtype(paymentIntentID)
	return &v, nil
}
