package repository

import (
	"context"
	"strings"
	"time"

	"ski-stays/internal/infra"
	"ski-stays/internal/infra/db"

	"github.com/google/uuid"
)

const (
	grantBookingAccessSQL = `
INSERT INTO booking_access (id, booking_id, email, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (booking_id, email) DO NOTHING`

	hasBookingAccessSQL = `
SELECT EXISTS (
    SELECT 1
    FROM booking_access a
    JOIN user_bookings b ON b.id = a.booking_id
    WHERE b.booking_id = $1 AND a.email = $2
)`

	recordBookingAccessSQL = `
UPDATE booking_access a
SET last_accessed_at = $3
FROM user_bookings b
WHERE b.id = a.booking_id AND b.booking_id = $1 AND a.email = $2`
)

// BookingAccessRepository stores emails lowercased so lookups are case-insensitive.
type BookingAccessRepository struct {
	db db.DBTX
}

func NewBookingAccessRepository(dbtx db.DBTX) *BookingAccessRepository {
	return &BookingAccessRepository{db: dbtx}
}

func (r *BookingAccessRepository) Grant(ctx context.Context, bookingRowID uuid.UUID, email string, at time.Time) error {
	if _, err := r.db.Exec(ctx, grantBookingAccessSQL, uuid.New(), bookingRowID, normalizeEmail(email), at); err != nil {
		return infra.WrapRepoErr("failed to grant booking access", err)
	}
	return nil
}

func (r *BookingAccessRepository) HasAccess(ctx context.Context, bookingID, email string) (bool, error) {
	var ok bool
	if err := r.db.QueryRow(ctx, hasBookingAccessSQL, bookingID, normalizeEmail(email)).Scan(&ok); err != nil {
		return false, infra.WrapRepoErr("failed to check booking access", err)
	}
	return ok, nil
}

func (r *BookingAccessRepository) RecordAccess(ctx context.Context, bookingID, email string, at time.Time) error {
	if _, err := r.db.Exec(ctx, recordBookingAccessSQL, bookingID, normalizeEmail(email), at); err != nil {
		return infra.WrapRepoErr("failed to record booking access", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
