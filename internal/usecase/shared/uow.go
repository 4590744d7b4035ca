package shared

import (
	"context"
	"time"

	"ski-stays/internal/domain/auth"
	"ski-stays/internal/domain/booking"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within runs fn in a read-committed transaction, retrying serialization failures and deadlocks.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
	BookingAccess() BookingAccessRepository
	Sessions() SessionRepository
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	UpdateStatus(ctx context.Context, bookingID string, status booking.Status, at time.Time) error
}

type BookingAccessRepository interface {
	// Grant is a no-op when email already has access to the booking row.
	Grant(ctx context.Context, bookingRowID uuid.UUID, email string, at time.Time) error
}

type SessionRepository interface {
	Create(ctx context.Context, s *auth.Session) error
	Delete(ctx context.Context, id uuid.UUID) error
}
