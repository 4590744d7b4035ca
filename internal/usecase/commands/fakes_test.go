package commands

import (
	"context"
	"time"

	"ski-stays/internal/domain/auth"
	"ski-stays/internal/domain/booking"
	"ski-stays/internal/infra/payment"
	"ski-stays/internal/infra/upstream"
	"ski-stays/internal/pkg/cache"
	"ski-stays/internal/pkg/clock"
	"ski-stays/internal/pkg/obs"
	"ski-stays/internal/usecase/queries"
	"ski-stays/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)

func newTestCache() *cache.Cache {
	return cache.New(cache.NewMemoryStore(clock.NewMockClock(testNow)), "test:", 100*time.Millisecond, obs.NewTestMetrics())
}

// fakeUoW runs fn once against the mocked repositories, returning fn's error as-is.
type fakeUoW struct {
	bookings *MockBookingRepository
	access   *MockBookingAccessRepository
	sessions *MockSessionRepository
	calls    int
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{
		bookings: new(MockBookingRepository),
		access:   new(MockBookingAccessRepository),
		sessions: new(MockSessionRepository),
	}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.calls++
	return fn(ctx, u)
}

func (u *fakeUoW) Bookings() shared.BookingRepository           { return u.bookings }
func (u *fakeUoW) BookingAccess() shared.BookingAccessRepository { return u.access }
func (u *fakeUoW) Sessions() shared.SessionRepository            { return u.sessions }

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, bookingID string, status booking.Status, at time.Time) error {
	return m.Called(ctx, bookingID, status, at).Error(0)
}

type MockBookingAccessRepository struct {
	mock.Mock
}

func (m *MockBookingAccessRepository) Grant(ctx context.Context, bookingRowID uuid.UUID, email string, at time.Time) error {
	return m.Called(ctx, bookingRowID, email, at).Error(0)
}

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, s *auth.Session) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockBookingReadStore struct {
	mock.Mock
}

func (m *MockBookingReadStore) FindByBookingID(ctx context.Context, bookingID string) (*queries.BookingView, error) {
	args := m.Called(ctx, bookingID)
	v, _ := args.Get(0).(*queries.BookingView)
	return v, args.Error(1)
}

func (m *MockBookingReadStore) FindByPrebookID(ctx context.Context, prebookID string) (*queries.BookingView, error) {
	args := m.Called(ctx, prebookID)
	v, _ := args.Get(0).(*queries.BookingView)
	return v, args.Error(1)
}

func (m *MockBookingReadStore) List(ctx context.Context, after *queries.KeysetCursor, limit int) ([]queries.BookingView, error) {
	args := m.Called(ctx, after, limit)
	v, _ := args.Get(0).([]queries.BookingView)
	return v, args.Error(1)
}

func (m *MockBookingReadStore) Stats(ctx context.Context) (*queries.BookingStats, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).(*queries.BookingStats)
	return v, args.Error(1)
}

type MockBookingAccessStore struct {
	mock.Mock
}

func (m *MockBookingAccessStore) HasAccess(ctx context.Context, bookingID, email string) (bool, error) {
	args := m.Called(ctx, bookingID, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingAccessStore) RecordAccess(ctx context.Context, bookingID, email string, at time.Time) error {
	return m.Called(ctx, bookingID, email, at).Error(0)
}

type MockBookingProvider struct {
	mock.Mock
}

func (m *MockBookingProvider) Prebook(ctx context.Context, offerID string) (*upstream.Prebook, error) {
	args := m.Called(ctx, offerID)
	v, _ := args.Get(0).(*upstream.Prebook)
	return v, args.Error(1)
}

func (m *MockBookingProvider) Book(ctx context.Context, req upstream.BookRequest) (*upstream.Booking, error) {
	args := m.Called(ctx, req)
	v, _ := args.Get(0).(*upstream.Booking)
	return v, args.Error(1)
}

func (m *MockBookingProvider) CancelBooking(ctx context.Context, bookingID string) (*upstream.Cancellation, error) {
	args := m.Called(ctx, bookingID)
	v, _ := args.Get(0).(*upstream.Cancellation)
	return v, args.Error(1)
}

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateIntent(ctx context.Context, amount decimal.Decimal, currency string, metadata map[string]string) (*payment.Intent, error) {
	args := m.Called(ctx, amount, currency, metadata)
	v, _ := args.Get(0).(*payment.Intent)
	return v, args.Error(1)
}

func (m *MockPaymentGateway) GetIntent(ctx context.Context, id string) (*payment.Intent, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*payment.Intent)
	return v, args.Error(1)
}

type MockUserReadStore struct {
	mock.Mock
}

func (m *MockUserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*queries.AuthorizedUserView)
	return v, args.Error(1)
}

func (m *MockUserReadStore) FindCredentialByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	args := m.Called(ctx, email)
	v, _ := args.Get(0).(*queries.AuthorizedUserView)
	return v, args.String(1), args.Error(2)
}
