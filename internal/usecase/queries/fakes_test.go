package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ski-stays/internal/domain/rate"
	"ski-stays/internal/infra/upstream"
	"ski-stays/internal/pkg/cache"
	"ski-stays/internal/pkg/clock"
	"ski-stays/internal/pkg/config"
	"ski-stays/internal/pkg/obs"

	"github.com/stretchr/testify/mock"
)

type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) SearchRates(ctx context.Context, req upstream.RatesRequest) ([]upstream.HotelRates, error) {
	args := m.Called(ctx, req)
	rates, _ := args.Get(0).([]upstream.HotelRates)
	return rates, args.Error(1)
}

type MockHotelDirectory struct {
	mock.Mock
}

func (m *MockHotelDirectory) SearchHotels(ctx context.Context, countryCode, city string, limit int) ([]upstream.Hotel, error) {
	args := m.Called(ctx, countryCode, city, limit)
	hotels, _ := args.Get(0).([]upstream.Hotel)
	return hotels, args.Error(1)
}

func (m *MockHotelDirectory) GetHotel(ctx context.Context, hotelID string) (*upstream.HotelDetail, error) {
	args := m.Called(ctx, hotelID)
	d, _ := args.Get(0).(*upstream.HotelDetail)
	return d, args.Error(1)
}

func (m *MockHotelDirectory) GetReviews(ctx context.Context, hotelID string, limit int) ([]upstream.Review, error) {
	args := m.Called(ctx, hotelID, limit)
	r, _ := args.Get(0).([]upstream.Review)
	return r, args.Error(1)
}

var testNow = time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)

func newTestCache() *cache.Cache {
	return cache.New(cache.NewMemoryStore(clock.NewMockClock(testNow)), "test:", 100*time.Millisecond, obs.NewTestMetrics())
}

func stayRequest(hotelIDs ...string) rate.SearchRequest {
	return rate.SearchRequest{
		HotelIDs: hotelIDs,
		CheckIn:  time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2025, 12, 13, 0, 0, 0, 0, time.UTC),
		Adults:   2,
		Rooms:    1,
	}
}

// rawRate renders one provider rate with a total price.
func rawRate(id, total string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{
		"rateId": %q,
		"name": "Deluxe King",
		"boardType": "RO",
		"maxOccupancy": 2,
		"retailRate": {"total": {"amount": %s, "currency": "USD"}},
		"cancellationPolicies": {"refundableTag": "RFN"}
	}`, id, total))
}

func hotelRates(hotelID string, rates ...json.RawMessage) upstream.HotelRates {
	return upstream.HotelRates{
		HotelID: hotelID,
		RoomTypes: []upstream.RoomType{
			{RoomTypeID: hotelID + "-rt", OfferID: hotelID + "-offer", Rates: rates},
		},
	}
}

func testConfig() config.Config {
	return config.NewTestConfig()
}

type MockBookingReadStore struct {
	mock.Mock
}

func (m *MockBookingReadStore) FindByBookingID(ctx context.Context, bookingID string) (*BookingView, error) {
	args := m.Called(ctx, bookingID)
	v, _ := args.Get(0).(*BookingView)
	return v, args.Error(1)
}

func (m *MockBookingReadStore) FindByPrebookID(ctx context.Context, prebookID string) (*BookingView, error) {
	args := m.Called(ctx, prebookID)
	v, _ := args.Get(0).(*BookingView)
	return v, args.Error(1)
}

func (m *MockBookingReadStore) List(ctx context.Context, after *KeysetCursor, limit int) ([]BookingView, error) {
	args := m.Called(ctx, after, limit)
	v, _ := args.Get(0).([]BookingView)
	return v, args.Error(1)
}

func (m *MockBookingReadStore) Stats(ctx context.Context) (*BookingStats, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).(*BookingStats)
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
	args := m.Called(ctx, bookingID, email, at)
	return args.Error(0)
}

type MockBookingProvider struct {
	mock.Mock
}

func (m *MockBookingProvider) GetBooking(ctx context.Context, bookingID string) (*upstream.Booking, error) {
	args := m.Called(ctx, bookingID)
	v, _ := args.Get(0).(*upstream.Booking)
	return v, args.Error(1)
}
