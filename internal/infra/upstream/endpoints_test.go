package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRates_PostsProviderBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/hotels/rates", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []any{"H1"}, body["hotelIds"])
		assert.Equal(t, "2025-12-10", body["checkin"])
		assert.Equal(t, "2025-12-13", body["checkout"])
		assert.Len(t, body["occupancies"], 2)

		_, _ = w.Write([]byte(`{"data":[{"hotelId":"H1","roomTypes":[]}]}`))
	})

	got, err := c.SearchRates(context.Background(), RatesRequest{
		HotelIDs:    []string{"H1"},
		Checkin:     "2025-12-10",
		Checkout:    "2025-12-13",
		Occupancies: []Occupancy{{Adults: 2, Children: []int{}}, {Adults: 2, Children: []int{}}},
		Currency:    "USD",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "H1", got[0].HotelID)
}

func TestBookingEndpoints_UseBookingBaseURL(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.Method+" "+r.URL.Path)
		mu.Unlock()
		switch {
		case r.URL.Path == "/book/rates/prebook":
			_, _ = w.Write([]byte(`{"data":{"prebookId":"PB1","offerId":"OF1","hotelId":"H1","price":450.1,"currency":"USD"}}`))
		case r.URL.Path == "/book/bookings/BK1" && r.Method == http.MethodPut:
			_, _ = w.Write([]byte(`{"data":{"bookingId":"BK1","status":"CANCELLED","refund_amount":450.1,"currency":"USD"}}`))
		case r.URL.Path == "/book/bookings/BK1":
			_, _ = w.Write([]byte(`{"data":{"bookingId":"BK1","status":"CONFIRMED","hotel":{"hotelId":"H1","name":"Lodge"}}}`))
		case r.URL.Path == "/book/bookings":
			assert.Equal(t, "ref-1", r.URL.Query().Get("clientReference"))
			_, _ = w.Write([]byte(`{"data":[{"bookingId":"BK1"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	pb, err := c.Prebook(ctx, "OF1")
	require.NoError(t, err)
	assert.Equal(t, "PB1", pb.PrebookID)
	assert.True(t, pb.Price.Equal(decimal.RequireFromString("450.1")))

	b, err := c.GetBooking(ctx, "BK1")
	require.NoError(t, err)
	assert.Equal(t, "Lodge", b.Hotel.Name)

	cancel, err := c.CancelBooking(ctx, "BK1")
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", cancel.Status)

	list, err := c.ListBookings(ctx, "ref-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = c.GetBooking(ctx, "missing")
	assert.True(t, IsNotFound(err))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"POST /book/rates/prebook",
		"GET /book/bookings/BK1",
		"PUT /book/bookings/BK1",
		"GET /book/bookings",
		"GET /book/bookings/missing",
	}, paths)
}

func TestSearchHotels_Query(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/hotels", r.URL.Path)
		assert.Equal(t, "US", r.URL.Query().Get("countryCode"))
		assert.Equal(t, "Park City", r.URL.Query().Get("cityName"))
		assert.Equal(t, "500", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"data":[{"id":"H1","name":"Lodge"},{"id":"H2","name":"Inn"}]}`))
	})

	hotels, err := c.SearchHotels(context.Background(), "US", "Park City", 500)
	require.NoError(t, err)
	require.Len(t, hotels, 2)
	assert.Equal(t, "H2", hotels[1].ID)
}
