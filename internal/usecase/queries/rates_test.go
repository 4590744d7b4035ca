package queries

import (
	"context"
	"sync"
	"testing"

	"ski-stays/internal/infra/upstream"
	"ski-stays/internal/pkg/errs"
	"ski-stays/internal/pkg/obs"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRateQueries(provider RateProvider, directory HotelDirectory, m *obs.Metrics) *rateQueriesImpl {
	cfg := testConfig()
	c := newTestCache()
	hotels := NewHotelQueries(directory, c, cfg)
	return NewRateQueries(provider, hotels, c, cfg, m).(*rateQueriesImpl)
}

func TestSearchRates_BuildsProviderBody(t *testing.T) {
	provider := new(MockRateProvider)
	req := stayRequest("h1", "h2")
	req.Rooms = 2
	req.Children = 2
	req.ChildAges = []int{5}

	provider.On("SearchRates", mock.Anything, mock.MatchedBy(func(body upstream.RatesRequest) bool {
		return assert.ObjectsAreEqual([]string{"h1", "h2"}, body.HotelIDs) &&
			body.Checkin == "2025-12-10" &&
			body.Checkout == "2025-12-13" &&
			len(body.Occupancies) == 2 &&
			body.Occupancies[1].Adults == 2 &&
			assert.ObjectsAreEqual([]int{5, defaultChildAge}, body.Occupancies[1].Children) &&
			body.Currency == "USD" &&
			body.GuestNationality == "US" &&
			body.Margin != nil && *body.Margin == 15
	})).Return([]upstream.HotelRates{}, nil).Once()

	q := newRateQueries(provider, new(MockHotelDirectory), obs.NewTestMetrics())
	res, err := q.SearchRates(context.Background(), req)

	require.NoError(t, err)
	assert.False(t, res.Degraded)
	assert.Empty(t, res.Hotels)
	provider.AssertExpectations(t)
}

func TestSearchRates_NormalizesPerHotel(t *testing.T) {
	provider := new(MockRateProvider)
	provider.On("SearchRates", mock.Anything, mock.Anything).Return([]upstream.HotelRates{
		hotelRates("h1", rawRate("r1", "300"), rawRate("r2", "0"), []byte(`{"rateId":"bad","retailRate":7}`)),
		hotelRates("h2", rawRate("r3", "150")),
	}, nil).Once()

	m := obs.NewTestMetrics()
	q := newRateQueries(provider, new(MockHotelDirectory), m)
	res, err := q.SearchRates(context.Background(), stayRequest("h1", "h2"))

	require.NoError(t, err)
	require.Len(t, res.Hotels, 2)
	assert.Equal(t, "h1", res.Hotels[0].HotelID)
	require.Len(t, res.Hotels[0].Rates, 1)
	assert.True(t, decimal.NewFromInt(100).Equal(res.Hotels[0].Rates[0].PerNightAmount))
	assert.Equal(t, "h2", res.Hotels[1].HotelID)
	assert.True(t, decimal.NewFromInt(50).Equal(res.Hotels[1].Rates[0].PerNightAmount))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RatesSkippedTotal))
}

func TestSearchRates_CachesProviderResponse(t *testing.T) {
	provider := new(MockRateProvider)
	provider.On("SearchRates", mock.Anything, mock.Anything).
		Return([]upstream.HotelRates{hotelRates("h1", rawRate("r1", "300"))}, nil).Once()

	q := newRateQueries(provider, new(MockHotelDirectory), obs.NewTestMetrics())
	for range 3 {
		res, err := q.SearchRates(context.Background(), stayRequest("h1"))
		require.NoError(t, err)
		require.Len(t, res.Hotels, 1)
	}
	provider.AssertNumberOfCalls(t, "SearchRates", 1)
}

func TestSearchRates_DegradesOnProviderFailure(t *testing.T) {
	provider := new(MockRateProvider)
	provider.On("SearchRates", mock.Anything, mock.Anything).
		Return(nil, &upstream.APIError{Status: 503, Code: "UNAVAILABLE", Message: "down"})

	m := obs.NewTestMetrics()
	q := newRateQueries(provider, new(MockHotelDirectory), m)
	res, err := q.SearchRates(context.Background(), stayRequest("h1"))

	require.NoError(t, err)
	assert.True(t, res.Degraded)
	assert.NotNil(t, res.Hotels)
	assert.Empty(t, res.Hotels)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.DegradedSearchesTotal))
}

func TestSearchRates_RejectsInvalidRequest(t *testing.T) {
	q := newRateQueries(new(MockRateProvider), new(MockHotelDirectory), obs.NewTestMetrics())

	req := stayRequest("h1")
	req.CheckOut = req.CheckIn
	_, err := q.SearchRates(context.Background(), req)
	assert.True(t, errs.Is(err, errs.ErrDomainValidation))

	_, err = q.SearchRates(context.Background(), stayRequest())
	assert.True(t, errs.Is(err, errs.ErrDomainValidation))
}

func TestSearchHotelsWithRates(t *testing.T) {
	provider := new(MockRateProvider)
	directory := new(MockHotelDirectory)

	directory.On("SearchHotels", mock.Anything, "US", "Park City", 500).Return([]upstream.Hotel{
		{ID: "h1", Name: "One"}, {ID: "h2", Name: "Two"}, {ID: "h3", Name: "Three"}, {ID: "h4", Name: "Four"},
	}, nil)
	provider.On("SearchRates", mock.Anything, mock.MatchedBy(func(body upstream.RatesRequest) bool {
		return assert.ObjectsAreEqual([]string{"h1", "h2", "h3", "h4"}, body.HotelIDs)
	})).Return([]upstream.HotelRates{
		hotelRates("h3", rawRate("r3", "90")),
		hotelRates("h1", rawRate("r1", "300"), rawRate("r1b", "240")),
		hotelRates("h2", rawRate("r2", "600")),
		hotelRates("h4"),
	}, nil).Once()
	directory.On("GetHotel", mock.Anything, "h1").Return(&upstream.HotelDetail{ID: "h1", Name: "One"}, nil)
	directory.On("GetHotel", mock.Anything, "h2").Return(nil, &upstream.APIError{Status: 500, Message: "boom"})
	directory.On("GetHotel", mock.Anything, "h3").Return(&upstream.HotelDetail{ID: "h3", Name: "Three"}, nil)

	m := obs.NewTestMetrics()
	q := newRateQueries(provider, directory, m)
	res, err := q.SearchHotelsWithRates(context.Background(), HotelSearchRequest{Stay: stayRequest()})

	require.NoError(t, err)
	assert.False(t, res.Degraded)
	require.Len(t, res.Hotels, 2)
	assert.Equal(t, "h1", res.Hotels[0].ID)
	assert.Equal(t, "h3", res.Hotels[1].ID)
	require.Len(t, res.MinPrices, 2)
	assert.True(t, decimal.NewFromInt(80).Equal(res.MinPrices["h1"].Amount))
	assert.True(t, decimal.NewFromInt(30).Equal(res.MinPrices["h3"].Amount))
	assert.Equal(t, "USD", res.MinPrices["h1"].Currency)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HotelsDroppedTotal))
	directory.AssertNotCalled(t, "GetHotel", mock.Anything, "h4")
}

func TestSearchHotelsWithRates_EmptyDirectorySkipsRateCall(t *testing.T) {
	provider := new(MockRateProvider)
	directory := new(MockHotelDirectory)
	directory.On("SearchHotels", mock.Anything, "US", "Nowhere", 500).Return([]upstream.Hotel{}, nil)

	q := newRateQueries(provider, directory, obs.NewTestMetrics())
	res, err := q.SearchHotelsWithRates(context.Background(), HotelSearchRequest{City: "Nowhere", Stay: stayRequest()})

	require.NoError(t, err)
	assert.Empty(t, res.Hotels)
	assert.NotNil(t, res.MinPrices)
	assert.Empty(t, res.MinPrices)
	provider.AssertNotCalled(t, "SearchRates", mock.Anything, mock.Anything)
}

func TestSearchHotelsWithRates_DegradedRates(t *testing.T) {
	provider := new(MockRateProvider)
	directory := new(MockHotelDirectory)
	directory.On("SearchHotels", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]upstream.Hotel{{ID: "h1"}}, nil)
	provider.On("SearchRates", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	q := newRateQueries(provider, directory, obs.NewTestMetrics())
	res, err := q.SearchHotelsWithRates(context.Background(), HotelSearchRequest{Stay: stayRequest()})

	require.NoError(t, err)
	assert.True(t, res.Degraded)
	assert.Empty(t, res.Hotels)
}

func TestStreamRates(t *testing.T) {
	provider := new(MockRateProvider)
	var (
		mu    sync.Mutex
		calls [][]string
	)
	provider.On("SearchRates", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			mu.Lock()
			defer mu.Unlock()
			calls = append(calls, args.Get(1).(upstream.RatesRequest).HotelIDs)
		}).
		Return([]upstream.HotelRates{hotelRates("any", rawRate("r", "30"))}, nil)

	q := newRateQueries(provider, new(MockHotelDirectory), obs.NewTestMetrics())
	ch, err := q.StreamRates(context.Background(), stayRequest("h1", "h2", "h3", "h4", "h5"))
	require.NoError(t, err)

	seen := map[int]bool{}
	for chunk := range ch {
		assert.False(t, chunk.Degraded)
		assert.Len(t, chunk.Hotels, 1)
		seen[chunk.Index] = true
	}

	assert.Equal(t, map[int]bool{0: true, 1: true, 2: true}, seen)
	assert.ElementsMatch(t, [][]string{{"h1", "h2"}, {"h3", "h4"}, {"h5"}}, calls)
}

func TestStreamRates_StopsOnCancel(t *testing.T) {
	provider := new(MockRateProvider)
	provider.On("SearchRates", mock.Anything, mock.Anything).
		Return([]upstream.HotelRates{hotelRates("any", rawRate("r", "30"))}, nil)

	q := newRateQueries(provider, new(MockHotelDirectory), obs.NewTestMetrics())
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := q.StreamRates(ctx, stayRequest("h1", "h2", "h3", "h4", "h5", "h6"))
	require.NoError(t, err)

	<-ch
	cancel()
	for range ch {
	}
}

func TestChunkIDs(t *testing.T) {
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, chunkIDs([]string{"a", "b", "c"}, 2))
	assert.Equal(t, [][]string{{"a", "b", "c"}}, chunkIDs([]string{"a", "b", "c"}, 0))
	assert.Empty(t, chunkIDs(nil, 3))
}
