package queries

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"ski-stays/internal/domain/rate"
	"ski-stays/internal/infra/upstream"
	"ski-stays/internal/pkg/cache"
	"ski-stays/internal/pkg/config"
	"ski-stays/internal/pkg/errs"
	"ski-stays/internal/pkg/obs"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// defaultChildAge fills in ages the caller did not send.
const defaultChildAge = 10

type HotelRatesView struct {
	HotelID string                `json:"hotelId"`
	Rates   []rate.NormalizedRate `json:"rates"`
}

// RateSearchResult is empty with Degraded set when the provider call failed,
// so an outage is distinguishable from no availability.
type RateSearchResult struct {
	Hotels   []HotelRatesView `json:"hotels"`
	Degraded bool             `json:"degraded"`
}

type MinPrice struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

type HotelsWithRates struct {
	Hotels    []HotelView         `json:"hotels"`
	MinPrices map[string]MinPrice `json:"minPrices"`
	Degraded  bool                `json:"degraded"`
}

type HotelSearchRequest struct {
	CountryCode string
	City        string
	Stay        rate.SearchRequest
}

type RateChunk struct {
	Index    int              `json:"index"`
	Hotels   []HotelRatesView `json:"hotels"`
	Degraded bool             `json:"degraded"`
}

type RateQueries interface {
	SearchRates(ctx context.Context, req rate.SearchRequest) (RateSearchResult, error)
	SearchHotelsWithRates(ctx context.Context, req HotelSearchRequest) (HotelsWithRates, error)
	StreamRates(ctx context.Context, req rate.SearchRequest) (<-chan RateChunk, error)
}

type RateProvider interface {
	SearchRates(ctx context.Context, req upstream.RatesRequest) ([]upstream.HotelRates, error)
}

type rateQueriesImpl struct {
	provider RateProvider
	hotels   HotelQueries
	cache    *cache.Cache
	search   config.SearchConfig
	ratesTTL time.Duration
	metrics  *obs.Metrics
}

func NewRateQueries(provider RateProvider, hotels HotelQueries, c *cache.Cache, cfg config.Config, m *obs.Metrics) RateQueries {
	return &rateQueriesImpl{
		provider: provider,
		hotels:   hotels,
		cache:    c,
		search:   cfg.Search,
		ratesTTL: cfg.Cache.RatesTTL,
		metrics:  m,
	}
}

func (q *rateQueriesImpl) SearchRates(ctx context.Context, req rate.SearchRequest) (RateSearchResult, error) {
	if err := req.Validate(); err != nil {
		return RateSearchResult{}, errs.Mark(err, errs.ErrDomainValidation)
	}
	return q.searchRates(ctx, req), nil
}

func (q *rateQueriesImpl) searchRates(ctx context.Context, req rate.SearchRequest) RateSearchResult {
	body := q.buildRatesRequest(req)
	key := cache.Key("rates", body)

	raw, err := cache.WithCache(ctx, q.cache, "rates", key, q.ratesTTL, func(ctx context.Context) ([]upstream.HotelRates, error) {
		return q.provider.SearchRates(ctx, body)
	})
	if err != nil {
		q.degraded(ctx, "rate search failed", err, len(body.HotelIDs))
		return RateSearchResult{Hotels: []HotelRatesView{}, Degraded: true}
	}

	nights := req.Nights()
	views := make([]HotelRatesView, 0, len(raw))
	for _, h := range raw {
		rates, skipped := rate.NormalizeHotel(h.ToDomain(), nights, body.Currency)
		for _, s := range skipped {
			slog.Warn("skipping rate",
				"hotel_id", s.HotelID,
				"rate_id", s.RateID,
				"error", s.Err.Error())
		}
		q.metrics.AddRatesSkipped(len(skipped))
		views = append(views, HotelRatesView{HotelID: h.HotelID, Rates: rates})
	}
	return RateSearchResult{Hotels: views}
}

// degraded records a swallowed orchestration failure. Cancelled requests are not outages.
func (q *rateQueriesImpl) degraded(ctx context.Context, msg string, err error, hotels int) {
	if ctx.Err() != nil {
		return
	}
	q.metrics.IncDegradedSearch()
	slog.Warn(msg, "hotels", hotels, "error", err.Error())
}

func (q *rateQueriesImpl) buildRatesRequest(req rate.SearchRequest) upstream.RatesRequest {
	ages := make([]int, 0, req.Children)
	for i := range req.Children {
		age := defaultChildAge
		if i < len(req.ChildAges) {
			age = req.ChildAges[i]
		}
		ages = append(ages, age)
	}

	occupancies := make([]upstream.Occupancy, req.Rooms)
	for i := range occupancies {
		occupancies[i] = upstream.Occupancy{Adults: req.Adults, Children: ages}
	}

	margin := q.search.DefaultMargin
	if req.Margin != nil {
		margin = *req.Margin
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = q.search.DefaultCurrency
	}
	nationality := strings.ToUpper(strings.TrimSpace(req.GuestNationality))
	if nationality == "" {
		nationality = q.search.GuestNationality
	}

	return upstream.RatesRequest{
		HotelIDs:         req.HotelIDs,
		Checkin:          req.CheckIn.Format(rate.DateLayout),
		Checkout:         req.CheckOut.Format(rate.DateLayout),
		Occupancies:      occupancies,
		Currency:         currency,
		GuestNationality: nationality,
		Margin:           &margin,
	}
}

func (q *rateQueriesImpl) SearchHotelsWithRates(ctx context.Context, req HotelSearchRequest) (HotelsWithRates, error) {
	if err := req.Stay.ValidateStay(); err != nil {
		return HotelsWithRates{}, errs.Mark(err, errs.ErrDomainValidation)
	}
	empty := HotelsWithRates{Hotels: []HotelView{}, MinPrices: map[string]MinPrice{}}

	directory, err := q.hotels.SearchHotels(ctx, req.CountryCode, req.City, q.search.HotelLimit)
	if err != nil {
		q.degraded(ctx, "hotel directory search failed", err, 0)
		empty.Degraded = true
		return empty, nil
	}
	if len(directory) == 0 {
		return empty, nil
	}

	ids := make([]string, 0, len(directory))
	for _, h := range directory {
		ids = append(ids, h.ID)
	}

	res := q.searchRates(ctx, req.Stay.WithHotels(ids))
	if res.Degraded {
		empty.Degraded = true
		return empty, nil
	}

	minPrices := make(map[string]MinPrice, len(res.Hotels))
	for _, h := range res.Hotels {
		if amount, currency, ok := rate.MinPerNight(h.Rates); ok {
			minPrices[h.HotelID] = MinPrice{Amount: amount, Currency: currency}
		}
	}

	priced := make([]string, 0, len(minPrices))
	for _, id := range ids {
		if _, ok := minPrices[id]; ok {
			priced = append(priced, id)
		}
	}

	details := make([]*HotelView, len(priced))
	var g errgroup.Group
	g.SetLimit(max(q.search.DetailConcurrency, 1))
	for i, id := range priced {
		g.Go(func() error {
			d, err := q.hotels.GetHotelDetails(ctx, id)
			if err != nil {
				slog.Warn("dropping hotel without details", "hotel_id", id, "error", err.Error())
				q.metrics.IncHotelsDropped()
				return nil
			}
			details[i] = d
			return nil
		})
	}
	_ = g.Wait()

	out := HotelsWithRates{Hotels: make([]HotelView, 0, len(details)), MinPrices: make(map[string]MinPrice, len(details))}
	for i, d := range details {
		if d == nil {
			continue
		}
		out.Hotels = append(out.Hotels, *d)
		out.MinPrices[priced[i]] = minPrices[priced[i]]
	}
	return out, nil
}

// StreamRates prices hotel ids in chunks and sends each chunk as soon as it is ready.
// Chunks arrive in completion order. The channel is closed once every chunk is sent or ctx is done.
func (q *rateQueriesImpl) StreamRates(ctx context.Context, req rate.SearchRequest) (<-chan RateChunk, error) {
	if err := req.Validate(); err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	chunks := chunkIDs(req.HotelIDs, q.search.StreamChunkSize)
	out := make(chan RateChunk)

	go func() {
		defer close(out)

		var g errgroup.Group
		g.SetLimit(max(q.search.StreamConcurrency, 1))
		for i, ids := range chunks {
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				res := q.searchRates(ctx, req.WithHotels(ids))
				select {
				case out <- RateChunk{Index: i, Hotels: res.Hotels, Degraded: res.Degraded}:
				case <-ctx.Done():
				}
				return nil
			})
		}
		_ = g.Wait()
	}()

	return out, nil
}

func chunkIDs(ids []string, size int) [][]string {
	if size <= 0 {
		size = max(len(ids), 1)
	}
	chunks := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
