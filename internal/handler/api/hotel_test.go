//go:build unit

package api_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"ski-stays/internal/domain/rate"
	"ski-stays/internal/handler/api"
	queriesmock "ski-stays/internal/mock/queries"
	"ski-stays/internal/pkg/errs"
	"ski-stays/internal/testutil/httptest"
	"ski-stays/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type HotelHandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	mockCtrl   *gomock.Controller
	mockHotels *queriesmock.MockHotelQueries
	mockRates  *queriesmock.MockRateQueries
	handler    *api.HotelHandler
}

func (s *HotelHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockHotels = queriesmock.NewMockHotelQueries(s.mockCtrl)
	s.mockRates = queriesmock.NewMockRateQueries(s.mockCtrl)
	s.handler = api.NewHotelHandler(s.mockHotels, s.mockRates)

	s.router.GET("/hotels/search", s.handler.Search)
	s.router.GET("/hotels/rates", s.handler.Rates)
	s.router.POST("/hotels/rates/stream", s.handler.StreamRates)
	s.router.GET("/hotels/details", s.handler.Details)
	s.router.GET("/hotels/reviews", s.handler.Reviews)
}

func (s *HotelHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestHotelHandlerSuite(t *testing.T) {
	suite.Run(t, new(HotelHandlerTestSuite))
}

func day(d int) time.Time {
	return time.Date(2025, 12, d, 0, 0, 0, 0, time.UTC)
}

func (s *HotelHandlerTestSuite) TestSearch() {
	s.Run("directory only without dates", func() {
		s.mockHotels.EXPECT().SearchHotels(gomock.Any(), "FR", "Chamonix", 0).
			Return([]queries.HotelSummaryView{{ID: "lp1", Name: "Powder Lodge"}}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/hotels/search?countryCode=FR&city=Chamonix", nil, "")

		var response api.HotelDirectoryResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response.Hotels, 1)
		s.Equal("lp1", response.Hotels[0].ID)
	})

	s.Run("priced search with dates and defaults", func() {
		s.mockRates.EXPECT().SearchHotelsWithRates(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req queries.HotelSearchRequest) (queries.HotelsWithRates, error) {
				s.Equal("FR", req.CountryCode)
				s.Equal(day(10), req.Stay.CheckIn)
				s.Equal(day(13), req.Stay.CheckOut)
				s.Equal(2, req.Stay.Adults)
				s.Equal(1, req.Stay.Rooms)
				return queries.HotelsWithRates{
					Hotels: []queries.HotelView{{ID: "lp1"}},
					MinPrices: map[string]queries.MinPrice{
						"lp1": {Amount: decimal.RequireFromString("150"), Currency: "USD"},
					},
				}, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/hotels/search?countryCode=FR&city=Chamonix&checkIn=2025-12-10&checkOut=2025-12-13", nil, "")

		var response queries.HotelsWithRates
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Contains(response.MinPrices, "lp1")
	})

	s.Run("error: malformed date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/hotels/search?city=Chamonix&checkIn=10-12-2025&checkOut=2025-12-13", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *HotelHandlerTestSuite) TestRates() {
	s.Run("success", func() {
		s.mockRates.EXPECT().SearchRates(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req rate.SearchRequest) (queries.RateSearchResult, error) {
				s.Equal([]string{"lp1", "lp2"}, req.HotelIDs)
				s.Equal(1, req.Children)
				s.Equal([]int{7}, req.ChildAges)
				return queries.RateSearchResult{Hotels: []queries.HotelRatesView{{HotelID: "lp1"}}}, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/hotels/rates?hotelIds=lp1,lp2&checkIn=2025-12-10&checkOut=2025-12-13&children=1&childAges=7", nil, "")

		var response queries.RateSearchResult
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.False(response.Degraded)
	})

	s.Run("error: check-out before check-in", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/hotels/rates?hotelIds=lp1&checkIn=2025-12-13&checkOut=2025-12-10", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: hotel ids are required", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/hotels/rates?checkIn=2025-12-10&checkOut=2025-12-13", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: validation from the usecase", func() {
		s.mockRates.EXPECT().SearchRates(gomock.Any(), gomock.Any()).
			Return(queries.RateSearchResult{}, errs.Mark(rate.ErrInvalidMargin, errs.ErrDomainValidation))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/hotels/rates?hotelIds=lp1&checkIn=2025-12-10&checkOut=2025-12-13", nil, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "margin must be between 0 and 100")
	})
}

func (s *HotelHandlerTestSuite) TestStreamRates() {
	body := map[string]any{
		"hotelIds": []string{"lp1", "lp2"},
		"checkIn":  "2025-12-10",
		"checkOut": "2025-12-13",
		"adults":   2,
	}

	s.Run("emits one rates event per chunk and a final done event", func() {
		ch := make(chan queries.RateChunk, 2)
		ch <- queries.RateChunk{Index: 1, Hotels: []queries.HotelRatesView{{HotelID: "lp2"}}}
		ch <- queries.RateChunk{Index: 0, Degraded: true}
		close(ch)

		s.mockRates.EXPECT().StreamRates(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req rate.SearchRequest) (<-chan queries.RateChunk, error) {
				s.Equal(1, req.Rooms)
				return ch, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/hotels/rates/stream", body, "")

		s.Equal(http.StatusOK, rec.Code)
		s.Equal("text/event-stream", rec.Header().Get("Content-Type"))
		out := rec.Body.String()
		s.Equal(2, strings.Count(out, "event:rates"))
		s.Equal(1, strings.Count(out, "event:done"))
		s.Contains(out, `"hotelId":"lp2"`)
		s.Contains(out, `{"chunks":2,"degraded":true}`)
		s.Less(strings.Index(out, "event:rates"), strings.Index(out, "event:done"))
	})

	s.Run("error: request rejected before streaming", func() {
		s.mockRates.EXPECT().StreamRates(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(rate.ErrNoHotels, errs.ErrDomainValidation))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/hotels/rates/stream", body, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: adults are required", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/hotels/rates/stream",
			map[string]any{"hotelIds": []string{"lp1"}, "checkIn": "2025-12-10", "checkOut": "2025-12-13"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *HotelHandlerTestSuite) TestDetails() {
	s.Run("success", func() {
		s.mockHotels.EXPECT().GetHotelDetails(gomock.Any(), "lp1").
			Return(&queries.HotelView{ID: "lp1", Name: "Powder Lodge"}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/hotels/details?hotelId=lp1", nil, "")

		var response queries.HotelView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("Powder Lodge", response.Name)
	})

	s.Run("error: unknown hotel", func() {
		s.mockHotels.EXPECT().GetHotelDetails(gomock.Any(), "nope").Return(nil, errs.ErrHotelNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/hotels/details?hotelId=nope", nil, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Hotel not found")
	})

	s.Run("error: hotel id is required", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/hotels/details", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *HotelHandlerTestSuite) TestReviews() {
	s.mockHotels.EXPECT().GetReviews(gomock.Any(), "lp1", 5).
		Return([]queries.ReviewView{{Name: "Marie", AverageScore: 9}}, nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/hotels/reviews?hotelId=lp1&limit=5", nil, "")

	var response struct {
		Reviews []queries.ReviewView `json:"reviews"`
	}
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
	s.Require().Len(response.Reviews, 1)
	s.Equal("Marie", response.Reviews[0].Name)
}
