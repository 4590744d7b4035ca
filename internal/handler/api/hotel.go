package api

import (
	"log/slog"
	"net/http"
	"strconv"

	reqdto "ski-stays/internal/handler/dto/request"
	"ski-stays/internal/handler/httperr"
	"ski-stays/internal/pkg/errs"
	"ski-stays/internal/usecase/queries"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
)

const (
	eventRates = "rates"
	eventDone  = "done"
)

type HotelHandler struct {
	hotels queries.HotelQueries
	rates  queries.RateQueries
}

func NewHotelHandler(hotels queries.HotelQueries, rates queries.RateQueries) *HotelHandler {
	return &HotelHandler{hotels: hotels, rates: rates}
}

type HotelDirectoryResponse struct {
	Hotels []queries.HotelSummaryView `json:"hotels"`
}

type StreamDoneEvent struct {
	Chunks   int  `json:"chunks"`
	Degraded bool `json:"degraded"`
}

// @Summary Search hotels
// @Description City hotel directory. With checkIn/checkOut the result is priced and limited to hotels with availability.
// @Tags hotels
// @Produce json
// @Param countryCode query string false "ISO country code"
// @Param city query string false "City name"
// @Param checkIn query string false "Check-in date (YYYY-MM-DD)"
// @Param checkOut query string false "Check-out date (YYYY-MM-DD)"
// @Param adults query int false "Adults per room"
// @Param children query int false "Children per room"
// @Param rooms query int false "Rooms"
// @Success 200 {object} queries.HotelsWithRates
// @Failure 400 {object} httperr.Response
// @Router /hotels/search [get]
func (h *HotelHandler) Search(c *gin.Context) {
	var q reqdto.HotelSearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BindError(c, err)
		return
	}

	if !q.HasDates() {
		hotels, err := h.hotels.SearchHotels(c.Request.Context(), q.CountryCode, q.City, q.Limit)
		if err != nil {
			httperr.Handle(c, err)
			return
		}
		c.JSON(http.StatusOK, HotelDirectoryResponse{Hotels: hotels})
		return
	}

	req, err := q.ToDomain()
	if err != nil {
		httperr.Handle(c, errs.Mark(err, errs.ErrDomainValidation))
		return
	}
	res, err := h.rates.SearchHotelsWithRates(c.Request.Context(), req)
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Search rates
// @Description Normalized rates for a comma separated list of hotel ids
// @Tags hotels
// @Produce json
// @Param hotelIds query string true "Comma separated hotel ids"
// @Param checkIn query string true "Check-in date (YYYY-MM-DD)"
// @Param checkOut query string true "Check-out date (YYYY-MM-DD)"
// @Param adults query int false "Adults per room"
// @Param children query int false "Children per room"
// @Param rooms query int false "Rooms"
// @Param margin query number false "Markup percentage"
// @Success 200 {object} queries.RateSearchResult
// @Failure 400 {object} httperr.Response
// @Router /hotels/rates [get]
func (h *HotelHandler) Rates(c *gin.Context) {
	var q reqdto.RatesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BindError(c, err)
		return
	}

	res, err := h.rates.SearchRates(c.Request.Context(), q.ToDomain())
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Stream rates
// @Description Server-sent events: one "rates" event per priced chunk of hotels, then a "done" event.
// @Tags hotels
// @Accept json
// @Produce text/event-stream
// @Param request body reqdto.StreamRatesRequest true "Rate search"
// @Success 200 {object} queries.RateChunk
// @Failure 400 {object} httperr.Response
// @Router /hotels/rates/stream [post]
func (h *HotelHandler) StreamRates(c *gin.Context) {
	var body reqdto.StreamRatesRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BindError(c, err)
		return
	}
	req, err := body.ToDomain()
	if err != nil {
		httperr.Handle(c, errs.Mark(err, errs.ErrDomainValidation))
		return
	}

	chunks, err := h.rates.StreamRates(c.Request.Context(), req)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	ctx := c.Request.Context()
	done := StreamDoneEvent{}
	for {
		select {
		case <-ctx.Done():
			slog.Debug("rate stream client disconnected", "chunks_sent", done.Chunks)
			return
		case chunk, ok := <-chunks:
			if !ok {
				c.Render(-1, sse.Event{Event: eventDone, Data: done})
				c.Writer.Flush()
				return
			}
			done.Chunks++
			done.Degraded = done.Degraded || chunk.Degraded
			c.Render(-1, sse.Event{Event: eventRates, Id: strconv.Itoa(chunk.Index), Data: chunk})
			c.Writer.Flush()
		}
	}
}

// @Summary Hotel details
// @Tags hotels
// @Produce json
// @Param hotelId query string true "Hotel id"
// @Success 200 {object} queries.HotelView
// @Failure 404 {object} httperr.Response
// @Router /hotels/details [get]
func (h *HotelHandler) Details(c *gin.Context) {
	var q reqdto.HotelDetailsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BindError(c, err)
		return
	}

	hotel, err := h.hotels.GetHotelDetails(c.Request.Context(), q.HotelID)
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, hotel)
}

// @Summary Hotel reviews
// @Tags hotels
// @Produce json
// @Param hotelId query string true "Hotel id"
// @Param limit query int false "Maximum reviews"
// @Success 200 {array} queries.ReviewView
// @Router /hotels/reviews [get]
func (h *HotelHandler) Reviews(c *gin.Context) {
	var q reqdto.ReviewsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BindError(c, err)
		return
	}

	reviews, err := h.hotels.GetReviews(c.Request.Context(), q.HotelID, q.Limit)
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
