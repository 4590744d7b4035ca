package api

import (
	"net/http"

	reqdto "ski-stays/internal/handler/dto/request"
	resdto "ski-stays/internal/handler/dto/response"
	"ski-stays/internal/handler/httperr"
	"ski-stays/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	bookings queries.BookingQueries
}

func NewAdminHandler(bookings queries.BookingQueries) *AdminHandler {
	return &AdminHandler{bookings: bookings}
}

// @Summary Booking statistics
// @Tags admin
// @Security CookieAuth
// @Produce json
// @Success 200 {object} resdto.AdminStatsResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.bookings.AdminStats(c.Request.Context())
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingStats(stats))
}

// @Summary List bookings
// @Description Newest first, keyset paginated
// @Tags admin
// @Security CookieAuth
// @Produce json
// @Param cursor query string false "Opaque cursor from the previous page"
// @Param limit query int false "Page size (max 200)"
// @Success 200 {object} resdto.AdminBookingListResponse
// @Failure 400 {object} httperr.Response
// @Router /admin/bookings [get]
func (h *AdminHandler) Bookings(c *gin.Context) {
	var q reqdto.AdminBookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BindError(c, err)
		return
	}

	page, err := h.bookings.AdminBookings(c.Request.Context(), q.Cursor, q.Limit)
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingPage(page))
}
