package api

import (
	"net/http"

	reqdto "ski-stays/internal/handler/dto/request"
	"ski-stays/internal/handler/httperr"
	"ski-stays/internal/handler/middleware"
	"ski-stays/internal/usecase/commands"
	"ski-stays/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Prebook an offer
// @Description Locks the offer price with the provider and opens a payment intent for it
// @Tags booking
// @Accept json
// @Produce json
// @Param request body reqdto.PrebookRequest true "Offer to prebook"
// @Success 200 {object} commands.PrebookResult
// @Failure 400 {object} httperr.Response
// @Router /booking/prebook [post]
func (h *BookingHandler) Prebook(c *gin.Context) {
	var req reqdto.PrebookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}

	res, err := h.cmds.Prebook(c.Request.Context(), req)
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Confirm a booking
// @Description Books a paid prebook. Retrying with the same prebook returns the stored booking.
// @Tags booking
// @Accept json
// @Produce json
// @Param request body reqdto.ConfirmBookingRequest true "Confirmation"
// @Success 200 {object} commands.ConfirmResult
// @Failure 400 {object} httperr.Response
// @Failure 402 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /booking/confirm [post]
func (h *BookingHandler) Confirm(c *gin.Context) {
	var req reqdto.ConfirmBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}

	userID, ok := middleware.GetUserID(c)
	res, err := h.cmds.Confirm(c.Request.Context(), req, optional(userID, ok))
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Look up a booking
// @Tags booking
// @Accept json
// @Produce json
// @Param request body reqdto.LookupBookingRequest true "Booking id and guest email"
// @Success 200 {object} queries.BookingDetailView
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /booking/lookup [post]
func (h *BookingHandler) Lookup(c *gin.Context) {
	var req reqdto.LookupBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}

	view, err := h.q.Lookup(c.Request.Context(), req.BookingID, req.Email)
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Manage a booking
// @Description Only the "cancel" action is supported
// @Tags booking
// @Accept json
// @Produce json
// @Param request body reqdto.ManageBookingRequest true "Action"
// @Success 200 {object} commands.ManageResult
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /booking/manage [post]
func (h *BookingHandler) Manage(c *gin.Context) {
	var req reqdto.ManageBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}

	res, err := h.cmds.Manage(c.Request.Context(), req)
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func optional[T any](v T, ok bool) *T {
	if !ok {
		return nil
	}
	return &v
}
