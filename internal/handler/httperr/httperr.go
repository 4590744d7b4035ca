package httperr

import (
	"errors"
	"net/http"

	"ski-stays/internal/infra/payment"
	"ski-stays/internal/infra/upstream"
	"ski-stays/internal/pkg/errs"
	"ski-stays/internal/pkg/jwt"
	"ski-stays/internal/usecase/commands"
	"ski-stays/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Response struct {
	Status int    `json:"-"`
	Error  string `json:"error"`
	Detail any    `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		err = errors.New(msg)
	}

	resp := Response{Status: status, Error: msg, Detail: detail}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// BindError rejects a request that failed binding. Validation failures list
// the offending fields; malformed bodies carry no detail.
func BindError(c *gin.Context, err error) {
	var detail any
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make([]FieldError, 0, len(ve))
		for _, fe := range ve {
			fields = append(fields, FieldError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
		}
		detail = fields
	}
	AbortWithError(c, http.StatusBadRequest, err, "Invalid request", detail)
}

type mapping struct {
	target error
	status int
	msg    string
}

// sentinel errors in match order
var mappings = []mapping{
	{errs.ErrDomainValidation, http.StatusBadRequest, ""},
	{queries.ErrInvalidCursor, http.StatusBadRequest, "Invalid cursor"},
	{commands.ErrAuthenticationFailed, http.StatusBadRequest, "Invalid request data"},
	{commands.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{commands.ErrUserInactive, http.StatusForbidden, "Account is inactive"},
	{queries.ErrUserInactive, http.StatusForbidden, "Account is inactive"},
	{queries.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{jwt.ErrInvalidToken, http.StatusUnauthorized, "Invalid or expired token"},
	{jwt.ErrExpiredToken, http.StatusUnauthorized, "Invalid or expired token"},
	{errs.ErrUnsupportedAction, http.StatusBadRequest, "Unsupported booking action"},
	{errs.ErrPaymentNotCompleted, http.StatusPaymentRequired, "Payment not completed"},
	{errs.ErrPaymentAmountInvalid, http.StatusPaymentRequired, "Payment amount does not match the prebooked price"},
	{errs.ErrBookingAccessDenied, http.StatusForbidden, "Access denied"},
	{errs.ErrHotelNotFound, http.StatusNotFound, "Hotel not found"},
	{errs.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{errs.ErrBookingConflict, http.StatusConflict, "Booking conflict"},
	{errs.ErrSessionNotFound, http.StatusUnauthorized, "Session not found"},
	{errs.ErrSessionExpired, http.StatusUnauthorized, "Session expired"},
}

// Status maps a usecase error to an HTTP status and client message. Upstream and
// payment failures keep their own status; anything unrecognised is a 500.
func Status(err error) (int, string) {
	for _, m := range mappings {
		if errs.Is(err, m.target) {
			msg := m.msg
			if msg == "" {
				msg = rootMessage(err)
			}
			return m.status, msg
		}
	}

	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status < 400 || status > 599 {
			status = http.StatusInternalServerError
		}
		return status, apiErr.Message
	}

	var payErr *payment.Error
	if errors.As(err, &payErr) {
		if payErr.Status >= 500 {
			return http.StatusBadGateway, "Payment processor unavailable"
		}
		return http.StatusPaymentRequired, payErr.Message
	}

	return http.StatusInternalServerError, "Internal server error"
}

// Handle aborts the request with the response Status picks for err.
func Handle(c *gin.Context, err error) {
	status, msg := Status(err)
	AbortWithError(c, status, err, msg, nil)
}

// rootMessage is the innermost error text, free of wrap prefixes.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
