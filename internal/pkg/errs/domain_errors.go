package errs

import "errors"

// Sentinel errors shared by the usecase and handler layers
var (
	// Hotel errors
	ErrHotelNotFound = errors.New("hotel not found")

	// Booking errors
	ErrBookingNotFound      = errors.New("booking not found")
	ErrBookingConflict      = errors.New("booking conflict")
	ErrBookingAccessDenied  = errors.New("access denied")
	ErrUnsupportedAction    = errors.New("unsupported booking action")
	ErrPaymentNotCompleted  = errors.New("payment not completed")
	ErrPaymentAmountInvalid = errors.New("payment amount does not match prebook price")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
