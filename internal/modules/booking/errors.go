package booking

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrCompanyNotFound = errors.New("company not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrOutOfWindow     = errors.New("booking date outside allowed window")
	ErrQuotaExceeded   = errors.New("booking quota exceeded")
	ErrDuplicateSlot   = errors.New("slot already booked")
	ErrForbidden       = errors.New("forbidden")
)
