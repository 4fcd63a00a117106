package bookings

import "errors"

var (
	// ErrBookingNotFound means the booking does not exist.
	ErrBookingNotFound = errors.New("bookings.service: booking not found")

	// ErrCannotCancel means the booking's lifecycle state forbids cancelling.
	ErrCannotCancel = errors.New("bookings.service: booking cannot be cancelled")

	// ErrInvalidInput means the request parameters are malformed.
	ErrInvalidInput = errors.New("bookings.service: invalid input")

	// ErrInternal wraps infrastructure failures.
	ErrInternal = errors.New("bookings.service: internal error")
)
