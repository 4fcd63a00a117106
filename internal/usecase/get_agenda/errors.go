package get_agenda

import "errors"

var (
	// ErrInvalidInput means the request failed validation.
	ErrInvalidInput = errors.New("get_agenda: invalid input")

	// ErrInternal wraps infrastructure failures.
	ErrInternal = errors.New("get_agenda: internal error")
)
