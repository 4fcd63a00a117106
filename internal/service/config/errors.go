package config

import "errors"

var (
	// ErrInvalidInput means the configuration is malformed.
	ErrInvalidInput = errors.New("config.service: invalid input")

	// ErrInternal wraps infrastructure failures.
	ErrInternal = errors.New("config.service: internal error")
)
