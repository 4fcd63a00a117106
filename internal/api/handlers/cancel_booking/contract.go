package cancel_booking

import "context"

// BookingsService covers the lifecycle operations without allocation.
type BookingsService interface {
	Cancel(ctx context.Context, id string) error
}

// Logger is the leveled logging surface.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
