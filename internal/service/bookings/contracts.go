package bookings

import (
	"context"

	"github.com/mymy770/activelaser/internal/domain"
)

// BookingRepository is the storage surface the service needs.
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByBranchAndDate(ctx context.Context, branchID int64, date string, includeCancelled bool) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
}

// Logger is the leveled logging surface.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
