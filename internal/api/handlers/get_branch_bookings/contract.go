package get_branch_bookings

import (
	"context"

	"github.com/mymy770/activelaser/internal/service/bookings/models"
)

// BookingsService covers the read operations without allocation.
type BookingsService interface {
	GetBranchBookings(ctx context.Context, branchID int64, date string, includeCancelled bool) (*models.BookingListResponse, error)
}

// Logger is the leveled logging surface.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
