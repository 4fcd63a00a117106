package update_booking

import (
	"github.com/mymy770/activelaser/internal/domain"
	"github.com/mymy770/activelaser/internal/scheduler"
)

// Request carries the edited booking parameters. The whole scheduling shape
// is re-submitted; the allocator re-places the booking from scratch while
// ignoring its own previous allocation.
type Request struct {
	BookingID string

	Date   string // YYYY-MM-DD
	Hour   int
	Minute int

	EventType *string

	Participants int

	DurationMinutes     int // zero falls back to the type default
	GameDurationMinutes *int

	AllowSurbook     bool
	AllowRoomOvercap bool

	CustomerFirstName *string
	CustomerLastName  *string
	CustomerPhone     *string
	CustomerEmail     *string
	CustomerNotes     *string
	Color             *string
}

// Response is the allocation outcome, same contract as creation: a conflict
// is a value, not an error, and leaves the stored booking untouched.
type Response struct {
	Success  bool
	Booking  *domain.Booking
	Conflict *scheduler.Conflict
}
