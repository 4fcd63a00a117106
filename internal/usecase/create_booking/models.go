package create_booking

import (
	"github.com/mymy770/activelaser/internal/domain"
	"github.com/mymy770/activelaser/internal/scheduler"
)

// Request carries the staff-entered booking parameters.
type Request struct {
	BranchID int64
	Date     string // YYYY-MM-DD
	Hour     int
	Minute   int

	// EventType is the loose dashboard value; blank or "game" means a plain
	// game booking, anything else a room-backed event.
	EventType *string

	Participants int

	// DurationMinutes is the total window; zero falls back to the type
	// default (60 for games, 120 for events).
	DurationMinutes int
	// GameDurationMinutes embeds a shorter play window inside an event.
	GameDurationMinutes *int

	// AllowSurbook / AllowRoomOvercap are the staff confirmations granted
	// after a NEED_*_CONFIRM conflict on a prior attempt.
	AllowSurbook     bool
	AllowRoomOvercap bool

	CustomerFirstName *string
	CustomerLastName  *string
	CustomerPhone     *string
	CustomerEmail     *string
	CustomerNotes     *string
	Color             *string
}

// Response is the allocation outcome. On success Booking is set; on an
// unresolved conflict Success is false and Conflict describes it. A conflict
// is an answer, not an error: only infrastructure failures surface as errors.
type Response struct {
	Success  bool
	Booking  *domain.Booking
	Conflict *scheduler.Conflict
}
