package get_agenda

import (
	"github.com/mymy770/activelaser/internal/domain"
	"github.com/mymy770/activelaser/internal/scheduler"
)

// Request selects the branch, the date and the displayed time window.
// FromHour/ToHour default to the venue's standard display window; ToHour may
// exceed 23 to show a window that runs past midnight.
type Request struct {
	BranchID int64
	Date     string // YYYY-MM-DD
	FromHour int
	ToHour   int
}

// TimeMark is one 15-minute grid line of the agenda. Label is empty on the
// lines that carry no half-hour label.
type TimeMark struct {
	Key   scheduler.TimeKey
	Label string
}

// RoomView is a room column header with its live occupancy flag per time key
// left to the occupancy maps; the header carries the static description.
type RoomView struct {
	ID          int
	Name        string
	MaxCapacity int
}

// BookingView is one booking as the agenda renders it: placement, split
// markers, exception annotations and the report-only room capacity warning.
type BookingView struct {
	ID                  string
	Type                scheduler.BookingType
	Status              domain.BookingStatus
	Hour                int
	Minute              int
	DurationMinutes     int
	GameDurationMinutes *int
	Participants        int

	AssignedSlots []int
	AssignedRoom  *int
	RoomName      string
	RoomStartKey  scheduler.TimeKey
	RoomEndKey    scheduler.TimeKey

	IsSplit    bool
	SplitParts int
	SplitIndex int

	// ExceptionMessage and SurbookLabel render the confirmed overruns.
	ExceptionMessage string
	SurbookLabel     string

	// RoomCapacityWarning is the report-only annotation shown when the
	// booking's headcount exceeds its room, whether or not the overrun was
	// ever formally confirmed.
	RoomCapacityWarning string

	CustomerFirstName *string
	CustomerLastName  *string
	CustomerNotes     *string
	Color             *string
}

// Response is the assembled agenda for one branch and date.
type Response struct {
	BranchID int64
	Date     string

	TotalSlots     int
	PlayersPerSlot int
	Rooms          []RoomView

	Grid []TimeMark

	// GameSlots / EventRooms are the raw occupancy projections, keyed by
	// time key then resource id, each cell holding the occupying booking id.
	GameSlots  scheduler.GameSlotState
	EventRooms scheduler.EventRoomState

	Bookings []BookingView
}
