package domain

import (
	"strings"
	"time"

	"github.com/mymy770/activelaser/internal/scheduler"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	// StatusCreated is the initial state before any placement attempt.
	StatusCreated BookingStatus = "created"
	// StatusAllocated means the allocator found a placement that is not yet
	// confirmed by staff.
	StatusAllocated BookingStatus = "allocated"
	// StatusConfirmed is a clean, exception-free confirmed booking.
	StatusConfirmed BookingStatus = "confirmed"
	// StatusSurbookConfirmed is confirmed with a deliberate slot-capacity
	// overrun accepted by staff.
	StatusSurbookConfirmed BookingStatus = "surbook_confirmed"
	// StatusRoomOvercapConfirmed is confirmed with a deliberate room-capacity
	// overrun accepted by staff.
	StatusRoomOvercapConfirmed BookingStatus = "room_overcap_confirmed"
	StatusCancelled            BookingStatus = "cancelled"
)

// statusTransitions is the closed set of legal lifecycle moves:
// created → allocated → confirmed | surbook_confirmed | room_overcap_confirmed → cancelled.
var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusCreated:              {StatusAllocated, StatusCancelled},
	StatusAllocated:            {StatusConfirmed, StatusSurbookConfirmed, StatusRoomOvercapConfirmed, StatusCancelled},
	StatusConfirmed:            {StatusCancelled},
	StatusSurbookConfirmed:     {StatusCancelled},
	StatusRoomOvercapConfirmed: {StatusCancelled},
	StatusCancelled:            {},
}

// CanTransitionTo reports whether the lifecycle allows moving to next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsValid reports whether s is a known lifecycle state.
func (s BookingStatus) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// Booking represents a reservation for a game session or a room-backed event
type Booking struct {
	ID       string // uuid
	BranchID int64
	Date     string // YYYY-MM-DD, local to the branch
	Type     scheduler.BookingType

	Hour            int
	Minute          int
	DurationMinutes int
	// GameDurationMinutes is the embedded play window of an event; nil means
	// derived from DurationMinutes.
	GameDurationMinutes *int

	Participants int

	// AssignedSlots and AssignedRoom are written by the allocator only.
	// A game-type booking never holds a room.
	AssignedSlots []int
	AssignedRoom  *int

	Status BookingStatus

	Surbooked               bool
	SurbookedParticipants   int
	RoomOvercap             bool
	RoomOvercapParticipants int

	// Customer metadata, carried through unchanged; irrelevant to scheduling.
	CustomerFirstName *string
	CustomerLastName  *string
	CustomerPhone     *string
	CustomerEmail     *string
	CustomerNotes     *string
	Color             *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its resources
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status.CanTransitionTo(StatusCancelled)
}

// CanBeUpdated returns true if the booking can still be edited
func (b *Booking) CanBeUpdated() bool {
	return b.Status != StatusCancelled
}

// ToSchedulerBooking converts the storage entity into the scheduler's plain
// value form. A game-type booking never surfaces a room, whatever the row says.
func (b *Booking) ToSchedulerBooking() scheduler.Booking {
	sb := scheduler.Booking{
		ID:                      b.ID,
		Type:                    b.Type,
		Date:                    scheduler.DateKey(b.Date),
		Hour:                    b.Hour,
		Minute:                  b.Minute,
		Participants:            b.Participants,
		DurationMinutes:         b.DurationMinutes,
		Surbooked:               b.Surbooked,
		SurbookedParticipants:   b.SurbookedParticipants,
		RoomOvercap:             b.RoomOvercap,
		RoomOvercapParticipants: b.RoomOvercapParticipants,
	}

	if b.GameDurationMinutes != nil {
		sb.GameDurationMinutes = *b.GameDurationMinutes
	}

	if len(b.AssignedSlots) > 0 {
		sb.AssignedSlots = make([]scheduler.SlotID, len(b.AssignedSlots))
		for i, id := range b.AssignedSlots {
			sb.AssignedSlots[i] = scheduler.SlotID(id)
		}
	}

	if b.Type == scheduler.BookingTypeEvent && b.AssignedRoom != nil {
		sb.AssignedRoom = scheduler.RoomID(*b.AssignedRoom)
	}

	return sb
}

// ToSchedulerBookings converts a booking list for one occupancy computation,
// skipping cancelled bookings so they free their resources.
func ToSchedulerBookings(bookings []*Booking) []scheduler.Booking {
	result := make([]scheduler.Booking, 0, len(bookings))
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		result = append(result, b.ToSchedulerBooking())
	}
	return result
}

// ClassifyEventType maps the loosely-typed event_type column onto a booking
// type. The rule from the dashboard is preserved exactly: blank, absent or
// explicitly "game" means game; anything else means event.
func ClassifyEventType(eventType *string) scheduler.BookingType {
	if eventType == nil {
		return scheduler.BookingTypeGame
	}
	trimmed := strings.TrimSpace(*eventType)
	if trimmed == "" || trimmed == "game" {
		return scheduler.BookingTypeGame
	}
	return scheduler.BookingTypeEvent
}
