package scheduler

// SlotID identifies one of the parallel game-play stations (1..TotalSlots).
type SlotID int

// RoomID identifies a bookable event room (1..len(Rooms)).
type RoomID int

// TimeKey is a time-of-day quantized to the 15-minute grid, formatted "HH:MM".
// The hour part may exceed 23 when a booking window crosses past midnight.
type TimeKey string

// DateKey is a calendar day formatted "YYYY-MM-DD", local to the branch.
type DateKey string

// BookingType distinguishes plain game bookings from room-backed events.
type BookingType string

const (
	BookingTypeGame  BookingType = "game"
	BookingTypeEvent BookingType = "event"
)

// Booking is the scheduler's view of a reservation. It is a plain value:
// the storage entity is converted into this shape before any computation.
type Booking struct {
	ID           string
	Type         BookingType
	Date         DateKey
	Hour         int // 0-23
	Minute       int // 0-59, grid-aligned
	Participants int

	// DurationMinutes is the total duration of the booking. For an event this
	// is the room window (default 120); for a game it is the play time.
	DurationMinutes int

	// GameDurationMinutes is the play window embedded in an event booking.
	// Zero means "not set"; the effective value falls back to DurationMinutes.
	GameDurationMinutes int

	// Allocations assigned by the allocator. An empty AssignedRoom (0) means
	// no room; a game booking never holds a room.
	AssignedSlots []SlotID
	AssignedRoom  RoomID

	// Exception flags, set only through the exception tracker after explicit
	// human confirmation.
	Surbooked               bool
	SurbookedParticipants   int
	RoomOvercap             bool
	RoomOvercapParticipants int
}

// SlotAllocation is the game-slot part of a placement.
type SlotAllocation struct {
	Slots []SlotID
	// IsSplit is true when the assigned slots are not one contiguous run.
	IsSplit    bool
	SplitParts int // number of contiguous runs, 0 unless split
	SplitIndex int // 1-indexed run holding the lowest slot, 0 unless split
}

// RoomAllocation is the event-room part of a placement.
type RoomAllocation struct {
	RoomID       RoomID
	StartTimeKey TimeKey
	EndTimeKey   TimeKey
}

// Allocation is the resolved placement for one booking. Either part may be
// nil: a game booking has no room allocation, a zero-participant event has
// no slot allocation.
type Allocation struct {
	SlotAllocation *SlotAllocation
	RoomAllocation *RoomAllocation
}

// ConflictType classifies why an allocation attempt did not succeed cleanly.
type ConflictType string

const (
	// ConflictNone marks a successful allocation.
	ConflictNone ConflictType = "NONE"
	// ConflictFull means no slot capacity exists at all for the window.
	ConflictFull ConflictType = "FULL"
	// ConflictNoRoom means no room is free for the whole event window.
	ConflictNoRoom ConflictType = "NO_ROOM"
	// ConflictRoomOvercap reports a room over its stated capacity without
	// asking for confirmation (report-only call sites).
	ConflictRoomOvercap ConflictType = "ROOM_OVERCAP"
	// ConflictNeedSurbookConfirm means some slot capacity exists but not
	// enough for the headcount; a human may accept the overbooking.
	ConflictNeedSurbookConfirm ConflictType = "NEED_SURBOOK_CONFIRM"
	// ConflictNeedRoomOvercapConfirm means a room is free but too small;
	// a human may accept the overrun.
	ConflictNeedRoomOvercapConfirm ConflictType = "NEED_ROOM_OVERCAP_CONFIRM"
	// ConflictOverlapDetected means two bookings claim the same resource/time
	// cell. Data-integrity fault, always fatal for the attempted operation.
	ConflictOverlapDetected ConflictType = "OVERLAP_DETECTED"
)

// ConflictDetails carries the structured numbers behind a conflict.
type ConflictDetails struct {
	AvailableSlots     int
	NeededSlots        int
	RoomID             RoomID
	RoomCapacity       int
	Participants       int
	ExcessParticipants int
}

// Conflict is the outcome of a failed or confirmation-pending allocation.
// Infeasibility is a value, never an error.
type Conflict struct {
	Type    ConflictType
	Message string
	Details *ConflictDetails
}

// AllocationResult is what the allocator returns: a placement on success,
// a typed conflict otherwise.
type AllocationResult struct {
	Success    bool
	Allocation *Allocation
	Conflict   *Conflict
}

// RoomConfig describes one bookable event room.
type RoomConfig struct {
	ID          RoomID
	Name        string
	MaxCapacity int
}

// GridConfig is the per-branch capacity configuration. It is passed in on
// every call; the scheduler has no compiled-in capacities.
type GridConfig struct {
	TotalSlots     int
	PlayersPerSlot int
	Rooms          []RoomConfig
}

// TotalCapacity returns the maximum headcount the game slots can take.
func (c GridConfig) TotalCapacity() int {
	return c.TotalSlots * c.PlayersPerSlot
}

// AllocationParams describes a desired new or edited placement.
type AllocationParams struct {
	Date                DateKey
	Hour                int
	Minute              int
	Participants        int
	Type                BookingType
	DurationMinutes     int
	GameDurationMinutes int // 0 = derive from DurationMinutes

	// ExcludeBookingID makes the occupancy checks ignore this booking's own
	// prior allocation, so that editing a booking never conflicts with itself.
	ExcludeBookingID string
}

// Override carries the explicit, human-confirmed exceptions a caller grants
// when re-submitting after a NEED_*_CONFIRM conflict.
type Override struct {
	AllowSurbook     bool
	AllowRoomOvercap bool
}
