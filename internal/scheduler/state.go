package scheduler

import "sort"

// GameSlotState maps timeKey -> slotId -> occupying booking id.
// A missing cell means the slot is free at that instant; occupancy is always
// an explicit booking id, never a sentinel value.
type GameSlotState map[TimeKey]map[SlotID]string

// EventRoomState maps timeKey -> roomId -> occupying booking id.
type EventRoomState map[TimeKey]map[RoomID]string

// OccupancyState is the derived, never-persisted projection of one date's
// bookings. It must be rebuilt from the current booking list after any
// mutation; it is the single source of truth for free/occupied queries
// during one computation and is treated as immutable once built.
type OccupancyState struct {
	GameSlots          GameSlotState
	EventRooms         EventRoomState
	BookingAllocations map[string]Allocation
}

// effectiveGameDuration is the duration fed into the centered-window rule:
// the explicit game duration if set, else the booking's own duration, else
// the 60-minute default.
func effectiveGameDuration(b Booking) int {
	if b.GameDurationMinutes > 0 {
		return b.GameDurationMinutes
	}
	if b.DurationMinutes > 0 {
		return b.DurationMinutes
	}
	return 60
}

// effectiveEventDuration is the room window of an event booking. Events
// default to 120 minutes; the centered game duration is never used here.
func effectiveEventDuration(b Booking) int {
	if b.DurationMinutes > 0 {
		return b.DurationMinutes
	}
	return 120
}

// gameWindowKeys returns the grid cells occupied by a booking's play window.
func gameWindowKeys(b Booking) []TimeKey {
	return CalculateCenteredGameTime(b.Hour, b.Minute, effectiveGameDuration(b)).Keys()
}

// eventWindowKeys returns the grid cells occupied by an event's room window.
func eventWindowKeys(b Booking) []TimeKey {
	endH, endM := FromMinutes(ToMinutes(b.Hour, b.Minute) + effectiveEventDuration(b))
	return RangeToKeys(b.Hour, b.Minute, endH, endM)
}

// BuildGameSlotsState projects slot occupancy for one date. Every booking on
// the date with assigned slots marks each of them occupied across its play
// window. A correctly allocated set never has two bookings in one cell; the
// allocator enforces that before state is ever rebuilt.
func BuildGameSlotsState(bookings []Booking, date DateKey) GameSlotState {
	state := make(GameSlotState)

	for _, b := range bookings {
		if b.Date != date || len(b.AssignedSlots) == 0 {
			continue
		}

		for _, key := range gameWindowKeys(b) {
			cells, ok := state[key]
			if !ok {
				cells = make(map[SlotID]string)
				state[key] = cells
			}
			for _, slotID := range b.AssignedSlots {
				cells[slotID] = b.ID
			}
		}
	}

	return state
}

// BuildEventRoomsState projects room occupancy for one date. Only event
// bookings with an assigned room participate, and the room is held for the
// event's own duration, not the centered game window.
func BuildEventRoomsState(bookings []Booking, date DateKey) EventRoomState {
	state := make(EventRoomState)

	for _, b := range bookings {
		if b.Date != date || b.Type != BookingTypeEvent || b.AssignedRoom == 0 {
			continue
		}

		for _, key := range eventWindowKeys(b) {
			cells, ok := state[key]
			if !ok {
				cells = make(map[RoomID]string)
				state[key] = cells
			}
			cells[b.AssignedRoom] = b.ID
		}
	}

	return state
}

// BuildBookingAllocations re-derives each booking's Allocation from its
// stored slot/room assignments, detecting split (non-contiguous) slot runs.
func BuildBookingAllocations(bookings []Booking) map[string]Allocation {
	allocations := make(map[string]Allocation, len(bookings))

	for _, b := range bookings {
		var allocation Allocation

		if len(b.AssignedSlots) > 0 {
			allocation.SlotAllocation = deriveSlotAllocation(b.AssignedSlots)
		}

		if b.AssignedRoom != 0 {
			endH, endM := FromMinutes(ToMinutes(b.Hour, b.Minute) + effectiveEventDuration(b))
			allocation.RoomAllocation = &RoomAllocation{
				RoomID:       b.AssignedRoom,
				StartTimeKey: ToTimeKey(b.Hour, b.Minute),
				EndTimeKey:   ToTimeKey(endH, endM),
			}
		}

		allocations[b.ID] = allocation
	}

	return allocations
}

// deriveSlotAllocation sorts the assigned slots and checks contiguity. For a
// split allocation it counts the contiguous runs and records which run holds
// the lowest-numbered slot (1-indexed, runs scanned in ascending slot order).
func deriveSlotAllocation(assigned []SlotID) *SlotAllocation {
	sorted := make([]SlotID, len(assigned))
	copy(sorted, assigned)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	contiguous := true
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1]+1 {
			contiguous = false
			break
		}
	}

	if contiguous {
		return &SlotAllocation{Slots: assigned, IsSplit: false}
	}

	parts := 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1]+1 {
			parts++
		}
	}

	// Locate the run containing the lowest slot.
	lowest := sorted[0]
	index := 1
	run := 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1]+1 {
			run++
		}
		if sorted[i] == lowest {
			index = run
			break
		}
	}

	return &SlotAllocation{
		Slots:      assigned,
		IsSplit:    true,
		SplitParts: parts,
		SplitIndex: index,
	}
}

// BuildOccupancyState composes the three projections for one date. Call it
// once per computation; after any booking mutation, rebuild from scratch.
func BuildOccupancyState(bookings []Booking, date DateKey) *OccupancyState {
	return &OccupancyState{
		GameSlots:          BuildGameSlotsState(bookings, date),
		EventRooms:         BuildEventRoomsState(bookings, date),
		BookingAllocations: BuildBookingAllocations(bookings),
	}
}

// IsSlotFree reports whether a slot is free at one instant. A cell occupied
// by excludeBookingID counts as free, so edits never collide with themselves.
func (s *OccupancyState) IsSlotFree(slotID SlotID, key TimeKey, excludeBookingID string) bool {
	occupied, ok := s.GameSlots[key][slotID]
	if !ok {
		return true
	}
	return excludeBookingID != "" && occupied == excludeBookingID
}

// IsRoomFree reports whether a room is free at one instant.
func (s *OccupancyState) IsRoomFree(roomID RoomID, key TimeKey, excludeBookingID string) bool {
	occupied, ok := s.EventRooms[key][roomID]
	if !ok {
		return true
	}
	return excludeBookingID != "" && occupied == excludeBookingID
}

// AreSlotsFree reports whether every given slot is free at every given instant.
func (s *OccupancyState) AreSlotsFree(slotIDs []SlotID, keys []TimeKey, excludeBookingID string) bool {
	for _, key := range keys {
		for _, slotID := range slotIDs {
			if !s.IsSlotFree(slotID, key, excludeBookingID) {
				return false
			}
		}
	}
	return true
}

// IsRoomFreeForTimeRange reports whether a room is free at every given instant.
func (s *OccupancyState) IsRoomFreeForTimeRange(roomID RoomID, keys []TimeKey, excludeBookingID string) bool {
	for _, key := range keys {
		if !s.IsRoomFree(roomID, key, excludeBookingID) {
			return false
		}
	}
	return true
}
