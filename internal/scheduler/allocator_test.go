package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func branchConfig() GridConfig {
	return GridConfig{
		TotalSlots:     14,
		PlayersPerSlot: 6,
		Rooms: []RoomConfig{
			{ID: 1, Name: "Salle 1", MaxCapacity: 20},
			{ID: 2, Name: "Salle 2", MaxCapacity: 25},
			{ID: 3, Name: "Salle 3", MaxCapacity: 50},
			{ID: 4, Name: "Salle 4", MaxCapacity: 50},
		},
	}
}

func emptyState() *OccupancyState {
	return BuildOccupancyState(nil, testDate)
}

func gameParams(participants int) AllocationParams {
	return AllocationParams{
		Date:            testDate,
		Hour:            18,
		Minute:          0,
		Participants:    participants,
		Type:            BookingTypeGame,
		DurationMinutes: 60,
	}
}

func eventParams(participants int) AllocationParams {
	return AllocationParams{
		Date:            testDate,
		Hour:            18,
		Minute:          0,
		Participants:    participants,
		Type:            BookingTypeEvent,
		DurationMinutes: 120,
	}
}

func TestSlotsNeeded(t *testing.T) {
	cfg := branchConfig()
	assert.Equal(t, 0, SlotsNeeded(0, cfg))
	assert.Equal(t, 1, SlotsNeeded(6, cfg))
	assert.Equal(t, 2, SlotsNeeded(7, cfg))
	assert.Equal(t, 4, SlotsNeeded(20, cfg))
	// Capped at the branch slot count.
	assert.Equal(t, 14, SlotsNeeded(500, cfg))
}

func TestAllocateGameOnEmptyGrid(t *testing.T) {
	// 20 participants need ceil(20/6)=4 slots; lowest free ids win.
	result := Allocate(gameParams(20), emptyState(), branchConfig())

	require.True(t, result.Success)
	require.NotNil(t, result.Allocation.SlotAllocation)
	assert.Equal(t, []SlotID{1, 2, 3, 4}, result.Allocation.SlotAllocation.Slots)
	assert.False(t, result.Allocation.SlotAllocation.IsSplit)
	assert.Nil(t, result.Allocation.RoomAllocation)
	assert.Nil(t, result.Conflict)
}

func TestAllocateGameAroundOccupiedSlots(t *testing.T) {
	// Slots 1-9 taken 18:00-19:00; 5 remain free, 4 needed.
	occupied := make([]Booking, 0, 9)
	for id := SlotID(1); id <= 9; id++ {
		occupied = append(occupied, gameBooking("taken", 18, 0, 60, id))
	}
	state := BuildOccupancyState(occupied, testDate)

	result := Allocate(gameParams(20), state, branchConfig())

	require.True(t, result.Success)
	assert.Equal(t, []SlotID{10, 11, 12, 13}, result.Allocation.SlotAllocation.Slots)
}

func TestAllocateRequiresWholeWindow(t *testing.T) {
	// Slot free at 18:00 but taken at 18:30 cannot serve an 18:00-19:00 game.
	state := BuildOccupancyState([]Booking{
		gameBooking("late", 18, 30, 30, 1),
	}, testDate)

	result := Allocate(gameParams(6), state, branchConfig())

	require.True(t, result.Success)
	assert.Equal(t, []SlotID{2}, result.Allocation.SlotAllocation.Slots)
}

func TestAllocateSurbookConfirmNeeded(t *testing.T) {
	// 13 of 14 slots taken, 4 needed: 1 free slot covers 6 of 20 people.
	occupied := make([]Booking, 0, 13)
	for id := SlotID(1); id <= 13; id++ {
		occupied = append(occupied, gameBooking("taken", 18, 0, 60, id))
	}
	state := BuildOccupancyState(occupied, testDate)

	result := Allocate(gameParams(20), state, branchConfig())

	require.False(t, result.Success)
	require.NotNil(t, result.Conflict)
	assert.Equal(t, ConflictNeedSurbookConfirm, result.Conflict.Type)
	require.NotNil(t, result.Conflict.Details)
	assert.Equal(t, 1, result.Conflict.Details.AvailableSlots)
	assert.Equal(t, 4, result.Conflict.Details.NeededSlots)
	assert.Equal(t, 14, result.Conflict.Details.ExcessParticipants)

	// Confirmed override takes the free slot as-is, without re-searching.
	confirmed := AllocateWithOverride(gameParams(20), state, branchConfig(), Override{AllowSurbook: true})
	require.True(t, confirmed.Success)
	assert.Equal(t, []SlotID{14}, confirmed.Allocation.SlotAllocation.Slots)
}

func TestAllocateFullIsNotConfirmable(t *testing.T) {
	occupied := make([]Booking, 0, 14)
	for id := SlotID(1); id <= 14; id++ {
		occupied = append(occupied, gameBooking("taken", 18, 0, 60, id))
	}
	state := BuildOccupancyState(occupied, testDate)

	result := Allocate(gameParams(6), state, branchConfig())
	require.False(t, result.Success)
	assert.Equal(t, ConflictFull, result.Conflict.Type)
	assert.False(t, RequiresConfirmation(*result.Conflict))

	// FULL stays fatal even with an override: there is nothing to grant.
	overridden := AllocateWithOverride(gameParams(6), state, branchConfig(), Override{AllowSurbook: true})
	require.False(t, overridden.Success)
	assert.Equal(t, ConflictFull, overridden.Conflict.Type)
}

func TestAllocateEventPicksSufficientRoom(t *testing.T) {
	// All rooms free, capacities [20,25,50,50], 35 people: rooms 1 and 2 are
	// undersized, room 3 is the first free room that fits.
	result := Allocate(eventParams(35), emptyState(), branchConfig())

	require.True(t, result.Success)
	require.NotNil(t, result.Allocation.RoomAllocation)
	assert.Equal(t, RoomID(3), result.Allocation.RoomAllocation.RoomID)
	assert.Equal(t, TimeKey("18:00"), result.Allocation.RoomAllocation.StartTimeKey)
	assert.Equal(t, TimeKey("20:00"), result.Allocation.RoomAllocation.EndTimeKey)

	// The embedded game window is centered inside the two-hour event.
	require.NotNil(t, result.Allocation.SlotAllocation)
	assert.Equal(t, []SlotID{1, 2, 3, 4, 5, 6}, result.Allocation.SlotAllocation.Slots)
}

func TestAllocateEventRoomOvercapConfirm(t *testing.T) {
	cfg := branchConfig()
	// Rooms 3 and 4 taken: only undersized rooms remain for 35 people.
	state := BuildOccupancyState([]Booking{
		eventBooking("ev-a", 18, 0, 120, 3),
		eventBooking("ev-b", 18, 0, 120, 4),
	}, testDate)

	result := Allocate(eventParams(35), state, cfg)

	require.False(t, result.Success)
	assert.Equal(t, ConflictNeedRoomOvercapConfirm, result.Conflict.Type)
	require.NotNil(t, result.Conflict.Details)
	// First free room (lowest id) is proposed for the overrun.
	assert.Equal(t, RoomID(1), result.Conflict.Details.RoomID)
	assert.Equal(t, 20, result.Conflict.Details.RoomCapacity)
	assert.Equal(t, 15, result.Conflict.Details.ExcessParticipants)

	confirmed := AllocateWithOverride(eventParams(35), state, cfg, Override{AllowRoomOvercap: true})
	require.True(t, confirmed.Success)
	assert.Equal(t, RoomID(1), confirmed.Allocation.RoomAllocation.RoomID)
}

func TestAllocateEventNoRoom(t *testing.T) {
	state := BuildOccupancyState([]Booking{
		eventBooking("ev-a", 18, 0, 120, 1),
		eventBooking("ev-b", 18, 0, 120, 2),
		eventBooking("ev-c", 18, 0, 120, 3),
		eventBooking("ev-d", 18, 0, 120, 4),
	}, testDate)

	result := Allocate(eventParams(10), state, branchConfig())

	require.False(t, result.Success)
	assert.Equal(t, ConflictNoRoom, result.Conflict.Type)
}

func TestAllocateEventUsesOwnDurationForRoom(t *testing.T) {
	// Rooms busy 19:00-19:30 block an 18:00 two-hour event: the room is held
	// for the full event window, not just the centered game hour.
	state := BuildOccupancyState([]Booking{
		eventBooking("ev-a", 19, 0, 30, 1),
		eventBooking("ev-b", 19, 0, 30, 2),
		eventBooking("ev-c", 19, 0, 30, 3),
		eventBooking("ev-d", 19, 0, 30, 4),
	}, testDate)

	result := Allocate(eventParams(10), state, branchConfig())
	require.False(t, result.Success)
	assert.Equal(t, ConflictNoRoom, result.Conflict.Type)
}

func TestAllocateZeroParticipants(t *testing.T) {
	// Degenerate game: zero slots, clean success.
	game := Allocate(gameParams(0), emptyState(), branchConfig())
	require.True(t, game.Success)
	assert.Nil(t, game.Allocation.SlotAllocation)

	// An event with zero participants still takes a room.
	event := Allocate(eventParams(0), emptyState(), branchConfig())
	require.True(t, event.Success)
	assert.Nil(t, event.Allocation.SlotAllocation)
	require.NotNil(t, event.Allocation.RoomAllocation)
	assert.Equal(t, RoomID(1), event.Allocation.RoomAllocation.RoomID)
}

func TestAllocateGameNeverGetsRoom(t *testing.T) {
	for _, participants := range []int{0, 6, 20, 84} {
		result := Allocate(gameParams(participants), emptyState(), branchConfig())
		require.True(t, result.Success)
		assert.Nil(t, result.Allocation.RoomAllocation, "participants=%d", participants)
	}
}

func TestAllocateIsDeterministic(t *testing.T) {
	state := BuildOccupancyState([]Booking{
		gameBooking("taken", 18, 0, 60, 2, 5),
	}, testDate)

	first := Allocate(gameParams(18), state, branchConfig())
	second := Allocate(gameParams(18), state, branchConfig())

	require.True(t, first.Success)
	require.True(t, second.Success)
	assert.Equal(t, first.Allocation.SlotAllocation.Slots, second.Allocation.SlotAllocation.Slots)
	assert.Equal(t, []SlotID{1, 3, 4}, first.Allocation.SlotAllocation.Slots)
}

func TestAllocateExcludesEditedBooking(t *testing.T) {
	state := BuildOccupancyState([]Booking{
		gameBooking("editing", 18, 0, 60, 1, 2, 3, 4),
	}, testDate)

	params := gameParams(20)
	params.ExcludeBookingID = "editing"

	result := Allocate(params, state, branchConfig())
	require.True(t, result.Success)
	assert.Equal(t, []SlotID{1, 2, 3, 4}, result.Allocation.SlotAllocation.Slots)
}

func TestCheckRoomCapacity(t *testing.T) {
	room := RoomConfig{ID: 2, Name: "Salle 2", MaxCapacity: 25}

	assert.Nil(t, CheckRoomCapacity(room, 25))

	conflict := CheckRoomCapacity(room, 30)
	require.NotNil(t, conflict)
	assert.Equal(t, ConflictRoomOvercap, conflict.Type)
	assert.Equal(t, 5, conflict.Details.ExcessParticipants)
	// Report-only classification never asks for confirmation.
	assert.False(t, RequiresConfirmation(*conflict))
}

func TestCheckConsistency(t *testing.T) {
	clean := []Booking{
		gameBooking("b1", 18, 0, 60, 1, 2),
		gameBooking("b2", 18, 0, 60, 3),
		gameBooking("b3", 19, 0, 60, 1),
	}
	assert.Nil(t, CheckConsistency(clean, testDate))

	slotClash := append(clean, gameBooking("b4", 18, 30, 60, 2))
	conflict := CheckConsistency(slotClash, testDate)
	require.NotNil(t, conflict)
	assert.Equal(t, ConflictOverlapDetected, conflict.Type)

	roomClash := []Booking{
		eventBooking("ev1", 18, 0, 120, 1),
		eventBooking("ev2", 19, 0, 120, 1),
	}
	conflict = CheckConsistency(roomClash, testDate)
	require.NotNil(t, conflict)
	assert.Equal(t, ConflictOverlapDetected, conflict.Type)

	// Overlaps on another date are invisible for this date's check.
	assert.Nil(t, CheckConsistency(roomClash, "2026-03-15"))
}
