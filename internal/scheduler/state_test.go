package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDate = DateKey("2026-03-14")

func gameBooking(id string, hour, minute, duration int, slots ...SlotID) Booking {
	return Booking{
		ID:              id,
		Type:            BookingTypeGame,
		Date:            testDate,
		Hour:            hour,
		Minute:          minute,
		DurationMinutes: duration,
		AssignedSlots:   slots,
	}
}

func eventBooking(id string, hour, minute, duration int, room RoomID, slots ...SlotID) Booking {
	return Booking{
		ID:              id,
		Type:            BookingTypeEvent,
		Date:            testDate,
		Hour:            hour,
		Minute:          minute,
		DurationMinutes: duration,
		AssignedSlots:   slots,
		AssignedRoom:    room,
	}
}

func TestBuildGameSlotsState(t *testing.T) {
	bookings := []Booking{
		gameBooking("b1", 18, 0, 60, 1, 2),
		gameBooking("b2", 18, 0, 60, 3),
		gameBooking("other-day", 18, 0, 60, 1),
		{ID: "no-slots", Type: BookingTypeGame, Date: testDate, Hour: 19, DurationMinutes: 60},
	}
	bookings[2].Date = "2026-03-15"

	state := BuildGameSlotsState(bookings, testDate)

	for _, key := range []TimeKey{"18:00", "18:15", "18:30", "18:45"} {
		assert.Equal(t, "b1", state[key][1], "key %s", key)
		assert.Equal(t, "b1", state[key][2], "key %s", key)
		assert.Equal(t, "b2", state[key][3], "key %s", key)
	}

	// Window is half-open: 19:00 is free again.
	_, occupied := state["19:00"][1]
	assert.False(t, occupied)
}

func TestBuildGameSlotsStateCentersEventGames(t *testing.T) {
	// A 120-minute event books its slots only for the centered 60-minute game.
	b := eventBooking("ev1", 14, 0, 120, 1, 5, 6)

	state := BuildGameSlotsState([]Booking{b}, testDate)

	_, at1400 := state["14:00"][5]
	assert.False(t, at1400)
	assert.Equal(t, "ev1", state["14:30"][5])
	assert.Equal(t, "ev1", state["15:15"][6])
	_, at1530 := state["15:30"][5]
	assert.False(t, at1530)
}

func TestBuildEventRoomsState(t *testing.T) {
	// A stray room id on a game-type booking must be ignored.
	strayGame := gameBooking("g1", 14, 0, 60, 1)
	strayGame.AssignedRoom = 3

	bookings := []Booking{
		eventBooking("ev1", 14, 0, 120, 2, 5, 6),
		strayGame,
	}

	state := BuildEventRoomsState(bookings, testDate)
	assert.Empty(t, state["14:00"][3])

	// Room held for the full event duration, not the centered game hour.
	for _, key := range []TimeKey{"14:00", "14:45", "15:45"} {
		assert.Equal(t, "ev1", state[key][2], "key %s", key)
	}
	_, at1600 := state["16:00"][2]
	assert.False(t, at1600)
}

func TestStatesNeverDoubleClaim(t *testing.T) {
	// A correctly allocated set maps every (timeKey, resource) cell to at
	// most one booking id.
	bookings := []Booking{
		gameBooking("b1", 18, 0, 60, 1, 2),
		gameBooking("b2", 18, 0, 60, 3, 4),
		gameBooking("b3", 19, 0, 60, 1, 2),
		eventBooking("ev1", 18, 0, 120, 1, 10),
		eventBooking("ev2", 18, 0, 120, 2, 11),
	}

	assert.Nil(t, CheckConsistency(bookings, testDate))
}

func TestBuildBookingAllocations(t *testing.T) {
	testCases := []struct {
		name      string
		slots     []SlotID
		wantSplit bool
		wantParts int
		wantIndex int
	}{
		{name: "contiguous run", slots: []SlotID{3, 4, 5}, wantSplit: false},
		{name: "single slot", slots: []SlotID{7}, wantSplit: false},
		{name: "two runs", slots: []SlotID{1, 2, 5, 6}, wantSplit: true, wantParts: 2, wantIndex: 1},
		{name: "three runs", slots: []SlotID{1, 2, 5, 6, 9}, wantSplit: true, wantParts: 3, wantIndex: 1},
		{name: "unsorted input", slots: []SlotID{6, 1, 5, 2}, wantSplit: true, wantParts: 2, wantIndex: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := gameBooking("b1", 18, 0, 60, tc.slots...)
			allocations := BuildBookingAllocations([]Booking{b})

			alloc, ok := allocations["b1"]
			require.True(t, ok)
			require.NotNil(t, alloc.SlotAllocation)
			assert.Equal(t, tc.wantSplit, alloc.SlotAllocation.IsSplit)
			assert.Equal(t, tc.wantParts, alloc.SlotAllocation.SplitParts)
			assert.Equal(t, tc.wantIndex, alloc.SlotAllocation.SplitIndex)
		})
	}
}

func TestBuildBookingAllocationsRoomWindow(t *testing.T) {
	b := eventBooking("ev1", 14, 0, 120, 3, 5)
	allocations := BuildBookingAllocations([]Booking{b})

	alloc := allocations["ev1"]
	require.NotNil(t, alloc.RoomAllocation)
	assert.Equal(t, RoomID(3), alloc.RoomAllocation.RoomID)
	// Room window uses the event's own duration, not the centered game hour.
	assert.Equal(t, TimeKey("14:00"), alloc.RoomAllocation.StartTimeKey)
	assert.Equal(t, TimeKey("16:00"), alloc.RoomAllocation.EndTimeKey)
}

func TestOccupancyQueries(t *testing.T) {
	state := BuildOccupancyState([]Booking{
		gameBooking("b1", 18, 0, 60, 1, 2),
		eventBooking("ev1", 18, 0, 120, 1, 10),
	}, testDate)

	assert.False(t, state.IsSlotFree(1, "18:15", ""))
	assert.True(t, state.IsSlotFree(3, "18:15", ""))
	assert.True(t, state.IsSlotFree(1, "19:00", ""))

	assert.False(t, state.IsRoomFree(1, "19:30", ""))
	assert.True(t, state.IsRoomFree(2, "19:30", ""))

	assert.False(t, state.AreSlotsFree([]SlotID{2, 3}, []TimeKey{"18:00"}, ""))
	assert.True(t, state.AreSlotsFree([]SlotID{3, 4}, []TimeKey{"18:00", "18:45"}, ""))

	assert.False(t, state.IsRoomFreeForTimeRange(1, []TimeKey{"18:00", "19:45"}, ""))
	assert.True(t, state.IsRoomFreeForTimeRange(1, []TimeKey{"20:00"}, ""))
}

func TestOccupancyQueriesExcludeSelf(t *testing.T) {
	// Editing a booking must never conflict with its own prior allocation.
	state := BuildOccupancyState([]Booking{
		gameBooking("b1", 18, 0, 60, 1, 2),
		eventBooking("ev1", 18, 0, 120, 1),
	}, testDate)

	assert.True(t, state.IsSlotFree(1, "18:15", "b1"))
	assert.False(t, state.IsSlotFree(1, "18:15", "someone-else"))
	assert.True(t, state.AreSlotsFree([]SlotID{1, 2}, []TimeKey{"18:00", "18:45"}, "b1"))

	assert.True(t, state.IsRoomFree(1, "18:30", "ev1"))
	assert.True(t, state.IsRoomFreeForTimeRange(1, []TimeKey{"18:00", "19:45"}, "ev1"))
}
