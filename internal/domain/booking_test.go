package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mymy770/activelaser/internal/scheduler"
	"github.com/mymy770/activelaser/pkg/ptr"
)

func TestStatusTransitions(t *testing.T) {
	testCases := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{StatusCreated, StatusAllocated, true},
		{StatusCreated, StatusConfirmed, false},
		{StatusAllocated, StatusConfirmed, true},
		{StatusAllocated, StatusSurbookConfirmed, true},
		{StatusAllocated, StatusRoomOvercapConfirmed, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusSurbookConfirmed, StatusCancelled, true},
		{StatusCancelled, StatusConfirmed, false},
		{StatusConfirmed, StatusAllocated, false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestClassifyEventType(t *testing.T) {
	// Blank, absent or explicitly "game" is a game; anything else an event.
	assert.Equal(t, scheduler.BookingTypeGame, ClassifyEventType(nil))
	assert.Equal(t, scheduler.BookingTypeGame, ClassifyEventType(ptr.Ptr("")))
	assert.Equal(t, scheduler.BookingTypeGame, ClassifyEventType(ptr.Ptr("   ")))
	assert.Equal(t, scheduler.BookingTypeGame, ClassifyEventType(ptr.Ptr("game")))
	assert.Equal(t, scheduler.BookingTypeEvent, ClassifyEventType(ptr.Ptr("anniversaire")))
	assert.Equal(t, scheduler.BookingTypeEvent, ClassifyEventType(ptr.Ptr("corporate")))
}

func TestToSchedulerBookingStripsRoomFromGames(t *testing.T) {
	b := &Booking{
		ID:            "b1",
		Type:          scheduler.BookingTypeGame,
		Date:          "2026-03-14",
		Hour:          18,
		Participants:  12,
		AssignedSlots: []int{1, 2},
		AssignedRoom:  ptr.Ptr(3), // stray value from a manual edit
		Status:        StatusConfirmed,
	}

	sb := b.ToSchedulerBooking()
	assert.Equal(t, scheduler.RoomID(0), sb.AssignedRoom)
	assert.Equal(t, []scheduler.SlotID{1, 2}, sb.AssignedSlots)
}

func TestToSchedulerBookingsSkipsCancelled(t *testing.T) {
	bookings := []*Booking{
		{ID: "live", Type: scheduler.BookingTypeGame, Status: StatusConfirmed},
		{ID: "gone", Type: scheduler.BookingTypeGame, Status: StatusCancelled},
	}

	converted := ToSchedulerBookings(bookings)
	assert.Len(t, converted, 1)
	assert.Equal(t, "live", converted[0].ID)
}

func TestDefaultBranchScheduleConfig(t *testing.T) {
	cfg := DefaultBranchScheduleConfig(7)

	assert.Equal(t, int64(7), cfg.BranchID)
	assert.Equal(t, 14, cfg.TotalSlots)
	assert.Equal(t, 6, cfg.PlayersPerSlot)
	assert.Len(t, cfg.Rooms, 4)
	assert.Equal(t, 84, cfg.ToGridConfig().TotalCapacity())

	room := cfg.RoomByID(2)
	assert.NotNil(t, room)
	assert.Equal(t, 25, room.MaxCapacity)
	assert.Nil(t, cfg.RoomByID(99))
}
