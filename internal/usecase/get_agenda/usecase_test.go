package get_agenda

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mymy770/activelaser/internal/domain"
	"github.com/mymy770/activelaser/internal/infra/storage/branchconfig"
	"github.com/mymy770/activelaser/internal/scheduler"
	"github.com/mymy770/activelaser/pkg/ptr"
)

const testDate = "2026-04-03"

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetByBranchAndDate(_ context.Context, _ int64, _ string, _ bool) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeConfigRepo struct{}

func (fakeConfigRepo) GetByBranchID(_ context.Context, _ int64) (*domain.BranchScheduleConfig, error) {
	return nil, branchconfig.ErrConfigNotFound
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(repo *fakeBookingRepo) *UseCase {
	return NewUseCase(repo, fakeConfigRepo{}, nopLogger{})
}

func TestExecuteGridWindowAndLabels(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		BranchID: 1,
		Date:     testDate,
		FromHour: 9,
		ToHour:   11,
	})
	require.NoError(t, err)

	require.Len(t, resp.Grid, 8)
	assert.Equal(t, scheduler.TimeKey("09:00"), resp.Grid[0].Key)
	assert.Equal(t, "09:00", resp.Grid[0].Label)
	assert.Empty(t, resp.Grid[1].Label) // 09:15
	assert.Equal(t, "09:30", resp.Grid[2].Label)
	assert.Equal(t, scheduler.TimeKey("10:45"), resp.Grid[7].Key)
}

func TestExecuteDefaultWindow(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{})

	resp, err := uc.Execute(context.Background(), &Request{BranchID: 1, Date: testDate})
	require.NoError(t, err)

	// 09:00 to 24:00 at 15-minute steps.
	assert.Len(t, resp.Grid, 15*4)
	assert.Equal(t, scheduler.TimeKey("09:00"), resp.Grid[0].Key)
	assert.Equal(t, scheduler.TimeKey("23:45"), resp.Grid[len(resp.Grid)-1].Key)
}

func TestExecuteAnnotatesBookings(t *testing.T) {
	split := &domain.Booking{
		ID:              "game-1",
		BranchID:        1,
		Date:            testDate,
		Type:            scheduler.BookingTypeGame,
		Hour:            14,
		DurationMinutes: 60,
		Participants:    18,
		AssignedSlots:   []int{1, 2, 5},
		Status:          domain.StatusConfirmed,
	}
	surbooked := &domain.Booking{
		ID:                    "game-2",
		BranchID:              1,
		Date:                  testDate,
		Type:                  scheduler.BookingTypeGame,
		Hour:                  16,
		DurationMinutes:       60,
		Participants:          20,
		AssignedSlots:         []int{14},
		Surbooked:             true,
		SurbookedParticipants: 14,
		Status:                domain.StatusSurbookConfirmed,
	}
	crowdedEvent := &domain.Booking{
		ID:              "evt-1",
		BranchID:        1,
		Date:            testDate,
		Type:            scheduler.BookingTypeEvent,
		Hour:            18,
		DurationMinutes: 120,
		Participants:    30,
		AssignedSlots:   []int{6, 7, 8, 9, 10},
		AssignedRoom:    ptr.Ptr(2),
		Status:          domain.StatusConfirmed,
	}
	cancelled := &domain.Booking{
		ID:       "gone",
		BranchID: 1,
		Date:     testDate,
		Type:     scheduler.BookingTypeGame,
		Hour:     14,
		Status:   domain.StatusCancelled,
	}

	uc := newTestUseCase(&fakeBookingRepo{bookings: []*domain.Booking{split, surbooked, crowdedEvent, cancelled}})

	resp, err := uc.Execute(context.Background(), &Request{BranchID: 1, Date: testDate})
	require.NoError(t, err)

	require.Len(t, resp.Bookings, 3)
	byID := make(map[string]BookingView, len(resp.Bookings))
	for _, view := range resp.Bookings {
		byID[view.ID] = view
	}

	splitView := byID["game-1"]
	assert.True(t, splitView.IsSplit)
	assert.Equal(t, 2, splitView.SplitParts)
	assert.Equal(t, 1, splitView.SplitIndex)
	assert.Empty(t, splitView.ExceptionMessage)

	surbookedView := byID["game-2"]
	assert.Equal(t, "+14", surbookedView.SurbookLabel)
	assert.Equal(t, "Surbooking: +14 personnes", surbookedView.ExceptionMessage)

	eventView := byID["evt-1"]
	assert.Equal(t, "Salle 2", eventView.RoomName)
	assert.Equal(t, scheduler.TimeKey("18:00"), eventView.RoomStartKey)
	assert.Equal(t, scheduler.TimeKey("20:00"), eventView.RoomEndKey)
	// 30 people in a 25-person room: report-only warning, no exception flag.
	assert.Contains(t, eventView.RoomCapacityWarning, "+5")
	assert.Empty(t, eventView.ExceptionMessage)

	// Occupancy projections carry the same placements.
	assert.Equal(t, "game-1", resp.GameSlots["14:00"][scheduler.SlotID(5)])
	assert.Equal(t, "evt-1", resp.EventRooms["19:45"][scheduler.RoomID(2)])
	_, cancelledPresent := byID["gone"]
	assert.False(t, cancelledPresent)
}

func TestExecuteValidation(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{})

	tests := []struct {
		name string
		req  Request
	}{
		{"bad branch", Request{BranchID: 0, Date: testDate}},
		{"bad date", Request{BranchID: 1, Date: "03/04/2026"}},
		{"inverted window", Request{BranchID: 1, Date: testDate, FromHour: 18, ToHour: 10}},
		{"window too late", Request{BranchID: 1, Date: testDate, FromHour: 9, ToHour: 31}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
