package update_booking

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mymy770/activelaser/internal/domain"
	storage "github.com/mymy770/activelaser/internal/infra/storage/booking"
	"github.com/mymy770/activelaser/internal/infra/storage/branchconfig"
	"github.com/mymy770/activelaser/internal/scheduler"
	"github.com/mymy770/activelaser/pkg/ptr"
)

const testDate = "2026-04-03"

type fakeBookingRepo struct {
	byID     map[string]*domain.Booking
	bookings []*domain.Booking
	updated  *domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, storage.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByBranchAndDate(_ context.Context, _ int64, _ string, _ bool) ([]*domain.Booking, error) {
	return f.bookings, nil
}

func (f *fakeBookingRepo) Update(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.updated = b
	return b, nil
}

type fakeConfigRepo struct{}

func (fakeConfigRepo) GetByBranchID(_ context.Context, _ int64) (*domain.BranchScheduleConfig, error) {
	return nil, branchconfig.ErrConfigNotFound
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeMetrics struct{}

func (fakeMetrics) ObserveAllocation(string) {}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(repo *fakeBookingRepo) *UseCase {
	return NewUseCase(repo, fakeConfigRepo{}, fakeTxManager{}, fakeMetrics{}, nopLogger{})
}

func confirmedGame(id string, hour, participants int, slots ...int) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		BranchID:        1,
		Date:            testDate,
		Type:            scheduler.BookingTypeGame,
		Hour:            hour,
		DurationMinutes: 60,
		Participants:    participants,
		AssignedSlots:   slots,
		Status:          domain.StatusConfirmed,
	}
}

func TestExecuteMovesBookingAndReallocates(t *testing.T) {
	id := uuid.NewString()
	current := confirmedGame(id, 14, 12, 1, 2)
	repo := &fakeBookingRepo{
		byID:     map[string]*domain.Booking{id: current},
		bookings: []*domain.Booking{current},
	}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:    id,
		Date:         testDate,
		Hour:         16,
		Participants: 12,
	})
	require.NoError(t, err)
	require.True(t, resp.Success)

	b := resp.Booking
	assert.Equal(t, 16, b.Hour)
	assert.Equal(t, []int{1, 2}, b.AssignedSlots)
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	assert.Same(t, b, repo.updated)
}

func TestExecuteSelfExclusionKeepsOwnSlots(t *testing.T) {
	// Every other slot is taken; the edit keeps the same hour, so without
	// self-exclusion the booking would collide with itself.
	id := uuid.NewString()
	current := confirmedGame(id, 14, 12, 1, 2)
	stored := []*domain.Booking{current}
	for i := 3; i <= 14; i++ {
		stored = append(stored, confirmedGame(uuid.NewString(), 14, 6, i))
	}
	repo := &fakeBookingRepo{
		byID:     map[string]*domain.Booking{id: current},
		bookings: stored,
	}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:    id,
		Date:         testDate,
		Hour:         14,
		Participants: 10,
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.Equal(t, []int{1, 2}, resp.Booking.AssignedSlots)
}

func TestExecuteConflictLeavesBookingUntouched(t *testing.T) {
	id := uuid.NewString()
	current := confirmedGame(id, 14, 6, 1)
	stored := []*domain.Booking{current}
	for i := 2; i <= 14; i++ {
		stored = append(stored, confirmedGame(uuid.NewString(), 16, 6, i))
	}
	// Slot 1 is also taken at 16:00 by another booking.
	stored = append(stored, confirmedGame(uuid.NewString(), 16, 6, 1))
	repo := &fakeBookingRepo{
		byID:     map[string]*domain.Booking{id: current},
		bookings: stored,
	}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:    id,
		Date:         testDate,
		Hour:         16,
		Participants: 6,
	})
	require.NoError(t, err)
	require.False(t, resp.Success)
	assert.Equal(t, scheduler.ConflictFull, resp.Conflict.Type)
	assert.Nil(t, repo.updated)
}

func TestExecuteNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{byID: map[string]*domain.Booking{}})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: uuid.NewString(),
		Date:      testDate,
		Hour:      14,
	})
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecuteCancelledBookingNotEditable(t *testing.T) {
	id := uuid.NewString()
	current := confirmedGame(id, 14, 6, 1)
	current.Status = domain.StatusCancelled
	uc := newTestUseCase(&fakeBookingRepo{byID: map[string]*domain.Booking{id: current}})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: id,
		Date:      testDate,
		Hour:      15,
	})
	require.ErrorIs(t, err, ErrBookingNotEditable)
}

func TestExecuteExceptionFlagsRecomputed(t *testing.T) {
	// The stored booking carries a confirmed surbooking; shrinking the
	// headcount must clear it rather than carry it over.
	id := uuid.NewString()
	current := confirmedGame(id, 14, 20, 1)
	current.Surbooked = true
	current.SurbookedParticipants = 14
	current.Status = domain.StatusSurbookConfirmed
	repo := &fakeBookingRepo{
		byID:     map[string]*domain.Booking{id: current},
		bookings: []*domain.Booking{current},
	}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:    id,
		Date:         testDate,
		Hour:         14,
		Participants: 6,
	})
	require.NoError(t, err)
	require.True(t, resp.Success)

	b := resp.Booking
	assert.False(t, b.Surbooked)
	assert.Zero(t, b.SurbookedParticipants)
	assert.Equal(t, domain.StatusConfirmed, b.Status)
}

func TestExecuteInvalidBookingID(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: "not-a-uuid",
		Date:      testDate,
		Hour:      14,
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecuteTypeSwitchGameToEvent(t *testing.T) {
	id := uuid.NewString()
	current := confirmedGame(id, 14, 12, 1, 2)
	repo := &fakeBookingRepo{
		byID:     map[string]*domain.Booking{id: current},
		bookings: []*domain.Booking{current},
	}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:    id,
		Date:         testDate,
		Hour:         14,
		EventType:    ptr.Ptr("anniversaire"),
		Participants: 12,
	})
	require.NoError(t, err)
	require.True(t, resp.Success)

	b := resp.Booking
	assert.Equal(t, scheduler.BookingTypeEvent, b.Type)
	assert.Equal(t, domain.DefaultEventDurationMinutes, b.DurationMinutes)
	require.NotNil(t, b.AssignedRoom)
	assert.Equal(t, 1, *b.AssignedRoom)
}
