package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mymy770/activelaser/internal/domain"
	"github.com/mymy770/activelaser/internal/scheduler"
	createBooking "github.com/mymy770/activelaser/internal/usecase/create_booking"
)

type fakeUseCase struct {
	gotReq *createBooking.Request
	resp   *createBooking.Response
	err    error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.gotReq = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func post(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandleCreated(t *testing.T) {
	uc := &fakeUseCase{resp: &createBooking.Response{
		Success: true,
		Booking: &domain.Booking{
			ID:            "b1",
			BranchID:      1,
			Date:          "2026-04-03",
			Type:          scheduler.BookingTypeGame,
			Hour:          14,
			Participants:  12,
			AssignedSlots: []int{1, 2},
			Status:        domain.StatusConfirmed,
		},
	}}
	h := NewHandler(uc, nopLogger{})

	rec := post(t, h, `{"branchId":1,"date":"2026-04-03","time":"14:07","participants":12}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	// 14:07 snaps to the nearest grid line.
	require.NotNil(t, uc.gotReq)
	assert.Equal(t, 14, uc.gotReq.Hour)
	assert.Equal(t, 0, uc.gotReq.Minute)

	var body CreateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.NotNil(t, body.Booking)
	assert.Equal(t, "b1", body.Booking.ID)
	assert.Nil(t, body.Conflict)
}

func TestHandleConflictIs409WithDialogBody(t *testing.T) {
	uc := &fakeUseCase{resp: &createBooking.Response{
		Success: false,
		Conflict: &scheduler.Conflict{
			Type:    scheduler.ConflictNeedSurbookConfirm,
			Message: "Capacité insuffisante",
			Details: &scheduler.ConflictDetails{ExcessParticipants: 8},
		},
	}}
	h := NewHandler(uc, nopLogger{})

	rec := post(t, h, `{"branchId":1,"date":"2026-04-03","time":"14:00","participants":50}`)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var body CreateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Conflict)
	assert.Equal(t, "NEED_SURBOOK_CONFIRM", body.Conflict.Type)
	assert.Equal(t, "Surbooking nécessaire", body.Conflict.Title)
	assert.True(t, body.Conflict.RequiresConfirmation)
	assert.Equal(t, 8, body.Conflict.ExcessParticipants)
}

func TestHandleBadBody(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, nopLogger{})

	rec := post(t, h, `{"branchId":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleBadTime(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, nopLogger{})

	rec := post(t, h, `{"branchId":1,"date":"2026-04-03","time":"quatorze heures"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleInvalidInputError(t *testing.T) {
	h := NewHandler(&fakeUseCase{err: createBooking.ErrInvalidInput}, nopLogger{})

	rec := post(t, h, `{"branchId":1,"date":"2026-04-03","time":"14:00","participants":-3}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleOverlapError(t *testing.T) {
	h := NewHandler(&fakeUseCase{err: createBooking.ErrOverlapDetected}, nopLogger{})

	rec := post(t, h, `{"branchId":1,"date":"2026-04-03","time":"14:00","participants":6}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
