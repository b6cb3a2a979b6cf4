package get_available_slots

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicService/internal/auth"
	"github.com/m04kA/SMC-ClinicService/internal/availability"
	"github.com/m04kA/SMC-ClinicService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ClinicService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ClinicService/pkg/logger"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

type fakeUseCase struct {
	err error
	got *getAvailableSlots.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &getAvailableSlots.Response{
		Date:      req.Date,
		DoctorID:  req.DoctorID,
		Weekday:   domain.Monday,
		Available: true,
		Slots: []availability.Slot{
			{Start: "09:00", End: "09:15", DisplayStart: "09:00 am", DisplayEnd: "09:15 am"},
			{Start: "09:15", End: "09:30", DisplayStart: "09:15 am", DisplayEnd: "09:30 am"},
		},
		BookedSlots: []types.TimeString{"09:15"},
	}, nil
}

var actor = domain.Actor{ID: 3, Role: domain.RoleDoctor, HospitalID: 1}

func newRequest(doctorID, query string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/doctors/"+doctorID+"/available-slots?"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"doctorId": doctorID})
	return req.WithContext(middleware.WithSession(req.Context(), &auth.Session{Actor: actor, TokenID: "t"}))
}

func TestHandler_Handle(t *testing.T) {
	uc := &fakeUseCase{}
	rec := httptest.NewRecorder()

	NewHandler(uc, logger.NewNop()).Handle(rec, newRequest("7", "date=2026-05-04"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, actor, uc.got.Actor)
	assert.Equal(t, int64(7), uc.got.DoctorID)
	assert.Equal(t, time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC), uc.got.Date)

	var resp AvailableSlotsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "2026-05-04", resp.Date)
	assert.Equal(t, "Monday", resp.Weekday)
	assert.True(t, resp.Available)
	require.Len(t, resp.Slots, 2)
	assert.False(t, resp.Slots[0].Booked)
	assert.True(t, resp.Slots[1].Booked)
	assert.Equal(t, []string{"09:15"}, resp.BookedSlots)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		doctorID   string
		query      string
		err        error
		wantStatus int
	}{
		{name: "bad doctor id", doctorID: "x", query: "date=2026-05-04", wantStatus: http.StatusBadRequest},
		{name: "missing date", doctorID: "7", wantStatus: http.StatusBadRequest},
		{name: "bad date", doctorID: "7", query: "date=04.05.2026", wantStatus: http.StatusBadRequest},
		{name: "doctor not found", doctorID: "7", query: "date=2026-05-04", err: getAvailableSlots.ErrDoctorNotFound, wantStatus: http.StatusNotFound},
		{name: "colleague slots", doctorID: "7", query: "date=2026-05-04", err: getAvailableSlots.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "internal", doctorID: "7", query: "date=2026-05-04", err: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop()).Handle(rec, newRequest(tt.doctorID, tt.query))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
