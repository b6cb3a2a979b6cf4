package delete_patient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicService/internal/auth"
	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/service/patients"
	"github.com/m04kA/SMC-ClinicService/pkg/logger"
)

type fakeService struct {
	err error
	id  int64
}

func (f *fakeService) Delete(_ context.Context, _ domain.Actor, patientID int64) error {
	f.id = patientID
	return f.err
}

func newRequest(id string) *http.Request {
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/patients/"+id, nil)
	req = mux.SetURLVars(req, map[string]string{"patientId": id})
	session := &auth.Session{Actor: domain.Actor{ID: 1, Role: domain.RoleAdmin, HospitalID: 1}, TokenID: "t"}
	return req.WithContext(middleware.WithSession(req.Context(), session))
}

func TestHandler_Handle(t *testing.T) {
	svc := &fakeService{}
	rec := httptest.NewRecorder()

	NewHandler(svc, logger.NewNop()).Handle(rec, newRequest("5"))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(5), svc.id)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		err        error
		wantStatus int
	}{
		{name: "bad id", id: "abc", wantStatus: http.StatusBadRequest},
		{name: "not found", id: "5", err: patients.ErrPatientNotFound, wantStatus: http.StatusNotFound},
		{name: "has appointments", id: "5", err: patients.ErrPatientHasAppointments, wantStatus: http.StatusConflict},
		{name: "internal", id: "5", err: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&fakeService{err: tt.err}, logger.NewNop()).Handle(rec, newRequest(tt.id))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
