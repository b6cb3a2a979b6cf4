package get_patient_history

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicService/internal/auth"
	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/service/patients"
	"github.com/m04kA/SMC-ClinicService/internal/service/patients/models"
	"github.com/m04kA/SMC-ClinicService/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) History(_ context.Context, _ domain.Actor, patientID int64) (*models.HistoryResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.HistoryResponse{
		Patient:      models.PatientResponse{ID: patientID, Name: "Jane Roe"},
		Appointments: []models.HistoryAppointment{{ID: 11, Date: "2026-05-04", TimeSlot: "09:00", Status: "Completed"}},
		Prescriptions: []models.HistoryPrescription{{
			ID:        3,
			Diagnosis: "Flu",
			Medicines: []domain.Medicine{{Name: "Paracetamol", TimeOfDay: []domain.TimeOfDay{domain.Morning}}},
		}},
	}, nil
}

func newRequest(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/doctor/patients/"+id+"/history", nil)
	req = mux.SetURLVars(req, map[string]string{"patientId": id})
	session := &auth.Session{Actor: domain.Actor{ID: 7, Role: domain.RoleDoctor, HospitalID: 1}, TokenID: "t"}
	return req.WithContext(middleware.WithSession(req.Context(), session))
}

func TestHandler_Handle(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&fakeService{}, logger.NewNop()).Handle(rec, newRequest("5"))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.HistoryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(5), resp.Patient.ID)
	require.Len(t, resp.Prescriptions, 1)
	assert.Equal(t, []domain.TimeOfDay{domain.Morning}, resp.Prescriptions[0].Medicines[0].TimeOfDay)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		err        error
		wantStatus int
	}{
		{name: "bad id", id: "0", wantStatus: http.StatusBadRequest},
		{name: "not found", id: "5", err: patients.ErrPatientNotFound, wantStatus: http.StatusNotFound},
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
