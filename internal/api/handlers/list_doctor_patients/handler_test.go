package list_doctor_patients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicService/internal/auth"
	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/service/patients/models"
	"github.com/m04kA/SMC-ClinicService/pkg/logger"
)

type fakeService struct {
	err   error
	actor domain.Actor
}

func (f *fakeService) ListForDoctor(_ context.Context, actor domain.Actor, _ string) (*models.PatientVisitListResponse, error) {
	f.actor = actor
	if f.err != nil {
		return nil, f.err
	}
	return &models.PatientVisitListResponse{Patients: []models.PatientVisitResponse{{
		PatientResponse: models.PatientResponse{ID: 5, Name: "Jane Roe"},
		LastVisit:       "2026-05-04",
	}}}, nil
}

var doctor = domain.Actor{ID: 7, Role: domain.RoleDoctor, HospitalID: 1}

func newRequest() *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/doctor/patients", nil)
	return req.WithContext(middleware.WithSession(req.Context(), &auth.Session{Actor: doctor, TokenID: "t"}))
}

func TestHandler_Handle(t *testing.T) {
	svc := &fakeService{}
	rec := httptest.NewRecorder()

	NewHandler(svc, logger.NewNop()).Handle(rec, newRequest())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, doctor, svc.actor)

	var resp []models.PatientVisitResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "2026-05-04", resp[0].LastVisit)
	assert.Equal(t, "Jane Roe", resp[0].Name)
}

func TestHandler_Handle_Errors(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&fakeService{err: errors.New("db down")}, logger.NewNop()).Handle(rec, newRequest())
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
