package list_patients

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
	err    error
	search string
}

func (f *fakeService) List(_ context.Context, _ domain.Actor, search string) (*models.PatientListResponse, error) {
	f.search = search
	if f.err != nil {
		return nil, f.err
	}
	return &models.PatientListResponse{Patients: []models.PatientResponse{{ID: 5, Name: "Jane Roe"}}}, nil
}

func newRequest(query string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients?"+query, nil)
	session := &auth.Session{Actor: domain.Actor{ID: 1, Role: domain.RoleAdmin, HospitalID: 1}, TokenID: "t"}
	return req.WithContext(middleware.WithSession(req.Context(), session))
}

func TestHandler_Handle(t *testing.T) {
	svc := &fakeService{}
	rec := httptest.NewRecorder()

	NewHandler(svc, logger.NewNop()).Handle(rec, newRequest("search=+jane+"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jane", svc.search)

	var resp []models.PatientResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Jane Roe", resp[0].Name)
}

func TestHandler_Handle_Errors(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&fakeService{err: errors.New("db down")}, logger.NewNop()).Handle(rec, newRequest(""))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
