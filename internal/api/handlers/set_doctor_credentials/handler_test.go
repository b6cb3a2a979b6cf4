package set_doctor_credentials

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicService/internal/auth"
	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/service/doctors"
	"github.com/m04kA/SMC-ClinicService/internal/service/doctors/models"
	"github.com/m04kA/SMC-ClinicService/pkg/logger"
)

type fakeService struct {
	err error
	got *models.SetCredentialsRequest
}

func (f *fakeService) SetCredentials(_ context.Context, _ domain.Actor, _ int64, req *models.SetCredentialsRequest) error {
	f.got = req
	return f.err
}

const body = `{"username":"grey","password":"secret123"}`

func newRequest(id, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/doctors/"+id+"/credentials", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"doctorId": id})
	session := &auth.Session{Actor: domain.Actor{ID: 1, Role: domain.RoleAdmin, HospitalID: 1}, TokenID: "t"}
	return req.WithContext(middleware.WithSession(req.Context(), session))
}

func TestHandler_Handle(t *testing.T) {
	svc := &fakeService{}
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, newRequest("7", body))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "grey", svc.got.Username)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		body       string
		err        error
		wantStatus int
	}{
		{name: "bad id", id: "x", body: body, wantStatus: http.StatusBadRequest},
		{name: "malformed body", id: "7", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "weak password", id: "7", body: body, err: doctors.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "not found", id: "7", body: body, err: doctors.ErrDoctorNotFound, wantStatus: http.StatusNotFound},
		{name: "username taken", id: "7", body: body, err: doctors.ErrUsernameTaken, wantStatus: http.StatusConflict},
		{name: "internal", id: "7", body: body, err: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&fakeService{err: tt.err}, logger.NewNop()).Handle(rec, newRequest(tt.id, tt.body))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
