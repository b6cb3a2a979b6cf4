package create_doctor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicService/internal/auth"
	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/service/doctors"
	"github.com/m04kA/SMC-ClinicService/internal/service/doctors/models"
	"github.com/m04kA/SMC-ClinicService/pkg/logger"
)

type fakeService struct {
	err       error
	got       *models.CreateDoctorRequest
	imageData string
}

func (f *fakeService) Create(_ context.Context, _ domain.Actor, req *models.CreateDoctorRequest) (*models.DoctorResponse, error) {
	f.got = req
	if req.Image != nil {
		data, err := io.ReadAll(req.Image.Content)
		if err != nil {
			return nil, err
		}
		f.imageData = string(data)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &models.DoctorResponse{ID: 7, Name: req.Name, Specialization: req.Specialization, ConsultationFee: req.ConsultationFee}, nil
}

const maxImageBytes = 1 << 10

const body = `{"name":"Dr. Grey","specialization":"Surgery","consultationFee":50.5}`

func newRequest(body string) *http.Request {
	return withSession(httptest.NewRequest(http.MethodPost, "/api/v1/doctors", strings.NewReader(body)))
}

func withSession(req *http.Request) *http.Request {
	session := &auth.Session{Actor: domain.Actor{ID: 1, Role: domain.RoleAdmin, HospitalID: 1}, TokenID: "t"}
	return req.WithContext(middleware.WithSession(req.Context(), session))
}

func TestHandler_Handle(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&fakeService{}, maxImageBytes, logger.NewNop()).Handle(rec, newRequest(body))

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp models.DoctorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, 50.5, *resp.ConsultationFee)
	assert.False(t, resp.HasCredentials)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "unknown field", body: `{"name":"x","salary":1}`, wantStatus: http.StatusBadRequest},
		{name: "invalid input", body: body, err: doctors.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "invalid image", body: body, err: doctors.ErrInvalidImage, wantStatus: http.StatusBadRequest},
		{name: "internal", body: body, err: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&fakeService{err: tt.err}, maxImageBytes, logger.NewNop()).Handle(rec, newRequest(tt.body))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

// newMultipartRequest собирает форму; пустое filename означает форму без фото
func newMultipartRequest(t *testing.T, fields map[string]string, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		part, err := mw.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/doctors", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return withSession(req)
}

func TestHandler_Handle_MultipartWithImage(t *testing.T) {
	svc := &fakeService{}
	rec := httptest.NewRecorder()
	req := newMultipartRequest(t, map[string]string{
		"name":            "Dr. Grey",
		"specialization":  "Surgery",
		"experienceYears": "4",
		"consultationFee": "50.5",
		"contact":         "",
	}, "grey.png", "png-bytes")

	NewHandler(svc, maxImageBytes, logger.NewNop()).Handle(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.got.Image)
	assert.Equal(t, "grey.png", svc.got.Image.Filename)
	assert.Equal(t, "png-bytes", svc.imageData)
	assert.Equal(t, 4, *svc.got.ExperienceYears)
	assert.Equal(t, 50.5, *svc.got.ConsultationFee)
	assert.Nil(t, svc.got.Contact)
	assert.Nil(t, svc.got.Bio)
}

func TestHandler_Handle_MultipartWithoutImage(t *testing.T) {
	svc := &fakeService{}
	rec := httptest.NewRecorder()
	req := newMultipartRequest(t, map[string]string{"name": "Dr. Bailey", "specialization": "Surgery"}, "", "")

	NewHandler(svc, maxImageBytes, logger.NewNop()).Handle(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Nil(t, svc.got.Image)
	assert.Nil(t, svc.got.ExperienceYears)
}

func TestHandler_Handle_MultipartErrors(t *testing.T) {
	tests := []struct {
		name       string
		fields     map[string]string
		filename   string
		content    string
		wantStatus int
	}{
		{
			name:       "image over limit",
			fields:     map[string]string{"name": "Dr. Grey", "specialization": "Surgery"},
			filename:   "grey.jpg",
			content:    strings.Repeat("x", maxImageBytes+1),
			wantStatus: http.StatusRequestEntityTooLarge,
		},
		{
			name:       "non numeric experience",
			fields:     map[string]string{"name": "Dr. Grey", "specialization": "Surgery", "experienceYears": "many"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "non numeric fee",
			fields:     map[string]string{"name": "Dr. Grey", "specialization": "Surgery", "consultationFee": "cheap"},
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			rec := httptest.NewRecorder()
			NewHandler(svc, maxImageBytes, logger.NewNop()).Handle(rec, newMultipartRequest(t, tt.fields, tt.filename, tt.content))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Nil(t, svc.got, "service must not be called")
		})
	}
}
