package doctors

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	doctorRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/doctor"
	"github.com/m04kA/SMC-ClinicService/internal/service/doctors/models"
	"github.com/m04kA/SMC-ClinicService/pkg/logger"
	"github.com/m04kA/SMC-ClinicService/pkg/ptr"
)

type fakeDoctors struct {
	items     map[int64]*domain.Doctor
	usernames map[string]int64
	nextID    int64
	err       error
}

func newFakeDoctors() *fakeDoctors {
	return &fakeDoctors{items: map[int64]*domain.Doctor{}, usernames: map[string]int64{}, nextID: 1}
}

func (f *fakeDoctors) Create(_ context.Context, d *domain.Doctor) (*domain.Doctor, error) {
	if f.err != nil {
		return nil, f.err
	}
	d.ID = f.nextID
	f.nextID++
	f.items[d.ID] = d
	return d, nil
}

func (f *fakeDoctors) GetByID(_ context.Context, hospitalID, id int64) (*domain.Doctor, error) {
	d, ok := f.items[id]
	if !ok || d.HospitalID != hospitalID {
		return nil, doctorRepo.ErrDoctorNotFound
	}
	return d, nil
}

func (f *fakeDoctors) List(_ context.Context, hospitalID int64, search string) ([]*domain.Doctor, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Doctor
	for id := int64(1); id < f.nextID; id++ {
		d, ok := f.items[id]
		if !ok || d.HospitalID != hospitalID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(d.Name), strings.ToLower(search)) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeDoctors) SetCredentials(_ context.Context, hospitalID, id int64, username, hash string) error {
	d, ok := f.items[id]
	if !ok || d.HospitalID != hospitalID {
		return doctorRepo.ErrDoctorNotFound
	}
	if owner, taken := f.usernames[strings.ToLower(username)]; taken && owner != id {
		return doctorRepo.ErrUsernameTaken
	}
	f.usernames[strings.ToLower(username)] = id
	d.Username = &username
	d.PasswordHash = &hash
	return nil
}

func (f *fakeDoctors) Delete(_ context.Context, hospitalID, id int64) error {
	d, ok := f.items[id]
	if !ok || d.HospitalID != hospitalID {
		return doctorRepo.ErrDoctorNotFound
	}
	delete(f.items, id)
	return nil
}

// fakeCascade записывает порядок каскадного удаления
type fakeCascade struct {
	name  string
	calls *[]string
	err   error
}

func (f fakeCascade) DeleteByDoctor(_ context.Context, _, _ int64) (int64, error) {
	*f.calls = append(*f.calls, f.name)
	if f.err != nil {
		return 0, f.err
	}
	return 2, nil
}

// fakeImages хранит загруженные фото в памяти
type fakeImages struct {
	saved     map[string]string
	deleted   []string
	saveErr   error
	deleteErr error
}

func newFakeImages() *fakeImages {
	return &fakeImages{saved: map[string]string{}}
}

func (f *fakeImages) Save(_ context.Context, ext string, content io.Reader) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	url := "/images/doctors/photo." + ext
	f.saved[url] = string(data)
	return url, nil
}

func (f *fakeImages) Delete(_ context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return f.deleteErr
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var admin = domain.Actor{ID: 10, Role: domain.RoleAdmin, HospitalID: 1}

func newService(doctors *fakeDoctors, calls *[]string, failOn string) *Service {
	return newServiceWithImages(doctors, newFakeImages(), calls, failOn)
}

func newServiceWithImages(doctors *fakeDoctors, images *fakeImages, calls *[]string, failOn string) *Service {
	cascade := func(name string) fakeCascade {
		c := fakeCascade{name: name, calls: calls}
		if name == failOn {
			c.err = errors.New("db down")
		}
		return c
	}
	return NewService(doctors, cascade("schedule"), cascade("prescriptions"), cascade("appointments"),
		images, fakeHasher{}, inlineTx{}, logger.NewNop())
}

func TestService_Create(t *testing.T) {
	doctors := newFakeDoctors()
	svc := newService(doctors, &[]string{}, "")

	resp, err := svc.Create(context.Background(), admin, &models.CreateDoctorRequest{
		Name:            "  Gregory House ",
		Specialization:  "Diagnostics",
		ExperienceYears: ptr.Ptr(20),
		Contact:         ptr.Ptr("  "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Gregory House", resp.Name)
	assert.False(t, resp.HasCredentials)
	assert.Nil(t, resp.Contact)

	stored := doctors.items[resp.ID]
	assert.Equal(t, int64(1), stored.HospitalID)
	assert.Equal(t, int64(10), stored.CreatedBy)
}

func TestService_Create_Validation(t *testing.T) {
	svc := newService(newFakeDoctors(), &[]string{}, "")

	tests := []struct {
		name string
		req  models.CreateDoctorRequest
	}{
		{"no name", models.CreateDoctorRequest{Specialization: "ENT"}},
		{"no specialization", models.CreateDoctorRequest{Name: "Wilson"}},
		{"negative experience", models.CreateDoctorRequest{Name: "Wilson", Specialization: "Oncology", ExperienceYears: ptr.Ptr(-1)}},
		{"negative fee", models.CreateDoctorRequest{Name: "Wilson", Specialization: "Oncology", ConsultationFee: ptr.Ptr(-5.0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), admin, &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_List_ScopedToHospital(t *testing.T) {
	doctors := newFakeDoctors()
	svc := newService(doctors, &[]string{}, "")
	other := domain.Actor{ID: 11, Role: domain.RoleAdmin, HospitalID: 2}

	_, err := svc.Create(context.Background(), admin, &models.CreateDoctorRequest{Name: "Cuddy", Specialization: "Endocrinology"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), other, &models.CreateDoctorRequest{Name: "Cameron", Specialization: "Immunology"})
	require.NoError(t, err)

	resp, err := svc.List(context.Background(), admin, "")
	require.NoError(t, err)
	require.Len(t, resp.Doctors, 1)
	assert.Equal(t, "Cuddy", resp.Doctors[0].Name)

	doctors.err = errors.New("db down")
	_, err = svc.List(context.Background(), admin, "")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_Delete_Cascades(t *testing.T) {
	doctors := newFakeDoctors()
	calls := []string{}
	svc := newService(doctors, &calls, "")

	created, err := svc.Create(context.Background(), admin, &models.CreateDoctorRequest{Name: "Foreman", Specialization: "Neurology"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), admin, created.ID))
	assert.Equal(t, []string{"schedule", "prescriptions", "appointments"}, calls)
	assert.Empty(t, doctors.items)
}

func TestService_Delete_OtherHospital(t *testing.T) {
	doctors := newFakeDoctors()
	calls := []string{}
	svc := newService(doctors, &calls, "")

	created, err := svc.Create(context.Background(), admin, &models.CreateDoctorRequest{Name: "Chase", Specialization: "Surgery"})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), domain.Actor{ID: 5, Role: domain.RoleAdmin, HospitalID: 99}, created.ID)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
	assert.Empty(t, calls)
	assert.Len(t, doctors.items, 1)
}

func TestService_Delete_StopsOnFailure(t *testing.T) {
	doctors := newFakeDoctors()
	calls := []string{}
	svc := newService(doctors, &calls, "prescriptions")

	created, err := svc.Create(context.Background(), admin, &models.CreateDoctorRequest{Name: "Taub", Specialization: "Plastic surgery"})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), admin, created.ID)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, []string{"schedule", "prescriptions"}, calls)
	assert.Len(t, doctors.items, 1)
}

func photo(filename string) *models.ImageUpload {
	return &models.ImageUpload{Filename: filename, Content: strings.NewReader("image-bytes")}
}

func TestService_Create_WithImage(t *testing.T) {
	doctors := newFakeDoctors()
	images := newFakeImages()
	svc := newServiceWithImages(doctors, images, &[]string{}, "")

	resp, err := svc.Create(context.Background(), admin, &models.CreateDoctorRequest{
		Name:           "Allison Cameron",
		Specialization: "Immunology",
		Image:          photo("Cameron.JPG"),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.ImageURL)
	assert.Equal(t, "/images/doctors/photo.jpg", *resp.ImageURL)
	assert.Equal(t, "image-bytes", images.saved[*resp.ImageURL])
	assert.Equal(t, resp.ImageURL, doctors.items[resp.ID].ImageURL)
}

func TestService_Create_RejectsImageExtension(t *testing.T) {
	doctors := newFakeDoctors()
	images := newFakeImages()
	svc := newServiceWithImages(doctors, images, &[]string{}, "")

	for _, name := range []string{"shell.php", "photo.gif", "noextension"} {
		_, err := svc.Create(context.Background(), admin, &models.CreateDoctorRequest{
			Name:           "Remy Hadley",
			Specialization: "Internal medicine",
			Image:          photo(name),
		})
		assert.ErrorIs(t, err, ErrInvalidImage, name)
	}
	assert.Empty(t, images.saved)
	assert.Empty(t, doctors.items)
}

func TestService_Create_ImageStoreFailure(t *testing.T) {
	doctors := newFakeDoctors()
	images := newFakeImages()
	images.saveErr = errors.New("disk full")
	svc := newServiceWithImages(doctors, images, &[]string{}, "")

	_, err := svc.Create(context.Background(), admin, &models.CreateDoctorRequest{
		Name: "Lawrence Kutner", Specialization: "Sports medicine", Image: photo("kutner.png"),
	})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, doctors.items)
}

func TestService_Create_RepositoryFailureRemovesImage(t *testing.T) {
	doctors := newFakeDoctors()
	doctors.err = errors.New("db down")
	images := newFakeImages()
	svc := newServiceWithImages(doctors, images, &[]string{}, "")

	_, err := svc.Create(context.Background(), admin, &models.CreateDoctorRequest{
		Name: "Chris Taub", Specialization: "Plastic surgery", Image: photo("taub.jpeg"),
	})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, []string{"/images/doctors/photo.jpeg"}, images.deleted)
}

func TestService_Delete_RemovesImage(t *testing.T) {
	doctors := newFakeDoctors()
	images := newFakeImages()
	calls := []string{}
	svc := newServiceWithImages(doctors, images, &calls, "")

	withPhoto, err := svc.Create(context.Background(), admin, &models.CreateDoctorRequest{
		Name: "Robert Chase", Specialization: "Surgery", Image: photo("chase.png"),
	})
	require.NoError(t, err)
	withoutPhoto, err := svc.Create(context.Background(), admin, &models.CreateDoctorRequest{
		Name: "Eric Foreman", Specialization: "Neurology",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), admin, withoutPhoto.ID))
	assert.Empty(t, images.deleted)

	// ошибка хранилища фото не отменяет удаление врача
	images.deleteErr = errors.New("cloud unavailable")
	require.NoError(t, svc.Delete(context.Background(), admin, withPhoto.ID))
	assert.Equal(t, []string{"/images/doctors/photo.png"}, images.deleted)
	assert.Empty(t, doctors.items)
}

func TestService_Delete_FailedCascadeKeepsImage(t *testing.T) {
	doctors := newFakeDoctors()
	images := newFakeImages()
	calls := []string{}
	svc := newServiceWithImages(doctors, images, &calls, "appointments")

	created, err := svc.Create(context.Background(), admin, &models.CreateDoctorRequest{
		Name: "Lisa Cuddy", Specialization: "Endocrinology", Image: photo("cuddy.jpg"),
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), admin, created.ID), ErrInternal)
	assert.Empty(t, images.deleted)
}

func TestService_SetCredentials(t *testing.T) {
	doctors := newFakeDoctors()
	svc := newService(doctors, &[]string{}, "")

	first, err := svc.Create(context.Background(), admin, &models.CreateDoctorRequest{Name: "Kutner", Specialization: "Sports medicine"})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), admin, &models.CreateDoctorRequest{Name: "Thirteen", Specialization: "Internal medicine"})
	require.NoError(t, err)

	require.NoError(t, svc.SetCredentials(context.Background(), admin, first.ID, &models.SetCredentialsRequest{Username: " kutner ", Password: "longenough"}))
	stored := doctors.items[first.ID]
	assert.Equal(t, "kutner", *stored.Username)
	assert.Equal(t, "hashed:longenough", *stored.PasswordHash)

	err = svc.SetCredentials(context.Background(), admin, second.ID, &models.SetCredentialsRequest{Username: "Kutner", Password: "longenough"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	err = svc.SetCredentials(context.Background(), admin, 404, &models.SetCredentialsRequest{Username: "nobody", Password: "longenough"})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestService_SetCredentials_Validation(t *testing.T) {
	svc := newService(newFakeDoctors(), &[]string{}, "")

	tests := map[string]models.SetCredentialsRequest{
		"short username":  {Username: "abc", Password: "longenough"},
		"username spaces": {Username: "dr house", Password: "longenough"},
		"short password":  {Username: "house", Password: "1234567"},
	}
	for name, req := range tests {
		t.Run(name, func(t *testing.T) {
			err := svc.SetCredentials(context.Background(), admin, 1, &req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
