package doctors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	doctorRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/doctor"
	"github.com/m04kA/SMC-ClinicService/internal/service/doctors/models"
)

// Service управление врачами больницы
type Service struct {
	doctorRepo       DoctorRepository
	scheduleRepo     ScheduleRepository
	prescriptionRepo PrescriptionRepository
	appointmentRepo  AppointmentRepository
	images           ImageStore
	hasher           PasswordHasher
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса врачей
func NewService(
	doctorRepo DoctorRepository,
	scheduleRepo ScheduleRepository,
	prescriptionRepo PrescriptionRepository,
	appointmentRepo AppointmentRepository,
	images ImageStore,
	hasher PasswordHasher,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		doctorRepo:       doctorRepo,
		scheduleRepo:     scheduleRepo,
		prescriptionRepo: prescriptionRepo,
		appointmentRepo:  appointmentRepo,
		images:           images,
		hasher:           hasher,
		txManager:        txManager,
		logger:           logger,
	}
}

// Create добавляет врача в больницу администратора
func (s *Service) Create(ctx context.Context, actor domain.Actor, req *models.CreateDoctorRequest) (*models.DoctorResponse, error) {
	s.logger.Info("Create: adding doctor to hospital=%d by staff=%d", actor.HospitalID, actor.ID)

	if err := validateCreate(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}
	ext, err := imageExtension(req.Image)
	if err != nil {
		s.logger.Warn("Create: rejected image: %v", err)
		return nil, err
	}

	var imageURL *string
	if ext != "" {
		url, err := s.images.Save(ctx, ext, req.Image.Content)
		if err != nil {
			s.logger.Error("Create: failed to store image for hospital=%d: %v", actor.HospitalID, err)
			return nil, fmt.Errorf("%w: Create - store image: %v", ErrInternal, err)
		}
		imageURL = &url
	}

	doctor, err := s.doctorRepo.Create(ctx, &domain.Doctor{
		HospitalID:      actor.HospitalID,
		Name:            strings.TrimSpace(req.Name),
		Specialization:  strings.TrimSpace(req.Specialization),
		ExperienceYears: req.ExperienceYears,
		ConsultationFee: req.ConsultationFee,
		Contact:         trimmedOrNil(req.Contact),
		Bio:             trimmedOrNil(req.Bio),
		ImageURL:        imageURL,
		CreatedBy:       actor.ID,
	})
	if err != nil {
		s.logger.Error("Create: repository error for hospital=%d: %v", actor.HospitalID, err)
		if imageURL != nil {
			s.removeImage(ctx, *imageURL)
		}
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created doctor id=%d in hospital=%d", doctor.ID, actor.HospitalID)
	resp := models.FromDomainDoctor(doctor)
	return &resp, nil
}

// List возвращает врачей больницы с необязательным поиском
func (s *Service) List(ctx context.Context, actor domain.Actor, search string) (*models.DoctorListResponse, error) {
	doctors, err := s.doctorRepo.List(ctx, actor.HospitalID, search)
	if err != nil {
		s.logger.Error("List: repository error for hospital=%d: %v", actor.HospitalID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDoctorList(doctors), nil
}

// Delete удаляет врача вместе с расписанием, рецептами и приёмами в одной транзакции
func (s *Service) Delete(ctx context.Context, actor domain.Actor, doctorID int64) error {
	s.logger.Info("Delete: deleting doctor id=%d in hospital=%d by staff=%d", doctorID, actor.HospitalID, actor.ID)

	var (
		doctor                               *domain.Doctor
		windows, prescriptions, appointments int64
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		// Проверяем принадлежность врача больнице до удаления зависимых записей
		var err error
		if doctor, err = s.doctorRepo.GetByID(ctx, actor.HospitalID, doctorID); err != nil {
			return err
		}

		if windows, err = s.scheduleRepo.DeleteByDoctor(ctx, actor.HospitalID, doctorID); err != nil {
			return err
		}
		if prescriptions, err = s.prescriptionRepo.DeleteByDoctor(ctx, actor.HospitalID, doctorID); err != nil {
			return err
		}
		if appointments, err = s.appointmentRepo.DeleteByDoctor(ctx, actor.HospitalID, doctorID); err != nil {
			return err
		}
		return s.doctorRepo.Delete(ctx, actor.HospitalID, doctorID)
	})
	if err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			s.logger.Warn("Delete: doctor id=%d not found in hospital=%d", doctorID, actor.HospitalID)
			return ErrDoctorNotFound
		}
		s.logger.Error("Delete: transaction failed for doctor id=%d: %v", doctorID, err)
		return fmt.Errorf("%w: Delete - transaction: %v", ErrInternal, err)
	}

	// Фото удаляем после коммита: ошибка хранилища не откатывает удаление врача
	if doctor.ImageURL != nil {
		s.removeImage(ctx, *doctor.ImageURL)
	}

	s.logger.Info("Delete: deleted doctor id=%d (windows=%d, prescriptions=%d, appointments=%d)",
		doctorID, windows, prescriptions, appointments)
	return nil
}

func (s *Service) removeImage(ctx context.Context, url string) {
	if err := s.images.Delete(ctx, url); err != nil {
		s.logger.Error("removeImage: failed to delete image %s: %v", url, err)
	}
}

// SetCredentials задаёт логин и пароль для входа врача
func (s *Service) SetCredentials(ctx context.Context, actor domain.Actor, doctorID int64, req *models.SetCredentialsRequest) error {
	s.logger.Info("SetCredentials: doctor id=%d in hospital=%d by staff=%d", doctorID, actor.HospitalID, actor.ID)

	if err := validateCredentials(req); err != nil {
		s.logger.Warn("SetCredentials: validation failed: %v", err)
		return err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error("SetCredentials: failed to hash password: %v", err)
		return fmt.Errorf("%w: SetCredentials - hash password: %v", ErrInternal, err)
	}

	err = s.doctorRepo.SetCredentials(ctx, actor.HospitalID, doctorID, strings.TrimSpace(req.Username), hash)
	switch {
	case err == nil:
	case errors.Is(err, doctorRepo.ErrDoctorNotFound):
		s.logger.Warn("SetCredentials: doctor id=%d not found in hospital=%d", doctorID, actor.HospitalID)
		return ErrDoctorNotFound
	case errors.Is(err, doctorRepo.ErrUsernameTaken):
		s.logger.Warn("SetCredentials: username %q already taken", req.Username)
		return ErrUsernameTaken
	default:
		s.logger.Error("SetCredentials: repository error for doctor id=%d: %v", doctorID, err)
		return fmt.Errorf("%w: SetCredentials - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetCredentials: credentials set for doctor id=%d", doctorID)
	return nil
}
