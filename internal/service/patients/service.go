package patients

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	patientRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/patient"
	"github.com/m04kA/SMC-ClinicService/internal/service/patients/models"
)

// Service управление пациентами больницы
type Service struct {
	patientRepo      PatientRepository
	appointmentRepo  AppointmentRepository
	prescriptionRepo PrescriptionRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса пациентов
func NewService(
	patientRepo PatientRepository,
	appointmentRepo AppointmentRepository,
	prescriptionRepo PrescriptionRepository,
	logger Logger,
) *Service {
	return &Service{
		patientRepo:      patientRepo,
		appointmentRepo:  appointmentRepo,
		prescriptionRepo: prescriptionRepo,
		logger:           logger,
	}
}

// Create регистрирует пациента в больнице администратора
func (s *Service) Create(ctx context.Context, actor domain.Actor, req *models.CreatePatientRequest) (*models.PatientResponse, error) {
	s.logger.Info("Create: adding patient to hospital=%d by staff=%d", actor.HospitalID, actor.ID)

	if err := validateCreate(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	patient, err := s.patientRepo.Create(ctx, &domain.Patient{
		HospitalID:     actor.HospitalID,
		Name:           strings.TrimSpace(req.Name),
		Age:            *req.Age,
		Gender:         trimmed(req.Gender),
		Contact:        trimmed(req.Contact),
		Address:        trimmedOrNil(req.Address),
		MedicalHistory: trimmedOrNil(req.MedicalHistory),
		CreatedBy:      actor.ID,
	})
	if err != nil {
		s.logger.Error("Create: repository error for hospital=%d: %v", actor.HospitalID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created patient id=%d in hospital=%d", patient.ID, actor.HospitalID)
	resp := models.FromDomainPatient(patient)
	return &resp, nil
}

// List возвращает пациентов больницы, новые первыми
func (s *Service) List(ctx context.Context, actor domain.Actor, search string) (*models.PatientListResponse, error) {
	patients, err := s.patientRepo.List(ctx, actor.HospitalID, search)
	if err != nil {
		s.logger.Error("List: repository error for hospital=%d: %v", actor.HospitalID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPatientList(patients), nil
}

// Delete удаляет пациента без приёмов
func (s *Service) Delete(ctx context.Context, actor domain.Actor, patientID int64) error {
	s.logger.Info("Delete: deleting patient id=%d in hospital=%d by staff=%d", patientID, actor.HospitalID, actor.ID)

	count, err := s.appointmentRepo.CountByPatient(ctx, actor.HospitalID, patientID)
	if err != nil {
		s.logger.Error("Delete: failed to count appointments of patient id=%d: %v", patientID, err)
		return fmt.Errorf("%w: Delete - count appointments: %v", ErrInternal, err)
	}
	if count > 0 {
		s.logger.Warn("Delete: patient id=%d has %d appointments", patientID, count)
		return ErrPatientHasAppointments
	}

	err = s.patientRepo.Delete(ctx, actor.HospitalID, patientID)
	switch {
	case err == nil:
	case errors.Is(err, patientRepo.ErrPatientNotFound):
		s.logger.Warn("Delete: patient id=%d not found in hospital=%d", patientID, actor.HospitalID)
		return ErrPatientNotFound
	case errors.Is(err, patientRepo.ErrPatientInUse):
		// Приём мог появиться между подсчётом и удалением
		s.logger.Warn("Delete: patient id=%d got an appointment concurrently", patientID)
		return ErrPatientHasAppointments
	default:
		s.logger.Error("Delete: repository error for patient id=%d: %v", patientID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted patient id=%d", patientID)
	return nil
}

// ListForDoctor возвращает пациентов, которые были на приёме у врача
func (s *Service) ListForDoctor(ctx context.Context, actor domain.Actor, search string) (*models.PatientVisitListResponse, error) {
	visits, err := s.patientRepo.ListByDoctor(ctx, actor.HospitalID, actor.ID, search)
	if err != nil {
		s.logger.Error("ListForDoctor: repository error for doctor=%d: %v", actor.ID, err)
		return nil, fmt.Errorf("%w: ListForDoctor - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainVisitList(visits), nil
}

// History возвращает карточку пациента, все его приёмы и рецепты в больнице
func (s *Service) History(ctx context.Context, actor domain.Actor, patientID int64) (*models.HistoryResponse, error) {
	patient, err := s.patientRepo.GetByID(ctx, actor.HospitalID, patientID)
	if err != nil {
		if errors.Is(err, patientRepo.ErrPatientNotFound) {
			s.logger.Warn("History: patient id=%d not found in hospital=%d", patientID, actor.HospitalID)
			return nil, ErrPatientNotFound
		}
		s.logger.Error("History: failed to get patient id=%d: %v", patientID, err)
		return nil, fmt.Errorf("%w: History - get patient: %v", ErrInternal, err)
	}

	appointments, err := s.appointmentRepo.List(ctx, domain.AppointmentFilter{
		HospitalID: actor.HospitalID,
		PatientID:  &patientID,
	})
	if err != nil {
		s.logger.Error("History: failed to list appointments of patient id=%d: %v", patientID, err)
		return nil, fmt.Errorf("%w: History - list appointments: %v", ErrInternal, err)
	}

	prescriptions, err := s.prescriptionRepo.ListByPatient(ctx, actor.HospitalID, patientID)
	if err != nil {
		s.logger.Error("History: failed to list prescriptions of patient id=%d: %v", patientID, err)
		return nil, fmt.Errorf("%w: History - list prescriptions: %v", ErrInternal, err)
	}

	return models.FromDomainHistory(patient, appointments, prescriptions), nil
}
