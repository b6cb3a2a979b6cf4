package prescriptions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/appointment"
	hospitalRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/hospital"
	prescriptionRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/prescription"
	"github.com/m04kA/SMC-ClinicService/internal/service/prescriptions/models"
)

// Service рецепты врача
type Service struct {
	appointmentRepo  AppointmentRepository
	prescriptionRepo PrescriptionRepository
	hospitalRepo     HospitalRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса рецептов
func NewService(
	appointmentRepo AppointmentRepository,
	prescriptionRepo PrescriptionRepository,
	hospitalRepo HospitalRepository,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo:  appointmentRepo,
		prescriptionRepo: prescriptionRepo,
		hospitalRepo:     hospitalRepo,
		logger:           logger,
	}
}

// Get возвращает приём врача и его рецепт
func (s *Service) Get(ctx context.Context, actor domain.Actor, appointmentID int64) (*models.PrescriptionPageResponse, error) {
	appointment, err := s.doctorAppointment(ctx, actor, appointmentID)
	if err != nil {
		return nil, err
	}

	prescription, err := s.findPrescription(ctx, actor.HospitalID, appointmentID)
	if err != nil {
		return nil, err
	}

	return &models.PrescriptionPageResponse{
		Appointment:  models.FromDomainAppointment(appointment),
		Prescription: models.FromDomainPrescription(prescription),
	}, nil
}

// Save создаёт или перезаписывает рецепт приёма врача
func (s *Service) Save(ctx context.Context, actor domain.Actor, appointmentID int64, req *models.SavePrescriptionRequest) (*models.PrescriptionResponse, error) {
	s.logger.Info("Save: prescription for appointment id=%d by doctor=%d", appointmentID, actor.ID)

	if err := validateSave(req); err != nil {
		s.logger.Warn("Save: validation failed: %v", err)
		return nil, err
	}
	medicines, err := buildMedicines(req.Medicines)
	if err != nil {
		s.logger.Warn("Save: invalid medicines: %v", err)
		return nil, err
	}

	if _, err := s.doctorAppointment(ctx, actor, appointmentID); err != nil {
		return nil, err
	}

	saved, err := s.prescriptionRepo.Upsert(ctx, &domain.Prescription{
		AppointmentID: appointmentID,
		HospitalID:    actor.HospitalID,
		Diagnosis:     strings.TrimSpace(req.Diagnosis),
		Medicines:     medicines,
		Instructions:  trimmedOrNil(req.Instructions),
	})
	if err != nil {
		s.logger.Error("Save: repository error for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: Save - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Save: saved prescription id=%d with %d medicines", saved.ID, len(saved.Medicines))
	return models.FromDomainPrescription(saved), nil
}

// Print собирает печатную форму: приём, рецепт, больница и следующий визит пациента
func (s *Service) Print(ctx context.Context, actor domain.Actor, appointmentID int64) (*models.PrintResponse, error) {
	appointment, err := s.doctorAppointment(ctx, actor, appointmentID)
	if err != nil {
		return nil, err
	}

	prescription, err := s.findPrescription(ctx, actor.HospitalID, appointmentID)
	if err != nil {
		return nil, err
	}

	hospital, err := s.hospitalRepo.GetByID(ctx, actor.HospitalID)
	if err != nil && !errors.Is(err, hospitalRepo.ErrHospitalNotFound) {
		s.logger.Error("Print: failed to get hospital=%d: %v", actor.HospitalID, err)
		return nil, fmt.Errorf("%w: Print - get hospital: %v", ErrInternal, err)
	}
	hospitalName := actor.HospitalName
	if hospital != nil {
		hospitalName = hospital.Name
	}

	scheduled := domain.StatusScheduled
	next, err := s.appointmentRepo.List(ctx, domain.AppointmentFilter{
		HospitalID: actor.HospitalID,
		PatientID:  &appointment.PatientID,
		Status:     &scheduled,
		AfterDate:  &appointment.Date,
		Ascending:  true,
		Limit:      1,
	})
	if err != nil {
		s.logger.Error("Print: failed to find next appointment of patient=%d: %v", appointment.PatientID, err)
		return nil, fmt.Errorf("%w: Print - next appointment: %v", ErrInternal, err)
	}

	printable := &domain.PrintablePrescription{
		Appointment:  *appointment,
		HospitalName: hospitalName,
		Prescription: prescription,
	}
	if len(next) > 0 {
		printable.NextAppointment = &next[0].Appointment
	}

	return models.FromDomainPrintable(printable), nil
}

// doctorAppointment загружает приём больницы и проверяет, что он принадлежит врачу
func (s *Service) doctorAppointment(ctx context.Context, actor domain.Actor, appointmentID int64) (*domain.AppointmentDetails, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, actor.HospitalID, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("appointment id=%d not found in hospital=%d", appointmentID, actor.HospitalID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("failed to get appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: get appointment: %v", ErrInternal, err)
	}

	if appointment.DoctorID != actor.ID {
		s.logger.Warn("appointment id=%d belongs to doctor=%d, requested by doctor=%d", appointmentID, appointment.DoctorID, actor.ID)
		return nil, ErrAppointmentNotFound
	}

	return appointment, nil
}

func (s *Service) findPrescription(ctx context.Context, hospitalID, appointmentID int64) (*domain.Prescription, error) {
	prescription, err := s.prescriptionRepo.GetByAppointment(ctx, hospitalID, appointmentID)
	if errors.Is(err, prescriptionRepo.ErrPrescriptionNotFound) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("failed to get prescription of appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: get prescription: %v", ErrInternal, err)
	}
	return prescription, nil
}
