package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-ClinicService/internal/service/appointments/models"
)

// Service просмотр и изменение приёмов
// Запись на приём выполняет usecase create_appointment
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса приёмов
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// List возвращает приёмы больницы (поиск по пациенту и врачу)
func (s *Service) List(ctx context.Context, actor domain.Actor, req models.ListRequest) (*models.AppointmentListResponse, error) {
	filter, err := buildFilter(actor.HospitalID, nil, req)
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, err
	}

	list, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for hospital=%d: %v", actor.HospitalID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(list), nil
}

// ListForDoctor возвращает приёмы врача (поиск по пациенту)
func (s *Service) ListForDoctor(ctx context.Context, actor domain.Actor, req models.ListRequest) (*models.AppointmentListResponse, error) {
	filter, err := buildFilter(actor.HospitalID, &actor.ID, req)
	if err != nil {
		s.logger.Warn("ListForDoctor: invalid filter: %v", err)
		return nil, err
	}

	list, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListForDoctor: repository error for doctor=%d: %v", actor.ID, err)
		return nil, fmt.Errorf("%w: ListForDoctor - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(list), nil
}

// Delete удаляет приём больницы вместе с рецептом
func (s *Service) Delete(ctx context.Context, actor domain.Actor, appointmentID int64) error {
	s.logger.Info("Delete: deleting appointment id=%d in hospital=%d by staff=%d", appointmentID, actor.HospitalID, actor.ID)

	err := s.appointmentRepo.Delete(ctx, actor.HospitalID, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment id=%d not found in hospital=%d", appointmentID, actor.HospitalID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted appointment id=%d", appointmentID)
	return nil
}

// UpdateStatus меняет статус приёма врача
func (s *Service) UpdateStatus(ctx context.Context, actor domain.Actor, appointmentID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: appointment id=%d to %q by doctor=%d", appointmentID, req.Status, actor.ID)

	status, ok := domain.ParseAppointmentStatus(strings.TrimSpace(req.Status))
	if !ok {
		s.logger.Warn("UpdateStatus: invalid status %q", req.Status)
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	err := s.appointmentRepo.UpdateStatus(ctx, actor.HospitalID, appointmentID, &actor.ID, status)
	switch {
	case err == nil:
	case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
		s.logger.Warn("UpdateStatus: appointment id=%d not found for doctor=%d", appointmentID, actor.ID)
		return ErrAppointmentNotFound
	case errors.Is(err, appointmentRepo.ErrSlotTaken):
		s.logger.Warn("UpdateStatus: slot of appointment id=%d is taken by another booking", appointmentID)
		return ErrSlotTaken
	default:
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: appointment id=%d is now %s", appointmentID, status)
	return nil
}

// Export выгружает приёмы больницы в xlsx
func (s *Service) Export(ctx context.Context, actor domain.Actor, req models.ListRequest) (*models.ExportFile, error) {
	s.logger.Info("Export: exporting appointments of hospital=%d", actor.HospitalID)

	filter, err := buildFilter(actor.HospitalID, nil, req)
	if err != nil {
		s.logger.Warn("Export: invalid filter: %v", err)
		return nil, err
	}

	list, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Export: repository error for hospital=%d: %v", actor.HospitalID, err)
		return nil, fmt.Errorf("%w: Export - repository error: %v", ErrInternal, err)
	}

	content, err := writeWorkbook(list)
	if err != nil {
		s.logger.Error("Export: failed to build workbook: %v", err)
		return nil, fmt.Errorf("%w: Export - build workbook: %v", ErrInternal, err)
	}

	s.logger.Info("Export: exported %d appointments (%d bytes)", len(list), len(content))
	return &models.ExportFile{
		Name:        exportFileName,
		ContentType: exportContentType,
		Content:     content,
	}, nil
}

func buildFilter(hospitalID int64, doctorID *int64, req models.ListRequest) (domain.AppointmentFilter, error) {
	filter := domain.AppointmentFilter{
		HospitalID: hospitalID,
		DoctorID:   doctorID,
		Search:     strings.TrimSpace(req.Search),
	}

	if raw := strings.TrimSpace(req.Status); raw != "" {
		status, ok := domain.ParseAppointmentStatus(raw)
		if !ok {
			return filter, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, raw)
		}
		filter.Status = &status
	}

	return filter, nil
}
