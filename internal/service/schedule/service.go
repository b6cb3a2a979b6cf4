package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	doctorRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/doctor"
	"github.com/m04kA/SMC-ClinicService/internal/service/schedule/models"
)

// Service управление рабочими окнами врачей
type Service struct {
	doctorRepo   DoctorRepository
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	doctorRepo DoctorRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		doctorRepo:   doctorRepo,
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetSchedule возвращает рабочие окна врача с понедельника по воскресенье
func (s *Service) GetSchedule(ctx context.Context, actor domain.Actor, doctorID int64) (*models.ScheduleResponse, error) {
	if err := s.ensureDoctor(ctx, actor.HospitalID, doctorID); err != nil {
		return nil, err
	}

	windows, err := s.scheduleRepo.ListByDoctor(ctx, actor.HospitalID, doctorID)
	if err != nil {
		s.logger.Error("GetSchedule: repository error for doctor=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(doctorID, windows), nil
}

// SetWorkingWindow заменяет рабочее окно врача на день недели целиком
func (s *Service) SetWorkingWindow(ctx context.Context, actor domain.Actor, doctorID int64, weekday string, req *models.WorkingWindowRequest) (*models.WorkingWindowResponse, error) {
	s.logger.Info("SetWorkingWindow: doctor=%d weekday=%s hospital=%d", doctorID, weekday, actor.HospitalID)

	window, err := buildWindow(weekday, req)
	if err != nil {
		s.logger.Warn("SetWorkingWindow: validation failed: %v", err)
		return nil, err
	}
	window.DoctorID = doctorID
	window.HospitalID = actor.HospitalID

	if err := s.ensureDoctor(ctx, actor.HospitalID, doctorID); err != nil {
		return nil, err
	}

	var saved *domain.WorkingWindow
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.scheduleRepo.DeleteByWeekday(ctx, actor.HospitalID, doctorID, window.Weekday); err != nil {
			return err
		}
		var err error
		saved, err = s.scheduleRepo.Create(ctx, window)
		return err
	})
	if err != nil {
		s.logger.Error("SetWorkingWindow: transaction failed for doctor=%d weekday=%s: %v", doctorID, window.Weekday, err)
		return nil, fmt.Errorf("%w: SetWorkingWindow - transaction: %v", ErrInternal, err)
	}

	s.logger.Info("SetWorkingWindow: saved window id=%d %s-%s", saved.ID, saved.Start, saved.End)
	resp := models.FromDomainWindow(saved)
	return &resp, nil
}

func (s *Service) ensureDoctor(ctx context.Context, hospitalID, doctorID int64) error {
	_, err := s.doctorRepo.GetByID(ctx, hospitalID, doctorID)
	if err == nil {
		return nil
	}
	if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
		s.logger.Warn("doctor=%d not found in hospital=%d", doctorID, hospitalID)
		return ErrDoctorNotFound
	}
	s.logger.Error("failed to get doctor=%d: %v", doctorID, err)
	return fmt.Errorf("%w: get doctor: %v", ErrInternal, err)
}
