package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicService/internal/availability"
	"github.com/m04kA/SMC-ClinicService/internal/domain"
	doctorRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/doctor"
	scheduleRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// UseCase use case для получения слотов врача на дату
type UseCase struct {
	doctorRepo          DoctorRepository
	scheduleRepo        ScheduleRepository
	appointmentRepo     AppointmentRepository
	slotDurationMinutes int
	logger              Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	doctorRepo DoctorRepository,
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	slotDurationMinutes int,
	logger Logger,
) *UseCase {
	if slotDurationMinutes <= 0 {
		slotDurationMinutes = domain.DefaultSlotDurationMinutes
	}
	return &UseCase{
		doctorRepo:          doctorRepo,
		scheduleRepo:        scheduleRepo,
		appointmentRepo:     appointmentRepo,
		slotDurationMinutes: slotDurationMinutes,
		logger:              logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: actor=%d (%s), hospital=%d, doctor=%d, date=%s",
		req.Actor.ID, req.Actor.Role, req.Actor.HospitalID, req.DoctorID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// Врач видит только свои слоты, администратор любого врача больницы
	if req.Actor.IsDoctor() && req.Actor.ID != req.DoctorID {
		uc.logger.Warn("GetAvailableSlots: doctor id=%d requested slots of doctor id=%d", req.Actor.ID, req.DoctorID)
		return nil, ErrForbidden
	}

	hospitalID := req.Actor.HospitalID

	// 2. Проверяем, что врач работает в больнице
	if _, err := uc.doctorRepo.GetByID(ctx, hospitalID, req.DoctorID); err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			uc.logger.Warn("GetAvailableSlots: doctor id=%d not found in hospital=%d", req.DoctorID, hospitalID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	resp := &Response{
		Date:        req.Date,
		DoctorID:    req.DoctorID,
		Weekday:     domain.WeekdayOf(req.Date),
		Slots:       []availability.Slot{},
		BookedSlots: []types.TimeString{},
	}

	// 3. Получаем рабочее окно на день недели
	window, err := uc.scheduleRepo.GetByWeekday(ctx, hospitalID, req.DoctorID, resp.Weekday)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrWindowNotFound) {
			uc.logger.Info("GetAvailableSlots: doctor id=%d does not work on %s", req.DoctorID, resp.Weekday)
			return resp, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get working window: %v", err)
		return nil, fmt.Errorf("%w: failed to get working window: %v", ErrInternal, err)
	}

	// 4. Получаем занятые слоты на дату
	booked, err := uc.appointmentRepo.BookedSlots(ctx, hospitalID, req.DoctorID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get booked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get booked slots: %v", ErrInternal, err)
	}

	// 5. Генерируем слоты
	result, err := availability.AvailableSlots(availability.FromWorkingWindow(window), uc.slotDurationMinutes, booked)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots from window id=%d: %v", window.ID, err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	resp.Available = true
	resp.Slots = result.Slots
	resp.BookedSlots = result.BookedSlots

	uc.logger.Info("GetAvailableSlots: generated %d slots (%d booked) for doctor=%d, date=%s",
		len(resp.Slots), len(resp.BookedSlots), req.DoctorID, req.Date.Format(domain.DateFormat))

	return resp, nil
}
