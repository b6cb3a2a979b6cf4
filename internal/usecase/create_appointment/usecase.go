package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicService/internal/availability"
	"github.com/m04kA/SMC-ClinicService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/appointment"
	doctorRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/doctor"
	patientRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/patient"
	scheduleRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ClinicService/pkg/pgerrors"
)

// UseCase use case для записи пациента к врачу
type UseCase struct {
	patientRepo         PatientRepository
	doctorRepo          DoctorRepository
	scheduleRepo        ScheduleRepository
	appointmentRepo     AppointmentRepository
	txManager           TransactionManager
	metrics             BookingMetrics
	timeProvider        TimeProvider
	slotDurationMinutes int
	logger              Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	patientRepo PatientRepository,
	doctorRepo DoctorRepository,
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	metrics BookingMetrics,
	timeProvider TimeProvider,
	slotDurationMinutes int,
	logger Logger,
) *UseCase {
	if slotDurationMinutes <= 0 {
		slotDurationMinutes = domain.DefaultSlotDurationMinutes
	}
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &UseCase{
		patientRepo:         patientRepo,
		doctorRepo:          doctorRepo,
		scheduleRepo:        scheduleRepo,
		appointmentRepo:     appointmentRepo,
		txManager:           txManager,
		metrics:             metrics,
		timeProvider:        timeProvider,
		slotDurationMinutes: slotDurationMinutes,
		logger:              logger,
	}
}

// Execute выполняет use case записи на приём
// Проверка слота и вставка идут в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	if uc.metrics != nil {
		uc.metrics.ObserveBooking(outcomeOf(err))
	}
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: staff=%d, hospital=%d, patient=%d, doctor=%d, date=%s, time=%s",
		req.Actor.ID, req.Actor.HospitalID, req.PatientID, req.DoctorID, req.Date.Format(domain.DateFormat), req.TimeSlot)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не должна быть в прошлом
	if isDateInPast(req.Date, uc.timeProvider.Now()) {
		uc.logger.Warn("CreateAppointment: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrDateInPast
	}

	hospitalID := req.Actor.HospitalID
	var result *Response

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Пациент и врач должны принадлежать больнице
		patient, err := uc.patientRepo.GetByID(txCtx, hospitalID, req.PatientID)
		if err != nil {
			if errors.Is(err, patientRepo.ErrPatientNotFound) {
				uc.logger.Warn("CreateAppointment: patient id=%d not found in hospital=%d", req.PatientID, hospitalID)
				return ErrPatientNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get patient id=%d: %v", req.PatientID, err)
			return fmt.Errorf("%w: failed to get patient: %v", ErrInternal, err)
		}

		doctor, err := uc.doctorRepo.GetByID(txCtx, hospitalID, req.DoctorID)
		if err != nil {
			if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
				uc.logger.Warn("CreateAppointment: doctor id=%d not found in hospital=%d", req.DoctorID, hospitalID)
				return ErrDoctorNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get doctor id=%d: %v", req.DoctorID, err)
			return fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
		}

		// 3.2. Рабочее окно врача на день недели
		weekday := domain.WeekdayOf(req.Date)
		window, err := uc.scheduleRepo.GetByWeekday(txCtx, hospitalID, req.DoctorID, weekday)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrWindowNotFound) {
				uc.logger.Warn("CreateAppointment: doctor id=%d does not work on %s", req.DoctorID, weekday)
				return ErrDoctorNotAvailable
			}
			uc.logger.Error("CreateAppointment: failed to get working window: %v", err)
			return fmt.Errorf("%w: failed to get working window: %v", ErrInternal, err)
		}

		// 3.3. Занятые слоты с блокировкой (FOR UPDATE)
		booked, err := uc.appointmentRepo.BookedSlots(txCtx, hospitalID, req.DoctorID, req.Date)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrConflict) {
				return ErrSlotTaken
			}
			uc.logger.Error("CreateAppointment: failed to get booked slots: %v", err)
			return fmt.Errorf("%w: failed to get booked slots: %v", ErrInternal, err)
		}

		slots, err := availability.AvailableSlots(availability.FromWorkingWindow(window), uc.slotDurationMinutes, booked)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to generate slots from window id=%d: %v", window.ID, err)
			return fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
		}

		// 3.4. Время должно совпадать с началом сгенерированного слота
		if !slots.Contains(req.TimeSlot) {
			uc.logger.Warn("CreateAppointment: %s is not a slot of doctor id=%d on %s", req.TimeSlot, req.DoctorID, weekday)
			return ErrInvalidTimeSlot
		}

		// 3.5. Слот должен быть свободен
		if slots.IsBooked(req.TimeSlot) {
			uc.logger.Warn("CreateAppointment: slot %s of doctor id=%d on %s is taken",
				req.TimeSlot, req.DoctorID, req.Date.Format(domain.DateFormat))
			return ErrSlotTaken
		}

		// 3.6. Создаём приём
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			PatientID:  req.PatientID,
			DoctorID:   req.DoctorID,
			HospitalID: hospitalID,
			Date:       req.Date,
			TimeSlot:   req.TimeSlot,
			Status:     domain.StatusScheduled,
			Notes:      normalizeNotes(req.Notes),
		})
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) || errors.Is(err, appointmentRepo.ErrConflict) {
				uc.logger.Warn("CreateAppointment: slot %s was booked concurrently", req.TimeSlot)
				return ErrSlotTaken
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = &Response{
			ID:          created.ID,
			PatientID:   created.PatientID,
			PatientName: patient.Name,
			DoctorID:    created.DoctorID,
			DoctorName:  doctor.Name,
			Date:        created.Date,
			TimeSlot:    created.TimeSlot,
			Status:      created.Status,
			Notes:       created.Notes,
			CreatedAt:   created.CreatedAt,
		}
		return nil
	})

	if err != nil {
		// Конфликт сериализации при коммите означает параллельную запись в тот же день врача
		if pgerrors.IsSerializationFailure(err) {
			uc.logger.Warn("CreateAppointment: serialization conflict for doctor id=%d: %v", req.DoctorID, err)
			return nil, ErrSlotTaken
		}
		if !isKnown(err) {
			uc.logger.Error("CreateAppointment: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)
	return result, nil
}

var knownErrors = []error{
	ErrPatientNotFound,
	ErrDoctorNotFound,
	ErrDateInPast,
	ErrDoctorNotAvailable,
	ErrInvalidTimeSlot,
	ErrSlotTaken,
	ErrInvalidInput,
	ErrInternal,
}

func isKnown(err error) bool {
	for _, known := range knownErrors {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeCreated
	case errors.Is(err, ErrSlotTaken):
		return outcomeConflict
	case errors.Is(err, ErrInternal):
		return outcomeError
	default:
		return outcomeRejected
	}
}
