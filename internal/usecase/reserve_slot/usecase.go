package reserve_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinicdesk/CDS-ClinicBookingService/internal/domain"
	clinicRepo "github.com/clinicdesk/CDS-ClinicBookingService/internal/infra/storage/clinic"
	"github.com/clinicdesk/CDS-ClinicBookingService/pkg/metrics"
	"github.com/clinicdesk/CDS-ClinicBookingService/pkg/txmanager"
)

// UseCase use case резервирования слота - единственная операция сервиса,
// несущая инвариант: число активных записей на (клиника, дата) никогда
// не превышает дневную capacity клиники
type UseCase struct {
	apptRepo     AppointmentRepository
	clinicRepo   ClinicRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
	observer     OutcomeObserver
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	clinicRepo ClinicRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		clinicRepo:   clinicRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// SetOutcomeObserver подключает наблюдателя исходов (метрики, опционально)
func (uc *UseCase) SetOutcomeObserver(observer OutcomeObserver) {
	uc.observer = observer
}

// Execute выполняет use case резервирования слота.
// Проверка занятости и вставка записи выполняются в одной сериализуемой
// транзакции с блокировкой строк дня (FOR UPDATE): при N конкурентных
// попытках на K свободных слотов пройдут ровно K, остальные получат
// ErrCapacityExceeded.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveSlot: caller=%d role=%s, clinic=%d, date=%s, time=%s",
		req.Caller.UserID, req.Caller.Role, req.ClinicID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReserveSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и проверяем, что дата не в прошлом
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("ReserveSlot: date validation failed: %v", err)
		return nil, err
	}

	// 3. Определяем пациента: за другого пациента бронирует только персонал
	patientID, err := resolvePatientID(req)
	if err != nil {
		uc.logger.Warn("ReserveSlot: caller=%d cannot book for patient=%d", req.Caller.UserID, req.PatientID)
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Appointment

	// 4. Выполняем проверку занятости и вставку в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем клинику; учет ведется строго по ID, не по имени
		clinic, err := uc.clinicRepo.GetByID(txCtx, req.ClinicID)
		if err != nil {
			if errors.Is(err, clinicRepo.ErrClinicNotFound) {
				uc.logger.Warn("ReserveSlot: clinic id=%d not found", req.ClinicID)
				return ErrClinicNotFound
			}
			if errors.Is(err, domain.ErrInvalidClinicRecord) {
				uc.logger.Warn("ReserveSlot: clinic id=%d record is malformed: %v", req.ClinicID, err)
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			uc.logger.Error("ReserveSlot: failed to get clinic id=%d: %v", req.ClinicID, err)
			return fmt.Errorf("%w: failed to get clinic: %v", ErrInternal, err)
		}

		// 4.2. Неактивная клиника не принимает записи
		if !clinic.IsActive() {
			uc.logger.Warn("ReserveSlot: clinic id=%d is inactive", req.ClinicID)
			return ErrClinicNotFound
		}

		capacity := clinic.EffectiveCapacity()

		// 4.3. Получаем активные записи дня с блокировкой (FOR UPDATE)
		appointments, err := uc.apptRepo.GetByClinicAndDate(txCtx, req.ClinicID, req.Date, false)
		if err != nil {
			uc.logger.Error("ReserveSlot: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		booked := countActive(appointments)

		// 4.4. Проверяем инвариант на момент коммита
		if booked >= capacity {
			uc.logger.Warn("ReserveSlot: no slots left for clinic=%d date=%s, %d/%d booked",
				req.ClinicID, req.Date.Format(domain.DateFormat), booked, capacity)
			return ErrCapacityExceeded
		}

		uc.logger.Info("ReserveSlot: slot available for clinic=%d date=%s, %d/%d booked",
			req.ClinicID, req.Date.Format(domain.DateFormat), booked, capacity)

		// 4.5. Создаем запись со статусом pending
		appt := &domain.Appointment{
			ClinicID: req.ClinicID,
			// Денормализация названия клиники для истории
			ClinicName:      clinic.Name,
			Date:            req.Date,
			StartTime:       req.StartTime,
			PatientID:       patientID,
			PatientName:     req.PatientName,
			PatientPhone:    req.PatientPhone,
			AppointmentType: req.AppointmentType,
			Status:          domain.StatusPending,
			Notes:           req.Notes,
		}

		created, err := uc.apptRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("ReserveSlot: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, uc.mapTxError(err)
	}

	uc.observe(metrics.ReservationOutcomeAdmitted)
	uc.logger.Info("ReserveSlot: successfully created appointment id=%d for clinic=%d date=%s",
		result.ID, req.ClinicID, req.Date.Format(domain.DateFormat))

	return toResponse(result), nil
}

// mapTxError переводит ошибки менеджера транзакций в ошибки usecase
// и фиксирует исход в метриках
func (uc *UseCase) mapTxError(err error) error {
	switch {
	case errors.Is(err, ErrCapacityExceeded):
		uc.observe(metrics.ReservationOutcomeCapacityExceeded)
		return err
	case txmanager.IsConflict(err):
		uc.observe(metrics.ReservationOutcomeConflict)
		return fmt.Errorf("%w: %v", ErrTxConflict, err)
	case txmanager.IsUnavailable(err):
		uc.observe(metrics.ReservationOutcomeError)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	case errors.Is(err, ErrClinicNotFound), errors.Is(err, ErrInvalidInput):
		return err
	default:
		uc.observe(metrics.ReservationOutcomeError)
		return err
	}
}

func (uc *UseCase) observe(outcome string) {
	if uc.observer != nil {
		uc.observer.IncReservation(outcome)
	}
}

// countActive подсчитывает записи, занимающие слот
func countActive(appointments []*domain.Appointment) int {
	count := 0
	for _, appt := range appointments {
		if appt.CountsAgainstCapacity() {
			count++
		}
	}
	return count
}

// resolvePatientID определяет пациента записи с учетом прав вызывающего
func resolvePatientID(req *Request) (int64, error) {
	if req.PatientID == 0 || req.PatientID == req.Caller.UserID {
		return req.Caller.UserID, nil
	}
	if !req.Caller.CanManageAppointments() {
		return 0, ErrAccessDenied
	}
	return req.PatientID, nil
}
