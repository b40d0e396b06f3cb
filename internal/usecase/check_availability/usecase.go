package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinicdesk/CDS-ClinicBookingService/internal/domain"
	clinicRepo "github.com/clinicdesk/CDS-ClinicBookingService/internal/infra/storage/clinic"
)

// UseCase use case проверки доступности слотов.
// Операция чисто рекомендательная (read-only, без транзакции): реальную
// гарантию дает только проверка внутри резервирования.
type UseCase struct {
	apptRepo   AppointmentRepository
	clinicRepo ClinicRepository
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	clinicRepo ClinicRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:   apptRepo,
		clinicRepo: clinicRepo,
		logger:     logger,
	}
}

// Execute выполняет use case проверки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: clinic=%d, date=%s", req.ClinicID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем клинику; учет ведется строго по ID, не по имени
	clinic, err := uc.clinicRepo.GetByID(ctx, req.ClinicID)
	if err != nil {
		if errors.Is(err, clinicRepo.ErrClinicNotFound) {
			uc.logger.Warn("CheckAvailability: clinic id=%d not found", req.ClinicID)
			return nil, ErrClinicNotFound
		}
		if errors.Is(err, domain.ErrInvalidClinicRecord) {
			uc.logger.Warn("CheckAvailability: clinic id=%d record is malformed: %v", req.ClinicID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("CheckAvailability: failed to get clinic id=%d: %v", req.ClinicID, err)
		return nil, fmt.Errorf("%w: failed to get clinic: %v", ErrInternal, err)
	}

	// 3. Неактивная клиника недоступна для записи
	if !clinic.IsActive() {
		uc.logger.Warn("CheckAvailability: clinic id=%d is inactive", req.ClinicID)
		return nil, ErrClinicNotFound
	}

	// 4. Считаем занятые слоты (pending + confirmed, отмененные не учитываются)
	booked, err := uc.apptRepo.CountActiveByClinicAndDate(ctx, req.ClinicID, req.Date)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to count appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to count appointments: %v", ErrInternal, err)
	}

	availability := domain.NewAvailability(req.ClinicID, req.Date, clinic.EffectiveCapacity(), booked)

	uc.logger.Info("CheckAvailability: clinic=%d date=%s capacity=%d booked=%d remaining=%d",
		req.ClinicID, req.Date.Format(domain.DateFormat), availability.Capacity, availability.Booked, availability.Remaining)

	return &Response{
		ClinicID:  availability.ClinicID,
		Date:      availability.Date,
		Capacity:  availability.Capacity,
		Booked:    availability.Booked,
		Remaining: availability.Remaining,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClinicID <= 0 {
		return fmt.Errorf("%w: clinicID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
