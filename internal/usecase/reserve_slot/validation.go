package reserve_slot

import (
	"fmt"
	"time"

	"github.com/clinicdesk/CDS-ClinicBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Caller.UserID <= 0 {
		return fmt.Errorf("%w: caller userID must be positive", ErrInvalidInput)
	}

	if !domain.IsValidRole(req.Caller.Role) {
		return fmt.Errorf("%w: unknown caller role %q", ErrInvalidInput, req.Caller.Role)
	}

	if req.ClinicID <= 0 {
		return fmt.Errorf("%w: clinicID must be positive", ErrInvalidInput)
	}

	if req.PatientID < 0 {
		return fmt.Errorf("%w: patientID must not be negative", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время приема указано и корректно
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.PatientName == "" {
		return fmt.Errorf("%w: patientName is required", ErrInvalidInput)
	}
	if len(req.PatientName) > domain.MaxPatientNameLength {
		return fmt.Errorf("%w: patientName is too long", ErrInvalidInput)
	}

	if req.AppointmentType == "" {
		return fmt.Errorf("%w: appointmentType is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата резервирования не в прошлом
func validateDate(date time.Time, now time.Time) error {
	if isDateInPast(date, now) {
		return ErrInvalidDate
	}
	return nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
