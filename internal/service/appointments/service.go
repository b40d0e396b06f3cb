package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/clinicdesk/CDS-ClinicBookingService/internal/domain"
	apptRepo "github.com/clinicdesk/CDS-ClinicBookingService/internal/infra/storage/appointment"
	"github.com/clinicdesk/CDS-ClinicBookingService/internal/service/appointments/models"
	"github.com/clinicdesk/CDS-ClinicBookingService/pkg/ptr"
)

// Service сервис для работы с записями на прием: чтение, отмена, подтверждение.
// Отмена намеренно идет без сериализуемой транзакции - потерянное обновление
// здесь лишь задержит освобождение слота, overbooking невозможен.
type Service struct {
	apptRepo AppointmentRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(apptRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		apptRepo: apptRepo,
		logger:   logger,
	}
}

// GetByID получает запись на прием по ID
// Пациент видит только свою запись, персонал и администраторы - любую
func (s *Service) GetByID(ctx context.Context, id int64, caller domain.Caller) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for caller=%d role=%s", id, caller.UserID, caller.Role)

	appt, err := s.getAppointment(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if err := s.checkAppointmentAccess(appt, caller); err != nil {
		s.logger.Warn("GetByID: access denied for caller=%d to appointment id=%d", caller.UserID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appt), nil
}

// GetPatientAppointments получает историю записей пациента
// Опционально фильтрует по статусу
func (s *Service) GetPatientAppointments(ctx context.Context, req *models.GetPatientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetPatientAppointments: fetching appointments for patient=%d, caller=%d, status=%v",
		req.PatientID, req.Caller.UserID, req.Status)

	// Пациент видит только свои записи
	if req.PatientID != req.Caller.UserID && !req.Caller.CanManageAppointments() {
		s.logger.Warn("GetPatientAppointments: access denied for caller=%d to patient=%d",
			req.Caller.UserID, req.PatientID)
		return nil, ErrAccessDenied
	}

	// Конвертируем статус из строки в domain.AppointmentStatus
	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetPatientAppointments: invalid status=%s for patient=%d", *req.Status, req.PatientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.apptRepo.GetByPatientID(ctx, req.PatientID, domainStatus)
	if err != nil {
		s.logger.Error("GetPatientAppointments: repository error for patient=%d: %v", req.PatientID, err)
		return nil, fmt.Errorf("%w: GetPatientAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPatientAppointments: successfully fetched %d appointments for patient=%d",
		len(appointments), req.PatientID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetClinicAppointments получает записи клиники с гибкой фильтрацией
// Доступно только персоналу и администраторам
func (s *Service) GetClinicAppointments(ctx context.Context, req *models.GetClinicAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetClinicAppointments: fetching appointments for clinic=%d, caller=%d role=%s",
		req.ClinicID, req.Caller.UserID, req.Caller.Role)

	if !req.Caller.CanManageAppointments() {
		s.logger.Warn("GetClinicAppointments: access denied for caller=%d role=%s",
			req.Caller.UserID, req.Caller.Role)
		return nil, ErrAccessDenied
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetClinicAppointments: invalid filter for clinic=%d: %v", req.ClinicID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.apptRepo.GetByClinicWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetClinicAppointments: repository error for clinic=%d: %v", req.ClinicID, err)
		return nil, fmt.Errorf("%w: GetClinicAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClinicAppointments: successfully fetched %d appointments for clinic=%d",
		len(appointments), req.ClinicID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись на прием и немедленно освобождает слот.
// Идемпотентна: повторная отмена уже отмененной записи - успешный no-op,
// слот при этом не освобождается дважды (отмененные записи не занимают слот).
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d by caller=%d role=%s",
		id, req.Caller.UserID, req.Caller.Role)

	reason, err := normalizeReason(req.Reason)
	if err != nil {
		s.logger.Warn("Cancel: invalid reason for appointment id=%d: %v", id, err)
		return nil, err
	}

	appt, err := s.getAppointment(ctx, id, "Cancel")
	if err != nil {
		return nil, err
	}

	if err := s.checkAppointmentAccess(appt, req.Caller); err != nil {
		s.logger.Warn("Cancel: access denied for caller=%d to appointment id=%d", req.Caller.UserID, id)
		return nil, err
	}

	// Идемпотентность: уже отмененная запись - no-op
	if appt.IsCancelled() {
		s.logger.Info("Cancel: appointment id=%d is already cancelled, no-op", id)
		return models.FromDomainAppointment(appt), nil
	}

	if err := s.apptRepo.Cancel(ctx, id, reason); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found during cancellation", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Перечитываем запись, чтобы вернуть актуальные cancelled_at/updated_at
	cancelled, err := s.getAppointment(ctx, id, "Cancel")
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", id)
	return models.FromDomainAppointment(cancelled), nil
}

// Confirm подтверждает запись на прием (pending -> confirmed)
// Доступно только персоналу и администраторам.
// Идемпотентна для уже подтвержденных записей; подтверждение отмененной
// записи невозможно - cancelled терминален.
func (s *Service) Confirm(ctx context.Context, id int64, caller domain.Caller) (*models.AppointmentResponse, error) {
	s.logger.Info("Confirm: confirming appointment id=%d by caller=%d role=%s", id, caller.UserID, caller.Role)

	if !caller.CanManageAppointments() {
		s.logger.Warn("Confirm: access denied for caller=%d role=%s", caller.UserID, caller.Role)
		return nil, ErrAccessDenied
	}

	appt, err := s.getAppointment(ctx, id, "Confirm")
	if err != nil {
		return nil, err
	}

	// Идемпотентность: уже подтвержденная запись - no-op
	if appt.Status == domain.StatusConfirmed {
		s.logger.Info("Confirm: appointment id=%d is already confirmed, no-op", id)
		return models.FromDomainAppointment(appt), nil
	}

	if !appt.CanBeConfirmed() {
		s.logger.Warn("Confirm: appointment id=%d cannot be confirmed, status=%s", id, appt.Status)
		return nil, ErrInvalidTransition
	}

	if err := s.apptRepo.UpdateStatus(ctx, id, domain.StatusConfirmed); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Confirm: appointment id=%d not found during update", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Confirm: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	appt.Status = domain.StatusConfirmed

	s.logger.Info("Confirm: successfully confirmed appointment id=%d", id)
	return models.FromDomainAppointment(appt), nil
}

// Вспомогательные методы

// getAppointment получает запись с маппингом ошибок репозитория
func (s *Service) getAppointment(ctx context.Context, id int64, op string) (*domain.Appointment, error) {
	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appt, nil
}

// normalizeReason приводит причину отмены к хранимой форме:
// пустая или пробельная причина становится nil
func normalizeReason(raw *string) (*string, error) {
	reason := strings.TrimSpace(ptr.Deref(raw, ""))
	if len(reason) > domain.MaxCancelReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason exceeds %d characters",
			ErrInvalidInput, domain.MaxCancelReasonLength)
	}
	if reason == "" {
		return nil, nil
	}
	return ptr.Ptr(reason), nil
}

// checkAppointmentAccess проверяет, что вызывающий имеет доступ к записи.
// Пациент имеет доступ к своей записи, персонал и администраторы - к любой.
func (s *Service) checkAppointmentAccess(appt *domain.Appointment, caller domain.Caller) error {
	if appt.PatientID == caller.UserID {
		return nil
	}
	if caller.CanManageAppointments() {
		return nil
	}
	return ErrAccessDenied
}
