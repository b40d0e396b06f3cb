package models

import (
	"errors"
	"time"

	"github.com/clinicdesk/CDS-ClinicBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	Caller domain.Caller
	Reason *string
}

// GetPatientAppointmentsRequest запрос на получение записей пациента
type GetPatientAppointmentsRequest struct {
	Caller    domain.Caller
	PatientID int64
	Status    *string
}

// GetClinicAppointmentsRequest запрос на получение записей клиники
type GetClinicAppointmentsRequest struct {
	Caller           domain.Caller
	ClinicID         int64
	StartDate        *time.Time // Начало периода (опционально)
	EndDate          *time.Time // Конец периода (опционально)
	Status           *string    // Фильтр по статусу (опционально)
	IncludeCancelled bool       // Включить отмененные записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetClinicAppointmentsRequest) ToDomainFilter() (domain.ClinicAppointmentsFilter, error) {
	filter := domain.ClinicAppointmentsFilter{
		ClinicID:         r.ClinicID,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		IncludeCancelled: r.IncludeCancelled,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи на прием
type AppointmentResponse struct {
	ID         int64  `json:"id"`
	ClinicID   int64  `json:"clinicId"`
	ClinicName string `json:"clinicName"`
	Date       string `json:"date"`      // "2025-10-15"
	StartTime  string `json:"startTime"` // "10:00"

	PatientID    int64   `json:"patientId"`
	PatientName  string  `json:"patientName"`
	PatientPhone *string `json:"patientPhone,omitempty"`

	AppointmentType string  `json:"appointmentType"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		ClinicID:           a.ClinicID,
		ClinicName:         a.ClinicName,
		Date:               a.Date.Format(domain.DateFormat),
		StartTime:          a.StartTime.String(),
		PatientID:          a.PatientID,
		PatientName:        a.PatientName,
		PatientPhone:       a.PatientPhone,
		AppointmentType:    a.AppointmentType,
		Status:             string(a.Status),
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	if appointments == nil {
		return &AppointmentListResponse{
			Appointments: []AppointmentResponse{},
		}
	}

	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, len(appointments)),
	}

	for i, appt := range appointments {
		if apptResp := FromDomainAppointment(appt); apptResp != nil {
			resp.Appointments[i] = *apptResp
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)

	switch s {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled:
		return s, nil
	}

	return "", ErrInvalidStatus
}
