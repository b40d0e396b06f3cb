package domain

import (
	"time"

	"github.com/clinicdesk/CDS-ClinicBookingService/pkg/types"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a booking request tied to a clinic and a calendar date
type Appointment struct {
	ID       int64
	ClinicID int64

	// Denormalized clinic name for history; capacity accounting always keys
	// on ClinicID, never on the name.
	ClinicName string

	Date      time.Time
	StartTime types.TimeString

	PatientID    int64
	PatientName  string
	PatientPhone *string

	AppointmentType string
	Status          AppointmentStatus
	Notes           *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CountsAgainstCapacity returns true if the appointment occupies a slot.
// Cancelled appointments never count against the clinic's daily capacity.
func (a *Appointment) CountsAgainstCapacity() bool {
	return a.Status != StatusCancelled
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// CanBeCancelled returns true if the appointment can transition to cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanBeConfirmed returns true if the appointment can transition to confirmed
func (a *Appointment) CanBeConfirmed() bool {
	return a.Status == StatusPending
}

// ClinicAppointmentsFilter фильтр для получения записей клиники
type ClinicAppointmentsFilter struct {
	ClinicID         int64              // Обязательный параметр
	StartDate        *time.Time         // Начало периода (опционально)
	EndDate          *time.Time         // Конец периода (опционально)
	Status           *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool               // Включать ли отмененные записи
}
