package reserve_slot

import (
	"time"

	"github.com/clinicdesk/CDS-ClinicBookingService/internal/domain"
	"github.com/clinicdesk/CDS-ClinicBookingService/pkg/types"
)

// Request модель запроса на резервирование слота
type Request struct {
	Caller    domain.Caller    // Идентичность вызывающего (явный параметр, не ambient state)
	ClinicID  int64            // ID клиники
	Date      time.Time        // Дата приема (без времени)
	StartTime types.TimeString // Время приема (например, "10:00")

	// PatientID пациент, для которого создается запись.
	// 0 означает "сам вызывающий"; значение, отличное от вызывающего,
	// допустимо только для персонала и администраторов.
	PatientID int64

	PatientName     string  // ФИО пациента
	PatientPhone    *string // Телефон (опционально)
	AppointmentType string  // Тип приема
	Notes           *string // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID         int64            // ID созданной записи
	ClinicID   int64            // ID клиники
	ClinicName string           // Название клиники (денормализация для истории)
	Date       time.Time        // Дата приема
	StartTime  types.TimeString // Время приема

	PatientID    int64   // ID пациента
	PatientName  string  // ФИО пациента
	PatientPhone *string // Телефон

	AppointmentType string  // Тип приема
	Status          string  // Статус записи (pending при создании)
	Notes           *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

func toResponse(a *domain.Appointment) *Response {
	return &Response{
		ID:              a.ID,
		ClinicID:        a.ClinicID,
		ClinicName:      a.ClinicName,
		Date:            a.Date,
		StartTime:       a.StartTime,
		PatientID:       a.PatientID,
		PatientName:     a.PatientName,
		PatientPhone:    a.PatientPhone,
		AppointmentType: a.AppointmentType,
		Status:          string(a.Status),
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
