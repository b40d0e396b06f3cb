package reserve_slot

import (
	"time"

	"github.com/clinicdesk/CDS-ClinicBookingService/internal/domain"
	reserveSlot "github.com/clinicdesk/CDS-ClinicBookingService/internal/usecase/reserve_slot"
	"github.com/clinicdesk/CDS-ClinicBookingService/pkg/types"
)

// ReserveSlotRequest HTTP request model
type ReserveSlotRequest struct {
	ClinicID        int64   `json:"clinicId"`
	Date            string  `json:"date"`      // "2025-10-15"
	StartTime       string  `json:"startTime"` // "10:00"
	PatientID       int64   `json:"patientId,omitempty"`
	PatientName     string  `json:"patientName"`
	PatientPhone    *string `json:"patientPhone,omitempty"`
	AppointmentType string  `json:"appointmentType"`
	Notes           *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID         int64  `json:"id"`
	ClinicID   int64  `json:"clinicId"`
	ClinicName string `json:"clinicName"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`

	PatientID    int64   `json:"patientId"`
	PatientName  string  `json:"patientName"`
	PatientPhone *string `json:"patientPhone,omitempty"`

	AppointmentType string  `json:"appointmentType"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ReserveSlotRequest) ToUseCaseRequest(caller domain.Caller) (*reserveSlot.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &reserveSlot.Request{
		Caller:          caller,
		ClinicID:        r.ClinicID,
		Date:            date,
		StartTime:       startTime,
		PatientID:       r.PatientID,
		PatientName:     r.PatientName,
		PatientPhone:    r.PatientPhone,
		AppointmentType: r.AppointmentType,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reserveSlot.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		ClinicID:        resp.ClinicID,
		ClinicName:      resp.ClinicName,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		PatientID:       resp.PatientID,
		PatientName:     resp.PatientName,
		PatientPhone:    resp.PatientPhone,
		AppointmentType: resp.AppointmentType,
		Status:          resp.Status,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
