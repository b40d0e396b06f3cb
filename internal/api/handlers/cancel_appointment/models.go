package cancel_appointment

import (
	"github.com/clinicdesk/CDS-ClinicBookingService/internal/domain"
	"github.com/clinicdesk/CDS-ClinicBookingService/internal/service/appointments/models"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelAppointmentRequest) ToServiceRequest(caller domain.Caller) *models.CancelAppointmentRequest {
	return &models.CancelAppointmentRequest{
		Caller: caller,
		Reason: r.Reason,
	}
}
