package update_clinic

import (
	"github.com/clinicdesk/CDS-ClinicBookingService/internal/domain"
	"github.com/clinicdesk/CDS-ClinicBookingService/internal/service/clinics/models"
)

// UpdateClinicRequest HTTP request model. Nil-поля не изменяются.
type UpdateClinicRequest struct {
	Name          *string `json:"name,omitempty"`
	Location      *string `json:"location,omitempty"`
	DailyCapacity *int    `json:"dailyCapacity,omitempty"`
	Status        *string `json:"status,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateClinicRequest) ToServiceRequest(caller domain.Caller) *models.UpdateClinicRequest {
	return &models.UpdateClinicRequest{
		Caller:        caller,
		Name:          r.Name,
		Location:      r.Location,
		DailyCapacity: r.DailyCapacity,
		Status:        r.Status,
	}
}
