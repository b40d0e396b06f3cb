package create_clinic

import (
	"github.com/clinicdesk/CDS-ClinicBookingService/internal/domain"
	"github.com/clinicdesk/CDS-ClinicBookingService/internal/service/clinics/models"
)

// CreateClinicRequest HTTP request model
type CreateClinicRequest struct {
	Name          string `json:"name"`
	Location      string `json:"location"`
	DailyCapacity *int   `json:"dailyCapacity,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateClinicRequest) ToServiceRequest(caller domain.Caller) *models.CreateClinicRequest {
	return &models.CreateClinicRequest{
		Caller:        caller,
		Name:          r.Name,
		Location:      r.Location,
		DailyCapacity: r.DailyCapacity,
	}
}
