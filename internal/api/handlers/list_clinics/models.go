package list_clinics

import (
	"github.com/clinicdesk/CDS-ClinicBookingService/internal/service/clinics/models"
)

// ClinicListResponse HTTP response model
type ClinicListResponse struct {
	Clinics []*models.ClinicResponse `json:"clinics"`
}
