package check_availability

import (
	"github.com/clinicdesk/CDS-ClinicBookingService/internal/domain"
	checkAvailability "github.com/clinicdesk/CDS-ClinicBookingService/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ClinicID  int64  `json:"clinicId"`
	Date      string `json:"date"` // "2025-10-15"
	Capacity  int    `json:"capacity"`
	Booked    int    `json:"booked"`
	Remaining int    `json:"remaining"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		ClinicID:  resp.ClinicID,
		Date:      resp.Date.Format(domain.DateFormat),
		Capacity:  resp.Capacity,
		Booked:    resp.Booked,
		Remaining: resp.Remaining,
	}
}
