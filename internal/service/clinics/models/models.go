package models

import (
	"github.com/clinicdesk/CDS-ClinicBookingService/internal/domain"
)

// CreateClinicRequest запрос на создание клиники
type CreateClinicRequest struct {
	Caller        domain.Caller
	Name          string
	Location      string
	DailyCapacity *int
}

// UpdateClinicRequest запрос на изменение клиники. Nil-поля не изменяются.
type UpdateClinicRequest struct {
	Caller        domain.Caller
	Name          *string
	Location      *string
	DailyCapacity *int
	Status        *string
}

// ClinicResponse DTO клиники для внешнего слоя
type ClinicResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Location      string `json:"location"`
	DailyCapacity int    `json:"daily_capacity"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// FromDomainClinic конвертирует доменную модель в DTO
func FromDomainClinic(c *domain.Clinic) *ClinicResponse {
	return &ClinicResponse{
		ID:            c.ID,
		Name:          c.Name,
		Location:      c.Location,
		DailyCapacity: c.EffectiveCapacity(),
		Status:        string(c.Status),
		CreatedAt:     c.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:     c.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// FromDomainClinicList конвертирует список доменных моделей в DTO
func FromDomainClinicList(clinics []*domain.Clinic) []*ClinicResponse {
	out := make([]*ClinicResponse, 0, len(clinics))
	for _, c := range clinics {
		out = append(out, FromDomainClinic(c))
	}
	return out
}

// ToDomainClinicStatus парсит статус клиники
func ToDomainClinicStatus(s string) (domain.ClinicStatus, bool) {
	switch domain.ClinicStatus(s) {
	case domain.ClinicStatusActive, domain.ClinicStatusInactive:
		return domain.ClinicStatus(s), true
	}
	return "", false
}
