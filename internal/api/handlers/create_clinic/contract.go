package create_clinic

import (
	"context"

	"github.com/clinicdesk/CDS-ClinicBookingService/internal/service/clinics/models"
)

type ClinicService interface {
	Create(ctx context.Context, req *models.CreateClinicRequest) (*models.ClinicResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
