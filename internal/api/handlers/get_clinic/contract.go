package get_clinic

import (
	"context"

	"github.com/clinicdesk/CDS-ClinicBookingService/internal/service/clinics/models"
)

type ClinicService interface {
	GetByID(ctx context.Context, clinicID int64) (*models.ClinicResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
