package update_clinic

import (
	"context"

	"github.com/clinicdesk/CDS-ClinicBookingService/internal/service/clinics/models"
)

type ClinicService interface {
	Update(ctx context.Context, clinicID int64, req *models.UpdateClinicRequest) (*models.ClinicResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
