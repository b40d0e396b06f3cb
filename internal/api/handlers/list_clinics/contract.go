package list_clinics

import (
	"context"

	"github.com/clinicdesk/CDS-ClinicBookingService/internal/service/clinics/models"
)

type ClinicService interface {
	List(ctx context.Context) ([]*models.ClinicResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
