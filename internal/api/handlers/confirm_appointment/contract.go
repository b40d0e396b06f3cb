package confirm_appointment

import (
	"context"

	"github.com/clinicdesk/CDS-ClinicBookingService/internal/domain"
	"github.com/clinicdesk/CDS-ClinicBookingService/internal/service/appointments/models"
)

type AppointmentService interface {
	Confirm(ctx context.Context, id int64, caller domain.Caller) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
