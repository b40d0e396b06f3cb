package check_availability

import (
	"context"
	"time"

	"github.com/clinicdesk/CDS-ClinicBookingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей на прием
type AppointmentRepository interface {
	CountActiveByClinicAndDate(ctx context.Context, clinicID int64, date time.Time) (int, error)
}

// ClinicRepository интерфейс репозитория клиник
type ClinicRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Clinic, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
