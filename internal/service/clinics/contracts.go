package clinics

import (
	"context"

	"github.com/clinicdesk/CDS-ClinicBookingService/internal/domain"
)

// ClinicRepository интерфейс репозитория клиник
type ClinicRepository interface {
	Create(ctx context.Context, c *domain.Clinic) (*domain.Clinic, error)
	GetByID(ctx context.Context, id int64) (*domain.Clinic, error)
	List(ctx context.Context) ([]*domain.Clinic, error)
	Update(ctx context.Context, id int64, c *domain.Clinic) (*domain.Clinic, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
