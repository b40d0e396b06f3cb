package domain

import (
	"errors"
	"fmt"
	"time"
)

// ClinicStatus represents whether a clinic accepts new appointments
type ClinicStatus string

const (
	ClinicStatusActive   ClinicStatus = "active"
	ClinicStatusInactive ClinicStatus = "inactive"
)

// ErrInvalidClinicRecord возвращается, когда запись клиники из хранилища
// не проходит валидацию на границе (битая capacity или неизвестный статус)
var ErrInvalidClinicRecord = errors.New("domain: invalid clinic record")

// Clinic represents a bookable service location with a configured daily capacity
type Clinic struct {
	ID       int64
	Name     string
	Location string

	// DailyCapacity is the configured number of bookable slots per calendar
	// day. nil means "not configured" and falls back to DefaultDailyCapacity —
	// a policy choice, not an error path.
	DailyCapacity *int

	Status ClinicStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveCapacity returns the configured daily capacity, or the default
// when none is set
func (c *Clinic) EffectiveCapacity() int {
	if c.DailyCapacity == nil {
		return DefaultDailyCapacity
	}
	return *c.DailyCapacity
}

// IsActive returns true if the clinic accepts new appointments
func (c *Clinic) IsActive() bool {
	return c.Status == ClinicStatusActive
}

// Validate проверяет запись клиники, прочитанную из хранилища.
// Хранимой форме не доверяем: битые записи отклоняются, а не интерпретируются.
func (c *Clinic) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: empty name (id=%d)", ErrInvalidClinicRecord, c.ID)
	}
	if c.DailyCapacity != nil && *c.DailyCapacity <= 0 {
		return fmt.Errorf("%w: non-positive daily capacity %d (id=%d)", ErrInvalidClinicRecord, *c.DailyCapacity, c.ID)
	}
	if c.Status != ClinicStatusActive && c.Status != ClinicStatusInactive {
		return fmt.Errorf("%w: unknown status %q (id=%d)", ErrInvalidClinicRecord, c.Status, c.ID)
	}
	return nil
}
