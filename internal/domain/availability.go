package domain

import "time"

// Availability describes remaining slot capacity for a clinic on a date
type Availability struct {
	ClinicID  int64
	Date      time.Time
	Capacity  int // Effective daily capacity
	Booked    int // Non-cancelled appointments on the date
	Remaining int // max(0, Capacity - Booked)
}

// NewAvailability computes availability for a clinic/date pair.
// Remaining is clamped at zero: even if bookings somehow exceed capacity,
// a negative remaining count is never reported.
func NewAvailability(clinicID int64, date time.Time, capacity, booked int) Availability {
	remaining := capacity - booked
	if remaining < 0 {
		remaining = 0
	}
	return Availability{
		ClinicID:  clinicID,
		Date:      date,
		Capacity:  capacity,
		Booked:    booked,
		Remaining: remaining,
	}
}

// HasFreeSlots returns true if at least one slot remains
func (a Availability) HasFreeSlots() bool {
	return a.Remaining > 0
}
