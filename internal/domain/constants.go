package domain

// Default configuration values
const (
	// DefaultDailyCapacity применяется, когда у клиники не задана dailyCapacity
	DefaultDailyCapacity = 100
)

// Business validation constants
const (
	MinDailyCapacity = 1
	MaxDailyCapacity = 10000

	MaxClinicNameLength   = 200
	MaxLocationLength     = 300
	MaxPatientNameLength  = 200
	MaxNotesLength        = 500
	MaxCancelReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// CountedStatuses статусы, занимающие слот при подсчете доступности
var CountedStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}
