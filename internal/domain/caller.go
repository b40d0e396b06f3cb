package domain

// Role роль вызывающей стороны
type Role string

const (
	RolePatient Role = "patient"
	RoleStaff   Role = "staff"
	RoleAdmin   Role = "admin"
)

// Caller — явная идентичность вызывающей стороны. Передается параметром
// в каждую защищенную операцию; сервис никогда не читает идентичность
// из глобального состояния.
type Caller struct {
	UserID int64
	Role   Role
}

// IsAdmin возвращает true для администратора
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// CanManageAppointments возвращает true для персонала и администраторов
func (c Caller) CanManageAppointments() bool {
	return c.Role == RoleStaff || c.Role == RoleAdmin
}

// IsValidRole проверяет, что роль известна сервису
func IsValidRole(r Role) bool {
	return r == RolePatient || r == RoleStaff || r == RoleAdmin
}
