package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointment_CountsAgainstCapacity(t *testing.T) {
	assert.True(t, (&Appointment{Status: StatusPending}).CountsAgainstCapacity())
	assert.True(t, (&Appointment{Status: StatusConfirmed}).CountsAgainstCapacity())
	assert.False(t, (&Appointment{Status: StatusCancelled}).CountsAgainstCapacity())
}

func TestAppointment_Transitions(t *testing.T) {
	pending := &Appointment{Status: StatusPending}
	confirmed := &Appointment{Status: StatusConfirmed}
	cancelled := &Appointment{Status: StatusCancelled}

	assert.True(t, pending.CanBeCancelled())
	assert.True(t, confirmed.CanBeCancelled())
	assert.False(t, cancelled.CanBeCancelled())

	assert.True(t, pending.CanBeConfirmed())
	assert.False(t, confirmed.CanBeConfirmed())
	assert.False(t, cancelled.CanBeConfirmed())

	assert.True(t, cancelled.IsCancelled())
	assert.False(t, pending.IsCancelled())
}

func TestCaller_Permissions(t *testing.T) {
	assert.True(t, Caller{Role: RoleAdmin}.IsAdmin())
	assert.False(t, Caller{Role: RoleStaff}.IsAdmin())

	assert.True(t, Caller{Role: RoleStaff}.CanManageAppointments())
	assert.True(t, Caller{Role: RoleAdmin}.CanManageAppointments())
	assert.False(t, Caller{Role: RolePatient}.CanManageAppointments())
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(RolePatient))
	assert.True(t, IsValidRole(RoleStaff))
	assert.True(t, IsValidRole(RoleAdmin))
	assert.False(t, IsValidRole("superuser"))
	assert.False(t, IsValidRole(""))
}
