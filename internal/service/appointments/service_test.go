package appointments

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/CDS-ClinicBookingService/internal/domain"
	apptstore "github.com/clinicdesk/CDS-ClinicBookingService/internal/infra/storage/appointment"
	"github.com/clinicdesk/CDS-ClinicBookingService/internal/service/appointments/models"
)

type stubLogger struct{}

func (stubLogger) Info(format string, v ...interface{})  {}
func (stubLogger) Warn(format string, v ...interface{})  {}
func (stubLogger) Error(format string, v ...interface{}) {}

type fakeApptRepo struct {
	appointments map[int64]*domain.Appointment
	cancelCalls  int
	updateCalls  int
}

func newFakeApptRepo(appointments ...*domain.Appointment) *fakeApptRepo {
	repo := &fakeApptRepo{appointments: make(map[int64]*domain.Appointment)}
	for _, appt := range appointments {
		repo.appointments[appt.ID] = appt
	}
	return repo
}

func (r *fakeApptRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := r.appointments[id]
	if !ok {
		return nil, apptstore.ErrAppointmentNotFound
	}
	copied := *appt
	return &copied, nil
}

func (r *fakeApptRepo) GetByPatientID(ctx context.Context, patientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, appt := range r.appointments {
		if appt.PatientID != patientID {
			continue
		}
		if status != nil && appt.Status != *status {
			continue
		}
		out = append(out, appt)
	}
	return out, nil
}

func (r *fakeApptRepo) GetByClinicWithFilter(ctx context.Context, filter domain.ClinicAppointmentsFilter) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, appt := range r.appointments {
		if appt.ClinicID != filter.ClinicID {
			continue
		}
		if !filter.IncludeCancelled && filter.Status == nil && appt.IsCancelled() {
			continue
		}
		out = append(out, appt)
	}
	return out, nil
}

func (r *fakeApptRepo) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	appt, ok := r.appointments[id]
	if !ok {
		return apptstore.ErrAppointmentNotFound
	}
	r.updateCalls++
	appt.Status = status
	return nil
}

func (r *fakeApptRepo) Cancel(ctx context.Context, id int64, reason *string) error {
	appt, ok := r.appointments[id]
	if !ok {
		return apptstore.ErrAppointmentNotFound
	}
	r.cancelCalls++
	now := time.Now()
	appt.Status = domain.StatusCancelled
	appt.CancellationReason = reason
	appt.CancelledAt = &now
	return nil
}

func pendingAppointment(id, clinicID, patientID int64) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		ClinicID:        clinicID,
		ClinicName:      "Acme Clinic",
		Date:            time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		PatientID:       patientID,
		PatientName:     "Иванов Иван",
		AppointmentType: "consultation",
		Status:          domain.StatusPending,
	}
}

var (
	patientCaller = domain.Caller{UserID: 42, Role: domain.RolePatient}
	staffCaller   = domain.Caller{UserID: 7, Role: domain.RoleStaff}
)

func TestGetByID_PatientSeesOwnAppointment(t *testing.T) {
	repo := newFakeApptRepo(pendingAppointment(1, 1, 42))
	svc := NewService(repo, stubLogger{})

	resp, err := svc.GetByID(context.Background(), 1, patientCaller)
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.ID)
}

func TestGetByID_PatientCannotSeeForeignAppointment(t *testing.T) {
	repo := newFakeApptRepo(pendingAppointment(1, 1, 777))
	svc := NewService(repo, stubLogger{})

	_, err := svc.GetByID(context.Background(), 1, patientCaller)
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_StaffSeesAnyAppointment(t *testing.T) {
	repo := newFakeApptRepo(pendingAppointment(1, 1, 777))
	svc := NewService(repo, stubLogger{})

	_, err := svc.GetByID(context.Background(), 1, staffCaller)
	require.NoError(t, err)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(newFakeApptRepo(), stubLogger{})

	_, err := svc.GetByID(context.Background(), 99, staffCaller)
	require.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancel_CancelsPendingAppointment(t *testing.T) {
	repo := newFakeApptRepo(pendingAppointment(1, 1, 42))
	svc := NewService(repo, stubLogger{})

	reason := "не смогу прийти"
	resp, err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		Caller: patientCaller,
		Reason: &reason,
	})
	require.NoError(t, err)
	require.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.NotNil(t, resp.CancelledAt)
	require.Equal(t, 1, repo.cancelCalls)
}

func TestCancel_IdempotentOnCancelled(t *testing.T) {
	appt := pendingAppointment(1, 1, 42)
	appt.Status = domain.StatusCancelled
	repo := newFakeApptRepo(appt)
	svc := NewService(repo, stubLogger{})

	// Повторная отмена - успешный no-op, репозиторий не трогается
	resp, err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{Caller: patientCaller})
	require.NoError(t, err)
	require.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.Equal(t, 0, repo.cancelCalls)
}

func TestCancel_BlankReasonStoredAsNil(t *testing.T) {
	repo := newFakeApptRepo(pendingAppointment(1, 1, 42))
	svc := NewService(repo, stubLogger{})

	reason := "   "
	_, err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		Caller: patientCaller,
		Reason: &reason,
	})
	require.NoError(t, err)
	require.Nil(t, repo.appointments[1].CancellationReason)
}

func TestCancel_OverlongReasonRejected(t *testing.T) {
	repo := newFakeApptRepo(pendingAppointment(1, 1, 42))
	svc := NewService(repo, stubLogger{})

	reason := strings.Repeat("x", domain.MaxCancelReasonLength+1)
	_, err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		Caller: patientCaller,
		Reason: &reason,
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Equal(t, 0, repo.cancelCalls)
}

func TestCancel_ForeignAppointmentDenied(t *testing.T) {
	repo := newFakeApptRepo(pendingAppointment(1, 1, 777))
	svc := NewService(repo, stubLogger{})

	_, err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{Caller: patientCaller})
	require.ErrorIs(t, err, ErrAccessDenied)
	require.Equal(t, 0, repo.cancelCalls)
}

func TestConfirm_ConfirmsPending(t *testing.T) {
	repo := newFakeApptRepo(pendingAppointment(1, 1, 42))
	svc := NewService(repo, stubLogger{})

	resp, err := svc.Confirm(context.Background(), 1, staffCaller)
	require.NoError(t, err)
	require.Equal(t, string(domain.StatusConfirmed), resp.Status)
	require.Equal(t, 1, repo.updateCalls)
}

func TestConfirm_PatientDenied(t *testing.T) {
	repo := newFakeApptRepo(pendingAppointment(1, 1, 42))
	svc := NewService(repo, stubLogger{})

	_, err := svc.Confirm(context.Background(), 1, patientCaller)
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestConfirm_IdempotentOnConfirmed(t *testing.T) {
	appt := pendingAppointment(1, 1, 42)
	appt.Status = domain.StatusConfirmed
	repo := newFakeApptRepo(appt)
	svc := NewService(repo, stubLogger{})

	resp, err := svc.Confirm(context.Background(), 1, staffCaller)
	require.NoError(t, err)
	require.Equal(t, string(domain.StatusConfirmed), resp.Status)
	require.Equal(t, 0, repo.updateCalls)
}

func TestConfirm_CancelledIsTerminal(t *testing.T) {
	appt := pendingAppointment(1, 1, 42)
	appt.Status = domain.StatusCancelled
	repo := newFakeApptRepo(appt)
	svc := NewService(repo, stubLogger{})

	_, err := svc.Confirm(context.Background(), 1, staffCaller)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestGetPatientAppointments_OwnHistory(t *testing.T) {
	repo := newFakeApptRepo(
		pendingAppointment(1, 1, 42),
		pendingAppointment(2, 1, 42),
		pendingAppointment(3, 1, 777),
	)
	svc := NewService(repo, stubLogger{})

	resp, err := svc.GetPatientAppointments(context.Background(), &models.GetPatientAppointmentsRequest{
		Caller:    patientCaller,
		PatientID: 42,
	})
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 2)
}

func TestGetPatientAppointments_ForeignHistoryDenied(t *testing.T) {
	svc := NewService(newFakeApptRepo(), stubLogger{})

	_, err := svc.GetPatientAppointments(context.Background(), &models.GetPatientAppointmentsRequest{
		Caller:    patientCaller,
		PatientID: 777,
	})
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetPatientAppointments_InvalidStatus(t *testing.T) {
	svc := NewService(newFakeApptRepo(), stubLogger{})

	badStatus := "archived"
	_, err := svc.GetPatientAppointments(context.Background(), &models.GetPatientAppointmentsRequest{
		Caller:    patientCaller,
		PatientID: 42,
		Status:    &badStatus,
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetClinicAppointments_StaffOnly(t *testing.T) {
	repo := newFakeApptRepo(pendingAppointment(1, 5, 42))
	svc := NewService(repo, stubLogger{})

	_, err := svc.GetClinicAppointments(context.Background(), &models.GetClinicAppointmentsRequest{
		Caller:   patientCaller,
		ClinicID: 5,
	})
	require.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.GetClinicAppointments(context.Background(), &models.GetClinicAppointmentsRequest{
		Caller:   staffCaller,
		ClinicID: 5,
	})
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
}
