package reserve_slot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/CDS-ClinicBookingService/internal/domain"
	clinicstore "github.com/clinicdesk/CDS-ClinicBookingService/internal/infra/storage/clinic"
	"github.com/clinicdesk/CDS-ClinicBookingService/pkg/metrics"
	"github.com/clinicdesk/CDS-ClinicBookingService/pkg/txmanager"
	"github.com/clinicdesk/CDS-ClinicBookingService/pkg/types"
)

type stubLogger struct{}

func (stubLogger) Info(format string, v ...interface{}) {}
func (stubLogger) Warn(format string, v ...interface{}) {}
func (stubLogger) Error(format string, v ...interface{}) {}

// fakeStore хранит клиники и записи в памяти. Мьютекс берет fakeTxManager,
// эмулируя сериализуемое выполнение check-and-insert.
type fakeStore struct {
	mu           sync.Mutex
	clinics      map[int64]*domain.Clinic
	appointments []*domain.Appointment
	nextID       int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		clinics: make(map[int64]*domain.Clinic),
		nextID:  1,
	}
}

func (s *fakeStore) GetByID(ctx context.Context, id int64) (*domain.Clinic, error) {
	clinic, ok := s.clinics[id]
	if !ok {
		return nil, clinicstore.ErrClinicNotFound
	}
	return clinic, nil
}

func (s *fakeStore) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	created := *appt
	created.ID = s.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	s.nextID++
	s.appointments = append(s.appointments, &created)
	return &created, nil
}

func (s *fakeStore) GetByClinicAndDate(ctx context.Context, clinicID int64, date time.Time, includeCancelled bool) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, appt := range s.appointments {
		if appt.ClinicID != clinicID || !appt.Date.Equal(date) {
			continue
		}
		if !includeCancelled && appt.IsCancelled() {
			continue
		}
		out = append(out, appt)
	}
	return out, nil
}

// fakeTxManager сериализует все "транзакции" одним мьютексом
type fakeTxManager struct {
	store *fakeStore
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return fn(ctx)
}

// failTxManager всегда возвращает заданную ошибку
type failTxManager struct {
	err error
}

func (m *failTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.err
}

type countingObserver struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func newCountingObserver() *countingObserver {
	return &countingObserver{outcomes: make(map[string]int)}
}

func (o *countingObserver) IncReservation(outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes[outcome]++
}

func newTestUseCase(store *fakeStore) *UseCase {
	return NewUseCase(store, store, &fakeTxManager{store: store}, stubLogger{})
}

func validRequest(clinicID int64, date time.Time) *Request {
	startTime, _ := types.NewTimeStringFromString("10:00")
	return &Request{
		Caller:          domain.Caller{UserID: 42, Role: domain.RolePatient},
		ClinicID:        clinicID,
		Date:            date,
		StartTime:       startTime,
		PatientName:     "Иванов Иван",
		AppointmentType: "consultation",
	}
}

func futureDate() time.Time {
	return time.Now().AddDate(0, 0, 7).Truncate(24 * time.Hour)
}

func addClinic(store *fakeStore, id int64, capacity *int, status domain.ClinicStatus) {
	store.clinics[id] = &domain.Clinic{
		ID:            id,
		Name:          "Acme Clinic",
		Location:      "Main St 1",
		DailyCapacity: capacity,
		Status:        status,
	}
}

func intPtr(v int) *int { return &v }

func TestExecute_AdmitsUntilCapacity(t *testing.T) {
	store := newFakeStore()
	addClinic(store, 1, intPtr(2), domain.ClinicStatusActive)

	uc := newTestUseCase(store)
	observer := newCountingObserver()
	uc.SetOutcomeObserver(observer)

	date := futureDate()

	for i := 0; i < 2; i++ {
		resp, err := uc.Execute(context.Background(), validRequest(1, date))
		require.NoError(t, err)
		require.Equal(t, "Acme Clinic", resp.ClinicName)
		require.Equal(t, string(domain.StatusPending), resp.Status)
		require.Equal(t, int64(42), resp.PatientID)
	}

	_, err := uc.Execute(context.Background(), validRequest(1, date))
	require.ErrorIs(t, err, ErrCapacityExceeded)

	require.Equal(t, 2, observer.outcomes[metrics.ReservationOutcomeAdmitted])
	require.Equal(t, 1, observer.outcomes[metrics.ReservationOutcomeCapacityExceeded])
}

func TestExecute_ConcurrentAdmitsExactlyCapacity(t *testing.T) {
	const capacity = 3
	const attempts = 10

	store := newFakeStore()
	addClinic(store, 1, intPtr(capacity), domain.ClinicStatusActive)

	uc := newTestUseCase(store)
	date := futureDate()

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, errs[n] = uc.Execute(context.Background(), validRequest(1, date))
		}(i)
	}
	wg.Wait()

	admitted, rejected := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			admitted++
		case errors.Is(err, ErrCapacityExceeded):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	require.Equal(t, capacity, admitted)
	require.Equal(t, attempts-capacity, rejected)
	require.Len(t, store.appointments, capacity)
}

func TestExecute_CancelledAppointmentFreesSlot(t *testing.T) {
	store := newFakeStore()
	addClinic(store, 1, intPtr(1), domain.ClinicStatusActive)

	uc := newTestUseCase(store)
	date := futureDate()

	_, err := uc.Execute(context.Background(), validRequest(1, date))
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), validRequest(1, date))
	require.ErrorIs(t, err, ErrCapacityExceeded)

	// Отмена освобождает слот немедленно
	store.appointments[0].Status = domain.StatusCancelled

	_, err = uc.Execute(context.Background(), validRequest(1, date))
	require.NoError(t, err)
}

func TestExecute_DifferentDatesDoNotShareCapacity(t *testing.T) {
	store := newFakeStore()
	addClinic(store, 1, intPtr(1), domain.ClinicStatusActive)

	uc := newTestUseCase(store)

	_, err := uc.Execute(context.Background(), validRequest(1, futureDate()))
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), validRequest(1, futureDate().AddDate(0, 0, 1)))
	require.NoError(t, err)
}

func TestExecute_ClinicNotFound(t *testing.T) {
	store := newFakeStore()
	uc := newTestUseCase(store)

	_, err := uc.Execute(context.Background(), validRequest(99, futureDate()))
	require.ErrorIs(t, err, ErrClinicNotFound)
}

func TestExecute_InactiveClinic(t *testing.T) {
	store := newFakeStore()
	addClinic(store, 1, intPtr(5), domain.ClinicStatusInactive)

	uc := newTestUseCase(store)

	_, err := uc.Execute(context.Background(), validRequest(1, futureDate()))
	require.ErrorIs(t, err, ErrClinicNotFound)
}

func TestExecute_PastDateRejected(t *testing.T) {
	store := newFakeStore()
	addClinic(store, 1, intPtr(5), domain.ClinicStatusActive)

	uc := newTestUseCase(store)

	_, err := uc.Execute(context.Background(), validRequest(1, time.Now().AddDate(0, 0, -1)))
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_PatientCannotBookForOther(t *testing.T) {
	store := newFakeStore()
	addClinic(store, 1, intPtr(5), domain.ClinicStatusActive)

	uc := newTestUseCase(store)

	req := validRequest(1, futureDate())
	req.PatientID = 777

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_StaffCanBookForOther(t *testing.T) {
	store := newFakeStore()
	addClinic(store, 1, intPtr(5), domain.ClinicStatusActive)

	uc := newTestUseCase(store)

	req := validRequest(1, futureDate())
	req.Caller = domain.Caller{UserID: 10, Role: domain.RoleStaff}
	req.PatientID = 777

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, int64(777), resp.PatientID)
}

func TestExecute_ValidationErrors(t *testing.T) {
	store := newFakeStore()
	addClinic(store, 1, intPtr(5), domain.ClinicStatusActive)
	uc := newTestUseCase(store)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero clinic id", func(r *Request) { r.ClinicID = 0 }},
		{"zero caller", func(r *Request) { r.Caller.UserID = 0 }},
		{"unknown role", func(r *Request) { r.Caller.Role = "superuser" }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"empty start time", func(r *Request) { r.StartTime = "" }},
		{"malformed start time", func(r *Request) { r.StartTime = "25:99" }},
		{"empty patient name", func(r *Request) { r.PatientName = "" }},
		{"empty appointment type", func(r *Request) { r.AppointmentType = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest(1, futureDate())
			tc.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_TxConflictMapped(t *testing.T) {
	store := newFakeStore()
	addClinic(store, 1, intPtr(5), domain.ClinicStatusActive)

	conflictErr := fmt.Errorf("%w: after 3 attempts", txmanager.ErrTxConflict)
	uc := NewUseCase(store, store, &failTxManager{err: conflictErr}, stubLogger{})
	observer := newCountingObserver()
	uc.SetOutcomeObserver(observer)

	_, err := uc.Execute(context.Background(), validRequest(1, futureDate()))
	require.ErrorIs(t, err, ErrTxConflict)
	require.Equal(t, 1, observer.outcomes[metrics.ReservationOutcomeConflict])
}

func TestExecute_StoreUnavailableMapped(t *testing.T) {
	store := newFakeStore()
	addClinic(store, 1, intPtr(5), domain.ClinicStatusActive)

	unavailableErr := fmt.Errorf("%w: after 3 attempts", txmanager.ErrUnavailable)
	uc := NewUseCase(store, store, &failTxManager{err: unavailableErr}, stubLogger{})

	_, err := uc.Execute(context.Background(), validRequest(1, futureDate()))
	require.ErrorIs(t, err, ErrStoreUnavailable)
}
