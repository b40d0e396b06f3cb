package clinics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/CDS-ClinicBookingService/internal/domain"
	clinicstore "github.com/clinicdesk/CDS-ClinicBookingService/internal/infra/storage/clinic"
	"github.com/clinicdesk/CDS-ClinicBookingService/internal/service/clinics/models"
)

type stubLogger struct{}

func (stubLogger) Info(format string, v ...interface{})  {}
func (stubLogger) Warn(format string, v ...interface{})  {}
func (stubLogger) Error(format string, v ...interface{}) {}

type fakeClinicRepo struct {
	clinics map[int64]*domain.Clinic
	nextID  int64
}

func newFakeClinicRepo(clinics ...*domain.Clinic) *fakeClinicRepo {
	repo := &fakeClinicRepo{clinics: make(map[int64]*domain.Clinic), nextID: 1}
	for _, c := range clinics {
		repo.clinics[c.ID] = c
		if c.ID >= repo.nextID {
			repo.nextID = c.ID + 1
		}
	}
	return repo
}

func (r *fakeClinicRepo) Create(ctx context.Context, c *domain.Clinic) (*domain.Clinic, error) {
	created := *c
	created.ID = r.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.nextID++
	r.clinics[created.ID] = &created
	return &created, nil
}

func (r *fakeClinicRepo) GetByID(ctx context.Context, id int64) (*domain.Clinic, error) {
	clinic, ok := r.clinics[id]
	if !ok {
		return nil, clinicstore.ErrClinicNotFound
	}
	copied := *clinic
	return &copied, nil
}

func (r *fakeClinicRepo) List(ctx context.Context) ([]*domain.Clinic, error) {
	var out []*domain.Clinic
	for _, c := range r.clinics {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeClinicRepo) Update(ctx context.Context, id int64, c *domain.Clinic) (*domain.Clinic, error) {
	if _, ok := r.clinics[id]; !ok {
		return nil, clinicstore.ErrClinicNotFound
	}
	updated := *c
	updated.ID = id
	updated.UpdatedAt = time.Now()
	r.clinics[id] = &updated
	return &updated, nil
}

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }

var (
	adminCaller   = domain.Caller{UserID: 1, Role: domain.RoleAdmin}
	patientCaller = domain.Caller{UserID: 42, Role: domain.RolePatient}
)

func activeClinic(id int64) *domain.Clinic {
	return &domain.Clinic{
		ID:       id,
		Name:     "Acme Clinic",
		Location: "Main St 1",
		Status:   domain.ClinicStatusActive,
	}
}

func TestCreate_AdminCreatesClinic(t *testing.T) {
	svc := NewService(newFakeClinicRepo(), stubLogger{})

	resp, err := svc.Create(context.Background(), &models.CreateClinicRequest{
		Caller:        adminCaller,
		Name:          "Acme Clinic",
		Location:      "Main St 1",
		DailyCapacity: intPtr(25),
	})
	require.NoError(t, err)
	require.Equal(t, "Acme Clinic", resp.Name)
	require.Equal(t, 25, resp.DailyCapacity)
	require.Equal(t, string(domain.ClinicStatusActive), resp.Status)
}

func TestCreate_DefaultCapacityWhenUnset(t *testing.T) {
	svc := NewService(newFakeClinicRepo(), stubLogger{})

	resp, err := svc.Create(context.Background(), &models.CreateClinicRequest{
		Caller:   adminCaller,
		Name:     "Acme Clinic",
		Location: "Main St 1",
	})
	require.NoError(t, err)
	require.Equal(t, domain.DefaultDailyCapacity, resp.DailyCapacity)
}

func TestCreate_NonAdminDenied(t *testing.T) {
	svc := NewService(newFakeClinicRepo(), stubLogger{})

	_, err := svc.Create(context.Background(), &models.CreateClinicRequest{
		Caller:   patientCaller,
		Name:     "Acme Clinic",
		Location: "Main St 1",
	})
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreate_InvalidInput(t *testing.T) {
	svc := NewService(newFakeClinicRepo(), stubLogger{})

	tests := []struct {
		name string
		req  *models.CreateClinicRequest
	}{
		{"empty name", &models.CreateClinicRequest{Caller: adminCaller, Location: "Main St 1"}},
		{"empty location", &models.CreateClinicRequest{Caller: adminCaller, Name: "Acme Clinic"}},
		{"zero capacity", &models.CreateClinicRequest{Caller: adminCaller, Name: "Acme Clinic", Location: "Main St 1", DailyCapacity: intPtr(0)}},
		{"capacity above limit", &models.CreateClinicRequest{Caller: adminCaller, Name: "Acme Clinic", Location: "Main St 1", DailyCapacity: intPtr(domain.MaxDailyCapacity + 1)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGetByID_ReturnsClinic(t *testing.T) {
	svc := NewService(newFakeClinicRepo(activeClinic(1)), stubLogger{})

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.ID)
	require.Equal(t, domain.DefaultDailyCapacity, resp.DailyCapacity)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(newFakeClinicRepo(), stubLogger{})

	_, err := svc.GetByID(context.Background(), 99)
	require.ErrorIs(t, err, ErrClinicNotFound)
}

func TestList_ReturnsAll(t *testing.T) {
	svc := NewService(newFakeClinicRepo(activeClinic(1), activeClinic(2)), stubLogger{})

	resp, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, resp, 2)
}

func TestUpdate_PartialUpdate(t *testing.T) {
	repo := newFakeClinicRepo(activeClinic(1))
	svc := NewService(repo, stubLogger{})

	resp, err := svc.Update(context.Background(), 1, &models.UpdateClinicRequest{
		Caller:        adminCaller,
		DailyCapacity: intPtr(50),
		Status:        strPtr(string(domain.ClinicStatusInactive)),
	})
	require.NoError(t, err)
	require.Equal(t, 50, resp.DailyCapacity)
	require.Equal(t, string(domain.ClinicStatusInactive), resp.Status)
	// Неуказанные поля остаются без изменений
	require.Equal(t, "Acme Clinic", resp.Name)
}

func TestUpdate_NonAdminDenied(t *testing.T) {
	svc := NewService(newFakeClinicRepo(activeClinic(1)), stubLogger{})

	_, err := svc.Update(context.Background(), 1, &models.UpdateClinicRequest{Caller: patientCaller})
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdate_UnknownStatusRejected(t *testing.T) {
	svc := NewService(newFakeClinicRepo(activeClinic(1)), stubLogger{})

	_, err := svc.Update(context.Background(), 1, &models.UpdateClinicRequest{
		Caller: adminCaller,
		Status: strPtr("archived"),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewService(newFakeClinicRepo(), stubLogger{})

	_, err := svc.Update(context.Background(), 99, &models.UpdateClinicRequest{Caller: adminCaller})
	require.ErrorIs(t, err, ErrClinicNotFound)
}
