package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/CDS-ClinicBookingService/internal/domain"
)

func TestHeaderResolver(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		role    string
		want    domain.Caller
		wantErr error
	}{
		{"patient", "42", "patient", domain.Caller{UserID: 42, Role: domain.RolePatient}, nil},
		{"admin", "1", "admin", domain.Caller{UserID: 1, Role: domain.RoleAdmin}, nil},
		{"missing role defaults to patient", "42", "", domain.Caller{UserID: 42, Role: domain.RolePatient}, nil},
		{"missing user id", "", "patient", domain.Caller{}, ErrNoIdentity},
		{"non-numeric user id", "abc", "patient", domain.Caller{}, ErrInvalidIdentity},
		{"non-positive user id", "0", "patient", domain.Caller{}, ErrInvalidIdentity},
		{"unknown role", "42", "superuser", domain.Caller{}, ErrInvalidIdentity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.userID != "" {
				r.Header.Set("X-User-ID", tc.userID)
			}
			if tc.role != "" {
				r.Header.Set("X-User-Role", tc.role)
			}

			caller, err := HeaderResolver{}.Resolve(r)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, caller)
		})
	}
}

func TestAuth_PassesCallerToHandler(t *testing.T) {
	var got domain.Caller
	var found bool

	handler := Auth(HeaderResolver{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = CallerFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-User-ID", "42")
	r.Header.Set("X-User-Role", "staff")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.True(t, found)
	assert.Equal(t, domain.Caller{UserID: 42, Role: domain.RoleStaff}, got)
}

func TestAuth_RejectsWithoutIdentity(t *testing.T) {
	handler := Auth(HeaderResolver{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached without identity")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_InvalidIdentityIsNotGuestAccess(t *testing.T) {
	handler := Auth(HeaderResolver{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached with invalid identity")
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-User-ID", "42")
	r.Header.Set("X-User-Role", "superuser")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type unavailableResolver struct{}

func (unavailableResolver) Resolve(r *http.Request) (domain.Caller, error) {
	return domain.Caller{}, ErrIdentityUnavailable
}

func TestAuth_IdentityServiceUnavailable(t *testing.T) {
	handler := Auth(unavailableResolver{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached when identity service is down")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
