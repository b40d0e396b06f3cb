package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/clinicdesk/CDS-ClinicBookingService/internal/api/handlers"
	"github.com/clinicdesk/CDS-ClinicBookingService/internal/domain"
	"github.com/clinicdesk/CDS-ClinicBookingService/internal/integrations/identity"
)

type callerCtxKey struct{}

const (
	headerUserID = "X-User-ID"
	headerRole   = "X-User-Role"

	msgMissingIdentity     = "не указана идентичность вызывающего"
	msgInvalidIdentity     = "некорректная идентичность вызывающего"
	msgIdentityUnavailable = "сервис аутентификации недоступен"
)

// CallerResolver извлекает идентичность вызывающего из запроса.
// Отсутствие или невалидность идентичности не интерпретируется как гостевой доступ.
type CallerResolver interface {
	Resolve(r *http.Request) (domain.Caller, error)
}

var (
	ErrNoIdentity          = errors.New("middleware: no caller identity in request")
	ErrInvalidIdentity     = errors.New("middleware: invalid caller identity")
	ErrIdentityUnavailable = errors.New("middleware: identity service unavailable")
)

// HeaderResolver извлекает идентичность из заголовков X-User-ID / X-User-Role.
// Предполагается, что заголовки проставлены доверенным API-шлюзом.
type HeaderResolver struct{}

func (HeaderResolver) Resolve(r *http.Request) (domain.Caller, error) {
	rawID := r.Header.Get(headerUserID)
	if rawID == "" {
		return domain.Caller{}, ErrNoIdentity
	}

	userID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || userID <= 0 {
		return domain.Caller{}, ErrInvalidIdentity
	}

	role := domain.Role(r.Header.Get(headerRole))
	if role == "" {
		role = domain.RolePatient
	}
	if !domain.IsValidRole(role) {
		return domain.Caller{}, ErrInvalidIdentity
	}

	return domain.Caller{UserID: userID, Role: role}, nil
}

// IdentityResolver проверяет Bearer-токен через сервис идентичности
type IdentityResolver struct {
	client *identity.Client
}

func NewIdentityResolver(client *identity.Client) *IdentityResolver {
	return &IdentityResolver{client: client}
}

func (ir *IdentityResolver) Resolve(r *http.Request) (domain.Caller, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return domain.Caller{}, ErrNoIdentity
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader || token == "" {
		return domain.Caller{}, ErrInvalidIdentity
	}

	ident, err := ir.client.Introspect(r.Context(), token)
	if err != nil {
		if errors.Is(err, identity.ErrUnavailable) {
			return domain.Caller{}, ErrIdentityUnavailable
		}
		return domain.Caller{}, ErrInvalidIdentity
	}

	role := domain.Role(ident.Role)
	if !domain.IsValidRole(role) {
		return domain.Caller{}, ErrInvalidIdentity
	}

	return domain.Caller{UserID: ident.UserID, Role: role}, nil
}

// Auth извлекает идентичность вызывающего и кладет ее в контекст запроса.
// Запрос без валидной идентичности не доходит до обработчиков.
func Auth(resolver CallerResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, err := resolver.Resolve(r)
			if err != nil {
				switch {
				case errors.Is(err, ErrNoIdentity):
					handlers.RespondUnauthorized(w, msgMissingIdentity)
				case errors.Is(err, ErrIdentityUnavailable):
					handlers.RespondServiceUnavailable(w, msgIdentityUnavailable)
				default:
					handlers.RespondUnauthorized(w, msgInvalidIdentity)
				}
				return
			}

			ctx := context.WithValue(r.Context(), callerCtxKey{}, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerFromContext возвращает идентичность вызывающего из контекста
func CallerFromContext(ctx context.Context) (domain.Caller, bool) {
	caller, ok := ctx.Value(callerCtxKey{}).(domain.Caller)
	return caller, ok
}
