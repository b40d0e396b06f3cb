package create_clinic

import (
	"errors"
	"net/http"

	"github.com/clinicdesk/CDS-ClinicBookingService/internal/api/handlers"
	"github.com/clinicdesk/CDS-ClinicBookingService/internal/api/middleware"
	"github.com/clinicdesk/CDS-ClinicBookingService/internal/service/clinics"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные клиники"
	msgForbidden          = "доступ запрещен"
	msgUnauthorized       = "требуется аутентификация"
)

type Handler struct {
	service ClinicService
	logger  Logger
}

func NewHandler(service ClinicService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/clinics
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateClinicRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /clinics - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), req.ToServiceRequest(caller))
	if err != nil {
		switch {
		case errors.Is(err, clinics.ErrAccessDenied):
			h.logger.Warn("POST /clinics - Access denied: user_id=%d", caller.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, clinics.ErrInvalidInput):
			h.logger.Warn("POST /clinics - Invalid input: user_id=%d, error=%v", caller.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /clinics - Failed to create clinic: user_id=%d, error=%v", caller.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /clinics - Clinic created: clinic_id=%d, user_id=%d", result.ID, caller.UserID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
