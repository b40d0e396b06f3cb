package update_clinic

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/clinicdesk/CDS-ClinicBookingService/internal/api/handlers"
	"github.com/clinicdesk/CDS-ClinicBookingService/internal/api/middleware"
	"github.com/clinicdesk/CDS-ClinicBookingService/internal/service/clinics"
)

const (
	msgInvalidClinicID    = "некорректный ID клиники"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные клиники"
	msgClinicNotFound     = "клиника не найдена"
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

// Handle PUT /api/v1/clinics/{clinicId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	clinicID, err := strconv.ParseInt(vars["clinicId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /clinics/{id} - Invalid clinic ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClinicID)
		return
	}

	var req UpdateClinicRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /clinics/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), clinicID, req.ToServiceRequest(caller))
	if err != nil {
		switch {
		case errors.Is(err, clinics.ErrClinicNotFound):
			h.logger.Warn("PUT /clinics/{id} - Clinic not found: clinic_id=%d", clinicID)
			handlers.RespondNotFound(w, msgClinicNotFound)

		case errors.Is(err, clinics.ErrAccessDenied):
			h.logger.Warn("PUT /clinics/{id} - Access denied: clinic_id=%d, user_id=%d", clinicID, caller.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, clinics.ErrInvalidInput):
			h.logger.Warn("PUT /clinics/{id} - Invalid input: clinic_id=%d, error=%v", clinicID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /clinics/{id} - Failed to update clinic: clinic_id=%d, error=%v", clinicID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /clinics/{id} - Clinic updated: clinic_id=%d, user_id=%d", clinicID, caller.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
