package reserve_slot

import (
	"errors"
	"net/http"

	"github.com/clinicdesk/CDS-ClinicBookingService/internal/api/handlers"
	"github.com/clinicdesk/CDS-ClinicBookingService/internal/api/middleware"
	reserveSlot "github.com/clinicdesk/CDS-ClinicBookingService/internal/usecase/reserve_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается date=YYYY-MM-DD, startTime=HH:MM"
	msgClinicNotFound     = "клиника не найдена"
	msgCapacityExceeded   = "на выбранную дату не осталось свободных слотов"
	msgReserveConflict    = "не удалось зарезервировать слот из-за конкурентных запросов, повторите попытку"
	msgStoreUnavailable   = "хранилище временно недоступно, повторите попытку позже"
	msgInvalidDate        = "некорректная дата приема"
	msgInvalidInput       = "некорректные данные записи"
	msgForbidden          = "доступ запрещен"
	msgUnauthorized       = "требуется аутентификация"
)

type Handler struct {
	useCase ReserveSlotUseCase
	logger  Logger
}

func NewHandler(useCase ReserveSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req ReserveSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(caller)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, reserveSlot.ErrClinicNotFound):
			h.logger.Warn("POST /appointments - Clinic not found: clinic_id=%d, user_id=%d",
				req.ClinicID, caller.UserID)
			handlers.RespondNotFound(w, msgClinicNotFound)

		case errors.Is(err, reserveSlot.ErrCapacityExceeded):
			h.logger.Warn("POST /appointments - Capacity exceeded: clinic_id=%d, date=%s, user_id=%d",
				req.ClinicID, req.Date, caller.UserID)
			handlers.RespondConflict(w, msgCapacityExceeded)

		case errors.Is(err, reserveSlot.ErrTxConflict):
			h.logger.Warn("POST /appointments - Reservation conflict: clinic_id=%d, date=%s, user_id=%d",
				req.ClinicID, req.Date, caller.UserID)
			handlers.RespondConflict(w, msgReserveConflict)

		case errors.Is(err, reserveSlot.ErrStoreUnavailable):
			h.logger.Error("POST /appointments - Storage unavailable: clinic_id=%d, error=%v", req.ClinicID, err)
			handlers.RespondServiceUnavailable(w, msgStoreUnavailable)

		case errors.Is(err, reserveSlot.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: clinic_id=%d, date=%s, user_id=%d",
				req.ClinicID, req.Date, caller.UserID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, reserveSlot.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: clinic_id=%d, user_id=%d, error=%v",
				req.ClinicID, caller.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, reserveSlot.ErrAccessDenied):
			h.logger.Warn("POST /appointments - Access denied: patient_id=%d, user_id=%d",
				req.PatientID, caller.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /appointments - Failed to reserve slot: clinic_id=%d, user_id=%d, error=%v",
				req.ClinicID, caller.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, clinic_id=%d, user_id=%d",
		result.ID, result.ClinicID, caller.UserID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
