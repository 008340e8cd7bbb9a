package start_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/STS-BookingService/internal/api/handlers"
	"github.com/m04kA/STS-BookingService/internal/api/middleware"
	startSession "github.com/m04kA/STS-BookingService/internal/usecase/start_session"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgSunbedNotFound      = "солярий не найден"
	msgOutsideWorkingHours = "салон сейчас закрыт"
	msgSlotNotAvailable    = "ближайший слот уже занят"
	msgInsufficientBalance = "недостаточно часов на балансе"
	msgUnauthorized        = "требуется аутентификация"
)

type Handler struct {
	useCase StartSessionUseCase
	logger  Logger
}

func NewHandler(useCase StartSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/start
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req StartSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/start - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &startSession.Request{
		UserID:    user.ID,
		UserName:  user.DisplayName,
		UserEmail: user.Email,
		SunbedID:  req.SunbedID,
	})
	if err != nil {
		switch {
		case errors.Is(err, startSession.ErrSunbedNotFound):
			h.logger.Warn("POST /sessions/start - Sunbed not found: sunbed_id=%s", req.SunbedID)
			handlers.RespondNotFound(w, msgSunbedNotFound)

		case errors.Is(err, startSession.ErrOutsideWorkingHours):
			h.logger.Warn("POST /sessions/start - Outside working hours: user_id=%s", user.ID)
			handlers.RespondError(w, http.StatusConflict, msgOutsideWorkingHours)

		case errors.Is(err, startSession.ErrSlotNotAvailable):
			h.logger.Warn("POST /sessions/start - Slot not available: user_id=%s, sunbed_id=%s", user.ID, req.SunbedID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, startSession.ErrInsufficientBalance):
			h.logger.Warn("POST /sessions/start - Insufficient balance: user_id=%s", user.ID)
			handlers.RespondError(w, http.StatusPaymentRequired, msgInsufficientBalance)

		case errors.Is(err, startSession.ErrInvalidInput):
			h.logger.Warn("POST /sessions/start - Invalid input: user_id=%s: %v", user.ID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /sessions/start - Failed: user_id=%s, error=%v", user.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/start - Session started: reservation_id=%s, user_id=%s, sunbed_id=%s, slot=%s",
		result.ReservationID, user.ID, result.SunbedID, result.Slot)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
