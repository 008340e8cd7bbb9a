package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/STS-BookingService/internal/api/handlers"
	"github.com/m04kA/STS-BookingService/internal/api/middleware"
	createReservation "github.com/m04kA/STS-BookingService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidTime         = "некорректный формат времени, ожидается HH:MM"
	msgInvalidDate         = "некорректная дата бронирования"
	msgInvalidSlot         = "время не попадает в сетку слотов салона"
	msgSlotNotAvailable    = "выбранный слот уже занят"
	msgSunbedNotFound      = "солярий не найден"
	msgInsufficientBalance = "недостаточно часов на балансе"
	msgUnauthorized        = "требуется аутентификация"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(user.ID, user.DisplayName, user.Email)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotNotAvailable):
			h.logger.Warn("POST /reservations - Slot not available: user_id=%s, sunbed_id=%s, date=%s, slot=%s",
				user.ID, req.SunbedID, req.Date, req.Slot)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createReservation.ErrSunbedNotFound):
			h.logger.Warn("POST /reservations - Sunbed not found: sunbed_id=%s", req.SunbedID)
			handlers.RespondNotFound(w, msgSunbedNotFound)

		case errors.Is(err, createReservation.ErrInsufficientBalance):
			h.logger.Warn("POST /reservations - Insufficient balance: user_id=%s", user.ID)
			handlers.RespondError(w, http.StatusPaymentRequired, msgInsufficientBalance)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Invalid date: user_id=%s, date=%s", user.ID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createReservation.ErrInvalidSlot):
			h.logger.Warn("POST /reservations - Invalid slot: user_id=%s, slot=%s", user.ID, req.Slot)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: user_id=%s: %v", user.ID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%s, error=%v", user.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%s, user_id=%s, sunbed_id=%s",
		result.ID, user.ID, req.SunbedID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
