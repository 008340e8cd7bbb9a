package cancel_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/STS-BookingService/internal/api/handlers"
	"github.com/m04kA/STS-BookingService/internal/api/middleware"
	"github.com/m04kA/STS-BookingService/internal/service/reservations"
)

const (
	msgReservationNotFound = "бронирование не найдено"
	msgAccessDenied        = "нет доступа к этому бронированию"
	msgCannotCancel        = "бронирование нельзя отменить"
	msgUnauthorized        = "требуется аутентификация"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	reservationID := mux.Vars(r)["reservationId"]

	if err := h.service.Cancel(r.Context(), reservationID, user.ID); err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/%s/cancel - Not found: user_id=%s", reservationID, user.ID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/%s/cancel - Access denied: user_id=%s", reservationID, user.ID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, reservations.ErrCannotCancel):
			h.logger.Warn("PATCH /reservations/%s/cancel - Cannot cancel: user_id=%s", reservationID, user.ID)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		default:
			h.logger.Error("PATCH /reservations/%s/cancel - Failed: user_id=%s, error=%v", reservationID, user.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/%s/cancel - Cancelled: user_id=%s", reservationID, user.ID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
