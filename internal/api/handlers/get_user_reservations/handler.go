package get_user_reservations

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/STS-BookingService/internal/api/handlers"
	"github.com/m04kA/STS-BookingService/internal/api/middleware"
	"github.com/m04kA/STS-BookingService/internal/service/reservations/models"
)

const (
	msgAccessDenied = "нет доступа к бронированиям другого пользователя"
	msgUnauthorized = "требуется аутентификация"
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

// Handle GET /api/v1/users/{userId}/reservations
// Query параметр upcoming=true оставляет только предстоящие бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	userID := mux.Vars(r)["userId"]
	if userID != user.ID {
		h.logger.Warn("GET /users/%s/reservations - Access denied: auth_user_id=%s", userID, user.ID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	req := &models.GetUserReservationsRequest{
		UserID:       userID,
		UpcomingOnly: r.URL.Query().Get("upcoming") == "true",
	}

	result, err := h.service.GetUserReservations(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /users/%s/reservations - Failed: %v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
