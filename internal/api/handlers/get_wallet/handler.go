package get_wallet

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/STS-BookingService/internal/api/handlers"
	"github.com/m04kA/STS-BookingService/internal/api/middleware"
)

const (
	msgAccessDenied = "нет доступа к кошельку другого пользователя"
	msgUnauthorized = "требуется аутентификация"
)

type Handler struct {
	service WalletService
	logger  Logger
}

func NewHandler(service WalletService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/wallet
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	userID := mux.Vars(r)["userId"]
	if userID != user.ID {
		h.logger.Warn("GET /users/%s/wallet - Access denied: auth_user_id=%s", userID, user.ID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	result, err := h.service.GetWallet(r.Context(), user.ID, user.Email, user.DisplayName)
	if err != nil {
		h.logger.Error("GET /users/%s/wallet - Failed: %v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
