package topup_wallet

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/STS-BookingService/internal/api/handlers"
	"github.com/m04kA/STS-BookingService/internal/api/middleware"
	walletsvc "github.com/m04kA/STS-BookingService/internal/service/wallet"
	"github.com/m04kA/STS-BookingService/internal/service/wallet/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidHours       = "количество часов должно быть положительным"
	msgWalletNotFound     = "кошелек не найден"
	msgAccessDenied       = "нет доступа к кошельку другого пользователя"
	msgUnauthorized       = "требуется аутентификация"
)

// TopUpWalletRequest HTTP request model
type TopUpWalletRequest struct {
	Hours  float64 `json:"hours"`
	Amount float64 `json:"amount"`
}

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

// Handle POST /api/v1/users/{userId}/wallet/topup
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	userID := mux.Vars(r)["userId"]
	if userID != user.ID {
		h.logger.Warn("POST /users/%s/wallet/topup - Access denied: auth_user_id=%s", userID, user.ID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	var req TopUpWalletRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /users/%s/wallet/topup - Invalid request body: %v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.TopUp(r.Context(), &models.TopUpRequest{
		UserID: user.ID,
		Hours:  req.Hours,
		Amount: req.Amount,
	})
	if err != nil {
		switch {
		case errors.Is(err, walletsvc.ErrInvalidInput):
			h.logger.Warn("POST /users/%s/wallet/topup - Invalid input: hours=%v", userID, req.Hours)
			handlers.RespondBadRequest(w, msgInvalidHours)

		case errors.Is(err, walletsvc.ErrWalletNotFound):
			h.logger.Warn("POST /users/%s/wallet/topup - Wallet not found", userID)
			handlers.RespondNotFound(w, msgWalletNotFound)

		default:
			h.logger.Error("POST /users/%s/wallet/topup - Failed: %v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /users/%s/wallet/topup - Topped up: hours=%v", userID, req.Hours)
	handlers.RespondJSON(w, http.StatusOK, result)
}
