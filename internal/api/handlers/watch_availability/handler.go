package watch_availability

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/STS-BookingService/internal/api/handlers"
	"github.com/m04kA/STS-BookingService/internal/service/availability"
)

const (
	msgMissingDate        = "параметр date обязателен"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgStreamNotSupported = "потоковая передача не поддерживается"
)

type Handler struct {
	watcher AvailabilityWatcher
	logger  Logger
}

func NewHandler(watcher AvailabilityWatcher, logger Logger) *Handler {
	return &Handler{
		watcher: watcher,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/watch?date=YYYY-MM-DD
//
// Server-Sent Events: каждое изменение набора бронирований на дату
// приходит отдельным событием с целой таблицей доступности.
// Подписка живет, пока клиент держит соединение
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.logger.Error("GET /availability/watch - ResponseWriter does not support flushing")
		handlers.RespondError(w, http.StatusInternalServerError, msgStreamNotSupported)
		return
	}

	// Буфер на несколько снапшотов; при переполнении старые вытесняются,
	// клиенту важен только последний
	updates := make(chan availability.Snapshot, 4)
	unwatch, err := h.watcher.Watch(r.Context(), date, func(s availability.Snapshot) {
		for {
			select {
			case updates <- s:
				return
			default:
				select {
				case <-updates:
				default:
				}
			}
		}
	})
	if err != nil {
		if errors.Is(err, availability.ErrInvalidDate) {
			h.logger.Warn("GET /availability/watch - Invalid date: %q", date)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		h.logger.Error("GET /availability/watch - Failed to subscribe: date=%s, error=%v", date, err)
		handlers.RespondInternalError(w)
		return
	}
	defer unwatch()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	h.logger.Info("GET /availability/watch - Client subscribed: date=%s", date)

	for {
		select {
		case <-r.Context().Done():
			h.logger.Info("GET /availability/watch - Client disconnected: date=%s", date)
			return

		case snapshot := <-updates:
			payload, err := json.Marshal(toEvent(snapshot))
			if err != nil {
				h.logger.Error("GET /availability/watch - Failed to marshal event: %v", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
