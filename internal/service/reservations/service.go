package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/STS-BookingService/internal/domain"
	"github.com/m04kA/STS-BookingService/internal/infra/events"
	"github.com/m04kA/STS-BookingService/internal/infra/fsledger"
	reservationRepo "github.com/m04kA/STS-BookingService/internal/infra/storage/reservation"
	"github.com/m04kA/STS-BookingService/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями (просмотр и отмена)
// Создание бронирований идет через usecase create_reservation
type Service struct {
	repo         ReservationRepository
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
// publisher может быть nil - тогда события не публикуются
func NewService(repo ReservationRepository, publisher EventPublisher, logger Logger) *Service {
	return &Service{
		repo:         repo,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// isNotFound маппит ошибки "не найдено" обоих бэкендов хранилища
func isNotFound(err error) bool {
	return errors.Is(err, reservationRepo.ErrReservationNotFound) ||
		errors.Is(err, fsledger.ErrReservationNotFound)
}

// GetByID получает бронирование по ID
// Пользователь может видеть только свое бронирование
func (s *Service) GetByID(ctx context.Context, id string, userID string) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%s for user=%s", id, userID)

	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			s.logger.Warn("GetByID: reservation id=%s not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if res.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%s to reservation id=%s", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(res), nil
}

// GetUserReservations получает бронирования пользователя
// Отмененные исключены на уровне хранилища; сортировка: дата и слот по
// убыванию. При UpcomingOnly остаются только предстоящие подтвержденные
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%s, upcomingOnly=%v",
		req.UserID, req.UpcomingOnly)

	reservations, err := s.repo.GetByUserID(ctx, req.UserID)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	if req.UpcomingOnly {
		now := s.timeProvider.Now()
		upcoming := make([]*domain.Reservation, 0, len(reservations))
		for _, r := range reservations {
			if r.IsUpcoming(now) {
				upcoming = append(upcoming, r)
			}
		}
		reservations = upcoming
	}

	s.logger.Info("GetUserReservations: fetched %d reservations for user=%s", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронирование
// Только владелец может отменить свое бронирование. Отмена уже отмененного
// или завершенного бронирования возвращает ErrCannotCancel, несуществующего -
// ErrReservationNotFound (не идемпотентная no-op: повторная отмена не должна
// выглядеть успешной для вызывающего)
func (s *Service) Cancel(ctx context.Context, id string, userID string) error {
	s.logger.Info("Cancel: cancelling reservation id=%s by user=%s", id, userID)

	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			s.logger.Warn("Cancel: reservation id=%s not found", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%s: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if res.UserID != userID {
		s.logger.Warn("Cancel: access denied for user=%s to reservation id=%s", userID, id)
		return ErrAccessDenied
	}

	if !res.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%s cannot be cancelled, status=%s", id, res.Status)
		return ErrCannotCancel
	}

	if err := s.repo.UpdateStatus(ctx, id, domain.StatusCancelled); err != nil {
		if isNotFound(err) {
			s.logger.Warn("Cancel: reservation id=%s not found during cancellation", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%s: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	res.Status = domain.StatusCancelled

	if s.publisher != nil {
		if err := s.publisher.PublishReservation(ctx, events.KeyReservationCancelled, res, 0); err != nil {
			// Публикация best-effort: отмена уже состоялась
			s.logger.Error("Cancel: failed to publish event for reservation id=%s: %v", id, err)
		}
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%s", id)
	return nil
}
