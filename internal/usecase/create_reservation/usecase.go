package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/STS-BookingService/internal/domain"
	"github.com/m04kA/STS-BookingService/internal/infra/events"
	walletsvc "github.com/m04kA/STS-BookingService/internal/service/wallet"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	availability    AvailabilityProvider
	walletService   WalletService
	publisher       EventPublisher
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// publisher может быть nil, если публикация событий отключена
func NewUseCase(
	reservationRepo ReservationRepository,
	availability AvailabilityProvider,
	walletService WalletService,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		availability:    availability,
		walletService:   walletService,
		publisher:       publisher,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%s, sunbed=%s, date=%s, slot=%s",
		req.UserID, req.SunbedID, req.Date, req.Slot)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Дата не должна быть в прошлом
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateReservation: date %s is in the past", req.Date)
		return nil, err
	}

	// 4. Солярий должен существовать в каталоге
	sunbed, ok := domain.FindSunbed(domain.DefaultSunbeds, req.SunbedID)
	if !ok {
		uc.logger.Warn("CreateReservation: sunbed id=%s not found", req.SunbedID)
		return nil, ErrSunbedNotFound
	}

	// 5. Быстрая проверка по таблице доступности (без похода в БД,
	// если дата под подпиской). Гонку окончательно закрывает транзакция
	if !req.SkipAvailabilityCheck {
		table, err := uc.availability.Table(ctx, req.Date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get availability table: %v", err)
			return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
		}
		if !table.IsAvailable(req.SunbedID, req.Slot) {
			uc.logger.Warn("CreateReservation: slot %s on %s is taken for sunbed %s",
				req.Slot, req.Date, req.SunbedID)
			return nil, ErrSlotNotAvailable
		}
	}

	// 6. Проверяем баланс кошелька до записи
	wallet, err := uc.walletService.GetWallet(ctx, req.UserID, req.UserEmail, req.UserName)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get wallet for user %s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get wallet: %v", ErrInternal, err)
	}
	if wallet.RemainingHours < domain.SessionHours {
		uc.logger.Warn("CreateReservation: user %s has %.2f hours, session needs %.2f",
			req.UserID, wallet.RemainingHours, domain.SessionHours)
		return nil, ErrInsufficientBalance
	}

	var result *domain.Reservation

	// 7. Проверка конфликта и запись в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		conflict, err := uc.reservationRepo.FindConflict(txCtx, req.SunbedID, req.Date, req.Slot)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to check conflict: %v", err)
			return fmt.Errorf("%w: failed to check conflict: %v", ErrInternal, err)
		}
		if conflict != nil {
			uc.logger.Warn("CreateReservation: slot %s on %s already reserved (id=%s)",
				req.Slot, req.Date, conflict.ID)
			return ErrSlotNotAvailable
		}

		reservation := &domain.Reservation{
			UserID:          req.UserID,
			UserName:        req.UserName,
			UserEmail:       req.UserEmail,
			SunbedID:        sunbed.ID,
			SunbedName:      sunbed.Name,
			Date:            req.Date,
			Slot:            req.Slot,
			DurationMinutes: domain.DefaultSessionMinutes,
			Status:          domain.StatusConfirmed,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%s", result.ID)

	// 8. Списываем часы после фиксации брони.
	// Бронь уже создана, поэтому гонка на балансе здесь не откатывает ее:
	// нехватка часов на этом шаге - редкий случай параллельных списаний
	hoursDeducted := domain.SessionHours
	if err := uc.walletService.Deduct(ctx, req.UserID, domain.SessionHours); err != nil {
		if errors.Is(err, walletsvc.ErrInsufficientBalance) {
			uc.logger.Warn("CreateReservation: balance of user %s drained concurrently, reservation id=%s kept",
				req.UserID, result.ID)
		} else {
			uc.logger.Error("CreateReservation: failed to deduct hours from user %s: %v", req.UserID, err)
		}
		hoursDeducted = 0
	}

	// 9. Публикуем событие, ошибки не роняют операцию
	if uc.publisher != nil {
		if err := uc.publisher.PublishReservation(ctx, events.KeyReservationCreated, result, hoursDeducted); err != nil {
			uc.logger.Error("CreateReservation: failed to publish event for id=%s: %v", result.ID, err)
		}
	}

	return toResponse(result, hoursDeducted), nil
}
