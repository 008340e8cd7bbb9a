package start_session

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/STS-BookingService/internal/domain"
	"github.com/m04kA/STS-BookingService/internal/infra/events"
	"github.com/m04kA/STS-BookingService/internal/usecase/create_reservation"
	"github.com/m04kA/STS-BookingService/pkg/types"
)

// UseCase use case запуска сеанса с киоска.
//
// Пользователь сканирует QR-код солярия; сеанс встает на ближайший слот
// сетки к текущему времени. Если на этот слот у пользователя уже есть
// подтвержденное бронирование, оно переиспользуется без повторного
// списания часов
type UseCase struct {
	reservationRepo ReservationRepository
	creator         ReservationCreator
	walletService   WalletService
	publisher       EventPublisher
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// publisher может быть nil, если публикация событий отключена
func NewUseCase(
	reservationRepo ReservationRepository,
	creator ReservationCreator,
	walletService WalletService,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		creator:         creator,
		walletService:   walletService,
		publisher:       publisher,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case запуска сеанса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("StartSession: user=%s, sunbed=%s", req.UserID, req.SunbedID)

	// 1. Валидация входных данных
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}
	if req.SunbedID == "" {
		return nil, fmt.Errorf("%w: sunbedID is required", ErrInvalidInput)
	}

	// 2. Солярий должен существовать в каталоге
	if _, ok := domain.FindSunbed(domain.DefaultSunbeds, req.SunbedID); !ok {
		uc.logger.Warn("StartSession: sunbed id=%s not found", req.SunbedID)
		return nil, ErrSunbedNotFound
	}

	// 3. Проверяем баланс до любых записей
	wallet, err := uc.walletService.GetWallet(ctx, req.UserID, req.UserEmail, req.UserName)
	if err != nil {
		uc.logger.Error("StartSession: failed to get wallet for user %s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get wallet: %v", ErrInternal, err)
	}
	hasBalance := wallet.RemainingHours >= domain.SessionHours

	// 4. Ближайший слот сетки к текущему времени.
	// Вне рабочих часов резолвер дает время за пределами сетки
	now := uc.timeProvider.Now()
	slot := domain.NearestSlot(now)
	if !domain.IsValidSlot(slot) {
		uc.logger.Warn("StartSession: time %s resolves to slot %s outside the grid",
			now.Format(domain.TimeFormat), slot)
		return nil, ErrOutsideWorkingHours
	}
	date := now.Format(domain.DateFormat)

	sessionEnd, err := slot.AddMinutes(domain.DefaultSessionMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute session end: %v", ErrInternal, err)
	}

	// 5. Существующее бронирование на этот слот покрывает сеанс
	existing, err := uc.findExisting(ctx, req.UserID, req.SunbedID, date, slot)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		uc.logger.Info("StartSession: reservation id=%s already covers slot %s, no deduction",
			existing.ID, slot)
		return &Response{
			ReservationID: existing.ID,
			SunbedID:      existing.SunbedID,
			SunbedName:    existing.SunbedName,
			Date:          existing.Date,
			Slot:          existing.Slot,
			SessionEnd:    sessionEnd,
			AlreadyBooked: true,
		}, nil
	}

	// 6. Брони нет - для новой нужен баланс
	if !hasBalance {
		uc.logger.Warn("StartSession: user %s has %.2f hours, session needs %.2f",
			req.UserID, wallet.RemainingHours, domain.SessionHours)
		return nil, ErrInsufficientBalance
	}

	// 7. Создаем бронирование на ближайший слот. Киоск стоит у солярия,
	// локальную таблицу доступности не проверяем - конфликт ловит
	// транзакция создания
	created, err := uc.creator.Execute(ctx, &create_reservation.Request{
		UserID:                req.UserID,
		UserName:              req.UserName,
		UserEmail:             req.UserEmail,
		SunbedID:              req.SunbedID,
		Date:                  date,
		Slot:                  slot,
		SkipAvailabilityCheck: true,
	})
	if err != nil {
		switch {
		case errors.Is(err, create_reservation.ErrSlotNotAvailable):
			uc.logger.Warn("StartSession: slot %s on sunbed %s is taken", slot, req.SunbedID)
			return nil, ErrSlotNotAvailable
		case errors.Is(err, create_reservation.ErrInsufficientBalance):
			return nil, ErrInsufficientBalance
		case errors.Is(err, create_reservation.ErrInvalidDate), errors.Is(err, create_reservation.ErrInvalidSlot):
			return nil, ErrOutsideWorkingHours
		}
		uc.logger.Error("StartSession: failed to create reservation: %v", err)
		return nil, fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
	}

	uc.logger.Info("StartSession: session started, reservation id=%s, slot=%s, ends at %s",
		created.ID, slot, sessionEnd)

	// 8. Публикуем событие запуска сеанса (best-effort)
	if uc.publisher != nil {
		res := &domain.Reservation{
			ID:              created.ID,
			UserID:          req.UserID,
			UserName:        req.UserName,
			UserEmail:       req.UserEmail,
			SunbedID:        created.SunbedID,
			SunbedName:      created.SunbedName,
			Date:            created.Date,
			Slot:            created.Slot,
			DurationMinutes: domain.DefaultSessionMinutes,
			Status:          domain.StatusConfirmed,
		}
		if err := uc.publisher.PublishReservation(ctx, events.KeySessionStarted, res, created.HoursDeducted); err != nil {
			uc.logger.Warn("StartSession: failed to publish session started event: %v", err)
		}
	}

	return &Response{
		ReservationID: created.ID,
		SunbedID:      created.SunbedID,
		SunbedName:    created.SunbedName,
		Date:          created.Date,
		Slot:          created.Slot,
		SessionEnd:    sessionEnd,
		HoursDeducted: created.HoursDeducted,
	}, nil
}

// findExisting ищет подтвержденное бронирование пользователя на слот
func (uc *UseCase) findExisting(
	ctx context.Context,
	userID, sunbedID, date string,
	slot types.TimeString,
) (*domain.Reservation, error) {
	reservations, err := uc.reservationRepo.GetByUserID(ctx, userID)
	if err != nil {
		uc.logger.Error("StartSession: failed to get reservations for user %s: %v", userID, err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	for _, r := range reservations {
		if r.IsConfirmed() && r.Date == date && r.Slot == slot && r.SunbedID == sunbedID {
			return r, nil
		}
	}
	return nil, nil
}
