package availability

import (
	"context"
	"fmt"
	"sync"

	"github.com/m04kA/STS-BookingService/internal/domain"
)

// Snapshot состояние доступности на дату в момент доставки.
// Degraded=true означает, что лента изменений временно недоступна и
// Table - последний известный снимок, возможно устаревший
type Snapshot struct {
	Table    *domain.DayAvailability
	Degraded bool
}

// dateWatch общая подписка на одну дату; все наблюдатели даты
// разделяют одну подписку на ленту
type dateWatch struct {
	cancelFeed func()
	snapshot   Snapshot
	hasTable   bool
	watchers   map[int64]func(Snapshot)
}

// Service проектор доступности: превращает набор подтвержденных
// бронирований в таблицы "солярий x слот" на дату.
//
// Таблицы неизменяемые: каждое изменение набора порождает новую таблицу
// целиком, наблюдатели никогда не видят частичных обновлений
type Service struct {
	reader  ConfirmedReader
	feed    SubscriptionFeed
	sunbeds []domain.Sunbed
	logger  Logger

	// feedCtx живет от создания сервиса до Close: подписка на ленту
	// разделяется наблюдателями даты и не должна умирать вместе с
	// контекстом первого из них
	feedCtx    context.Context
	cancelFeed context.CancelFunc

	mu      sync.Mutex
	watches map[string]*dateWatch
	nextID  int64
	closed  bool
}

// NewService создает новый экземпляр проектора доступности
func NewService(reader ConfirmedReader, feed SubscriptionFeed, sunbeds []domain.Sunbed, logger Logger) *Service {
	feedCtx, cancelFeed := context.WithCancel(context.Background())
	return &Service{
		reader:     reader,
		feed:       feed,
		sunbeds:    sunbeds,
		logger:     logger,
		feedCtx:    feedCtx,
		cancelFeed: cancelFeed,
		watches:    make(map[string]*dateWatch),
	}
}

// Table возвращает таблицу доступности на дату.
// Если на дату есть активная подписка, возвращается ее кэшированная
// таблица без похода в хранилище
func (s *Service) Table(ctx context.Context, date string) (*domain.DayAvailability, error) {
	if !domain.IsValidDate(date) {
		return nil, fmt.Errorf("%w: Table - date=%q", ErrInvalidDate, date)
	}

	s.mu.Lock()
	if w, ok := s.watches[date]; ok && w.hasTable {
		table := w.snapshot.Table
		s.mu.Unlock()
		return table, nil
	}
	s.mu.Unlock()

	reservations, err := s.reader.GetConfirmedByDate(ctx, date)
	if err != nil {
		s.logger.Error("Failed to load confirmed reservations for date %s: %v", date, err)
		return nil, fmt.Errorf("%w: Table - load reservations: %v", ErrInternal, err)
	}

	return domain.BuildDayAvailability(date, s.sunbeds, reservations), nil
}

// Watch подписывает на изменения таблицы доступности на дату.
// onUpdate вызывается с начальным снапшотом сразу после подписки, затем
// на каждое изменение набора бронирований. Наблюдатели одной даты
// разделяют одну подписку на ленту. Возвращает функцию отмены подписки
func (s *Service) Watch(ctx context.Context, date string, onUpdate func(Snapshot)) (func(), error) {
	if !domain.IsValidDate(date) {
		return nil, fmt.Errorf("%w: Watch - date=%q", ErrInvalidDate, date)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrServiceClosed
	}

	s.nextID++
	id := s.nextID

	w, ok := s.watches[date]
	if ok {
		w.watchers[id] = onUpdate
		snapshot := w.snapshot
		hasTable := w.hasTable
		s.mu.Unlock()

		if hasTable {
			onUpdate(snapshot)
		}
		return s.unwatchFunc(date, id), nil
	}

	w = &dateWatch{watchers: map[int64]func(Snapshot){id: onUpdate}}
	s.watches[date] = w
	s.mu.Unlock()

	// Подписка общая для всех наблюдателей даты, поэтому живет на
	// контексте сервиса, а не первого подписавшегося: его отключение
	// не должно останавливать доставку остальным
	cancelSub, err := s.feed.SubscribeConfirmed(s.feedCtx, date,
		func(reservations []*domain.Reservation) {
			s.applyChange(date, reservations)
		},
		func(feedErr error) {
			s.markDegraded(date, feedErr)
		},
	)
	if err != nil {
		s.mu.Lock()
		delete(s.watches, date)
		s.mu.Unlock()
		s.logger.Error("Failed to subscribe to feed for date %s: %v", date, err)
		return nil, fmt.Errorf("%w: Watch - subscribe: %v", ErrInternal, err)
	}

	s.mu.Lock()
	if s.closed {
		delete(s.watches, date)
		s.mu.Unlock()
		cancelSub()
		return nil, ErrServiceClosed
	}
	w.cancelFeed = cancelSub
	s.mu.Unlock()

	return s.unwatchFunc(date, id), nil
}

// applyChange строит новую таблицу целиком и доставляет ее наблюдателям
func (s *Service) applyChange(date string, reservations []*domain.Reservation) {
	table := domain.BuildDayAvailability(date, s.sunbeds, reservations)

	s.mu.Lock()
	w, ok := s.watches[date]
	if !ok {
		s.mu.Unlock()
		return
	}
	w.snapshot = Snapshot{Table: table}
	w.hasTable = true
	targets := collectWatchers(w)
	s.mu.Unlock()

	for _, fn := range targets {
		fn(Snapshot{Table: table})
	}
}

// markDegraded помечает дату как деградированную, сохраняя последнюю
// известную таблицу. Наблюдатели получают ее же с флагом Degraded
func (s *Service) markDegraded(date string, err error) {
	s.logger.Warn("Availability feed degraded for date %s: %v", date, err)

	s.mu.Lock()
	w, ok := s.watches[date]
	if !ok || !w.hasTable {
		if ok {
			w.snapshot.Degraded = true
		}
		s.mu.Unlock()
		return
	}
	w.snapshot.Degraded = true
	snapshot := w.snapshot
	targets := collectWatchers(w)
	s.mu.Unlock()

	for _, fn := range targets {
		fn(snapshot)
	}
}

func (s *Service) unwatchFunc(date string, id int64) func() {
	return func() {
		s.mu.Lock()
		w, ok := s.watches[date]
		if !ok {
			s.mu.Unlock()
			return
		}
		delete(w.watchers, id)
		if len(w.watchers) > 0 {
			s.mu.Unlock()
			return
		}
		delete(s.watches, date)
		cancelFeed := w.cancelFeed
		s.mu.Unlock()

		if cancelFeed != nil {
			cancelFeed()
		}
	}
}

// Close снимает все подписки и останавливает сервис
func (s *Service) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	watches := s.watches
	s.watches = make(map[string]*dateWatch)
	s.mu.Unlock()

	s.cancelFeed()
	for _, w := range watches {
		if w.cancelFeed != nil {
			w.cancelFeed()
		}
	}
}

func collectWatchers(w *dateWatch) []func(Snapshot) {
	targets := make([]func(Snapshot), 0, len(w.watchers))
	for _, fn := range w.watchers {
		targets = append(targets, fn)
	}
	return targets
}
