package reservation

import (
	"context"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/STS-BookingService/internal/domain"
)

// Канал NOTIFY, payload - дата изменившегося набора бронирований
// Триггер определен в migrations/001_init.sql
const notifyChannel = "reservations_changed"

const (
	minReconnectInterval = 5 * time.Second
	maxReconnectInterval = time.Minute
	pingInterval         = 90 * time.Second
)

// ConfirmedReader источник подтвержденных бронирований для снапшотов feed'а
type ConfirmedReader interface {
	GetConfirmedByDate(ctx context.Context, date string) ([]*domain.Reservation, error)
}

type subscriber struct {
	date     string
	onChange func([]*domain.Reservation)
	onError  func(error)
}

// Feed push-лента изменений набора подтвержденных бронирований по датам.
// Слушает Postgres NOTIFY и на каждое изменение доставляет подписчикам
// целый свежий снапшот (консистентный набор на дату, без частичных
// обновлений). Каждому подписчику немедленно доставляется начальный
// снапшот, затем все последующие изменения до отмены подписки
type Feed struct {
	listener *pq.Listener
	reader   ConfirmedReader
	log      Logger

	mu     sync.Mutex
	subs   map[int64]*subscriber
	nextID int64
	closed bool

	done chan struct{}
	wg   sync.WaitGroup
}

// NewFeed создает feed и начинает слушать канал NOTIFY
func NewFeed(dsn string, reader ConfirmedReader, log Logger) (*Feed, error) {
	f := &Feed{
		reader: reader,
		log:    log,
		subs:   make(map[int64]*subscriber),
		done:   make(chan struct{}),
	}

	f.listener = pq.NewListener(dsn, minReconnectInterval, maxReconnectInterval,
		func(event pq.ListenerEventType, err error) {
			if err != nil {
				log.Error("Feed: listener event=%d: %v", event, err)
			}
		})

	if err := f.listener.Listen(notifyChannel); err != nil {
		_ = f.listener.Close()
		return nil, err
	}

	f.wg.Add(1)
	go f.run()

	return f, nil
}

func (f *Feed) run() {
	defer f.wg.Done()

	for {
		select {
		case <-f.done:
			return

		case n := <-f.listener.Notify:
			// nil приходит при переподключении - набор мог измениться,
			// пока соединение было потеряно, поэтому обновляем все даты
			if n == nil {
				f.deliverAll()
				continue
			}
			f.deliver(n.Extra)

		case <-time.After(pingInterval):
			if err := f.listener.Ping(); err != nil {
				f.log.Error("Feed: ping failed: %v", err)
			}
		}
	}
}

// SubscribeConfirmed подписывает на изменения набора подтвержденных
// бронирований на дату. onChange вызывается сразу с начальным снапшотом,
// затем на каждое изменение. Возвращает функцию отмены подписки
func (f *Feed) SubscribeConfirmed(
	ctx context.Context,
	date string,
	onChange func([]*domain.Reservation),
	onError func(error),
) (func(), error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, ErrFeedClosed
	}
	f.nextID++
	id := f.nextID
	f.subs[id] = &subscriber{date: date, onChange: onChange, onError: onError}
	f.mu.Unlock()

	// Начальный снапшот доставляем синхронно, чтобы подписчик
	// гарантированно получил состояние до первого изменения
	reservations, err := f.reader.GetConfirmedByDate(ctx, date)
	if err != nil {
		if onError != nil {
			onError(err)
		}
	} else {
		onChange(reservations)
	}

	cancel := func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}
	return cancel, nil
}

// deliver доставляет свежий снапшот всем подписчикам даты
func (f *Feed) deliver(date string) {
	targets := f.subscribersFor(date)
	if len(targets) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reservations, err := f.reader.GetConfirmedByDate(ctx, date)
	if err != nil {
		f.log.Error("Feed: failed to load snapshot for date=%s: %v", date, err)
		for _, s := range targets {
			if s.onError != nil {
				s.onError(err)
			}
		}
		return
	}

	for _, s := range targets {
		s.onChange(reservations)
	}
}

func (f *Feed) deliverAll() {
	f.mu.Lock()
	dates := make(map[string]struct{})
	for _, s := range f.subs {
		dates[s.date] = struct{}{}
	}
	f.mu.Unlock()

	for date := range dates {
		f.deliver(date)
	}
}

func (f *Feed) subscribersFor(date string) []*subscriber {
	f.mu.Lock()
	defer f.mu.Unlock()

	targets := make([]*subscriber, 0)
	for _, s := range f.subs {
		if s.date == date {
			targets = append(targets, s)
		}
	}
	return targets
}

// Close останавливает feed и снимает все подписки
func (f *Feed) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	f.subs = make(map[int64]*subscriber)
	f.mu.Unlock()

	close(f.done)
	err := f.listener.Close()
	f.wg.Wait()
	return err
}
