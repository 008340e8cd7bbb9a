package fsledger

import (
	"context"
	"fmt"

	"github.com/m04kA/STS-BookingService/internal/domain"
)

// SubscribeConfirmed подписывает на изменения набора подтвержденных
// бронирований на дату через snapshot listener Firestore.
// onChange вызывается с начальным снапшотом и на каждое изменение.
// Возвращает функцию отмены подписки
func (l *ReservationLedger) SubscribeConfirmed(
	ctx context.Context,
	date string,
	onChange func([]*domain.Reservation),
	onError func(error),
) (func(), error) {
	subCtx, cancel := context.WithCancel(ctx)

	iter := confirmedByDateQuery(l.col(), date).Snapshots(subCtx)

	go func() {
		defer iter.Stop()
		for {
			snap, err := iter.Next()
			if err != nil {
				// Отмена подписки - штатное завершение
				if subCtx.Err() != nil {
					return
				}
				l.log.Error("fsledger: snapshot listener for date=%s: %v", date, err)
				if onError != nil {
					onError(fmt.Errorf("%w: snapshot listener: %v", ErrQuery, err))
				}
				return
			}

			docs, err := snap.Documents.GetAll()
			if err != nil {
				l.log.Error("fsledger: read snapshot documents for date=%s: %v", date, err)
				if onError != nil {
					onError(fmt.Errorf("%w: read snapshot: %v", ErrQuery, err))
				}
				continue
			}

			reservations, err := decodeSnapshots(docs)
			if err != nil {
				l.log.Error("fsledger: decode snapshot for date=%s: %v", date, err)
				if onError != nil {
					onError(err)
				}
				continue
			}

			onChange(reservations)
		}
	}()

	return cancel, nil
}
