package availability

import (
	"context"

	"github.com/m04kA/STS-BookingService/internal/domain"
)

// ConfirmedReader источник подтвержденных бронирований для разовых чтений
type ConfirmedReader interface {
	GetConfirmedByDate(ctx context.Context, date string) ([]*domain.Reservation, error)
}

// SubscriptionFeed push-лента изменений набора подтвержденных бронирований.
// onChange получает целый свежий снапшот на дату, начиная с начального
type SubscriptionFeed interface {
	SubscribeConfirmed(
		ctx context.Context,
		date string,
		onChange func([]*domain.Reservation),
		onError func(error),
	) (func(), error)
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...any)
	Info(format string, v ...any)
	Warn(format string, v ...any)
	Error(format string, v ...any)
}
