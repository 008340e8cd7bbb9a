package watch_availability

import (
	"context"

	"github.com/m04kA/STS-BookingService/internal/service/availability"
)

type AvailabilityWatcher interface {
	Watch(ctx context.Context, date string, onUpdate func(availability.Snapshot)) (func(), error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
