package availability

import "errors"

var (
	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("availability: invalid date format")

	// ErrServiceClosed возвращается после остановки сервиса
	ErrServiceClosed = errors.New("availability: service closed")

	// ErrInternal возвращается при внутренней ошибке сервиса
	ErrInternal = errors.New("availability: internal error")
)
