package start_session

import "errors"

var (
	// ErrSunbedNotFound возвращается, когда солярий не найден в каталоге
	ErrSunbedNotFound = errors.New("start_session: sunbed not found")

	// ErrOutsideWorkingHours возвращается, когда салон сейчас закрыт
	ErrOutsideWorkingHours = errors.New("start_session: outside working hours")

	// ErrSlotNotAvailable возвращается, когда ближайший слот уже занят
	ErrSlotNotAvailable = errors.New("start_session: slot is not available")

	// ErrInsufficientBalance возвращается, когда на кошельке не хватает часов
	ErrInsufficientBalance = errors.New("start_session: insufficient wallet balance")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("start_session: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("start_session: internal error")
)
