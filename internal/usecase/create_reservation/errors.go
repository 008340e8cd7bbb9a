package create_reservation

import "errors"

var (
	// ErrSunbedNotFound возвращается, когда солярий не найден в каталоге
	ErrSunbedNotFound = errors.New("create_reservation: sunbed not found")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_reservation: invalid booking date")

	// ErrInvalidSlot возвращается, когда слот не входит в сетку салона
	ErrInvalidSlot = errors.New("create_reservation: invalid time slot")

	// ErrSlotNotAvailable возвращается, когда слот уже занят
	ErrSlotNotAvailable = errors.New("create_reservation: slot is not available")

	// ErrInsufficientBalance возвращается, когда на кошельке не хватает часов
	ErrInsufficientBalance = errors.New("create_reservation: insufficient wallet balance")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
