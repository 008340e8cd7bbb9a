package wallet

import "errors"

var (
	// ErrWalletNotFound возвращается, когда кошелек пользователя не найден
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrInsufficientBalance возвращается при нехватке часов на балансе
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("wallet service: internal error")
)
