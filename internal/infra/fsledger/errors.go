package fsledger

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("fsledger: reservation not found")

	// ErrWalletNotFound возвращается, когда кошелек пользователя не найден
	ErrWalletNotFound = errors.New("fsledger: wallet not found")

	// ErrInsufficientBalance возвращается при списании сверх остатка
	ErrInsufficientBalance = errors.New("fsledger: insufficient balance")

	// ErrQuery возвращается при ошибке запроса к Firestore
	ErrQuery = errors.New("fsledger: query failed")
)
