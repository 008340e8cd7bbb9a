package wallet

import "errors"

var (
	// ErrWalletNotFound возвращается, когда кошелек пользователя не найден
	ErrWalletNotFound = errors.New("wallet.repository: wallet not found")

	// ErrInsufficientBalance возвращается при списании сверх остатка
	ErrInsufficientBalance = errors.New("wallet.repository: insufficient balance")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("wallet.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("wallet.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("wallet.repository: failed to scan row")
)
