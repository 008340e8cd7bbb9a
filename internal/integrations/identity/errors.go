package identity

import "errors"

var (
	// ErrNotAuthenticated возвращается при отсутствии или невалидном токене
	ErrNotAuthenticated = errors.New("identity: not authenticated")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("identity client: internal error")
)
