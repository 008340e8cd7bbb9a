package start_session

import (
	"github.com/m04kA/STS-BookingService/pkg/types"
)

// Request модель запроса на запуск сеанса с киоска.
// SunbedID приходит из QR-кода, наклеенного на солярий
type Request struct {
	UserID    string // ID пользователя (Firebase UID)
	UserName  string // Имя пользователя для денормализации
	UserEmail string // Email пользователя для денормализации
	SunbedID  string // ID отсканированного солярия
}

// Response модель ответа с запущенным сеансом
type Response struct {
	ReservationID string           // ID бронирования, покрывающего сеанс
	SunbedID      string           // ID солярия
	SunbedName    string           // Название солярия
	Date          string           // Дата сеанса
	Slot          types.TimeString // Слот, на который встал сеанс
	SessionEnd    types.TimeString // Время окончания сеанса

	// AlreadyBooked=true, когда сеанс покрыт существующим бронированием
	// и часы не списывались повторно
	AlreadyBooked bool
	HoursDeducted float64 // Сколько часов списано с кошелька
}
