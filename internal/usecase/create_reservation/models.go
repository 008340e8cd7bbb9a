package create_reservation

import (
	"time"

	"github.com/m04kA/STS-BookingService/internal/domain"
	"github.com/m04kA/STS-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    string           // ID пользователя (Firebase UID)
	UserName  string           // Имя пользователя для денормализации
	UserEmail string           // Email пользователя для денормализации
	SunbedID  string           // ID солярия из каталога
	Date      string           // Дата бронирования (YYYY-MM-DD)
	Slot      types.TimeString // Слот сетки (например, "10:15")

	// SkipAvailabilityCheck пропускает быструю проверку по локальной
	// таблице доступности; конфликт все равно ловится в транзакции.
	// Используется киоск-сценарием, который сам выбирает слот
	SkipAvailabilityCheck bool
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              string           // ID созданного бронирования
	UserID          string           // ID пользователя
	UserName        string           // Имя пользователя
	UserEmail       string           // Email пользователя
	SunbedID        string           // ID солярия
	SunbedName      string           // Название солярия
	Date            string           // Дата бронирования
	Slot            types.TimeString // Слот
	DurationMinutes int              // Длительность сеанса в минутах
	Status          string           // Статус бронирования
	HoursDeducted   float64          // Сколько часов списано с кошелька

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

func toResponse(res *domain.Reservation, hoursDeducted float64) *Response {
	return &Response{
		ID:              res.ID,
		UserID:          res.UserID,
		UserName:        res.UserName,
		UserEmail:       res.UserEmail,
		SunbedID:        res.SunbedID,
		SunbedName:      res.SunbedName,
		Date:            res.Date,
		Slot:            res.Slot,
		DurationMinutes: res.DurationMinutes,
		Status:          string(res.Status),
		HoursDeducted:   hoursDeducted,
		CreatedAt:       res.CreatedAt,
		UpdatedAt:       res.UpdatedAt,
	}
}
