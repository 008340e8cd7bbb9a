package models

import (
	"time"

	"github.com/m04kA/STS-BookingService/internal/domain"
)

// GetUserReservationsRequest запрос на получение бронирований пользователя
type GetUserReservationsRequest struct {
	UserID       string
	UpcomingOnly bool
}

// ReservationResponse бронирование в ответе сервиса
type ReservationResponse struct {
	ID              string `json:"id"`
	UserID          string `json:"userId"`
	UserName        string `json:"userName"`
	UserEmail       string `json:"userEmail"`
	SunbedID        string `json:"sunbedId"`
	SunbedName      string `json:"sunbedName"`
	Date            string `json:"date"`
	Slot            string `json:"time"`
	DurationMinutes int    `json:"duration"`
	Status          string `json:"status"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	Total        int                    `json:"total"`
}

// FromDomainReservation конвертирует domain-модель в ответ сервиса
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:              r.ID,
		UserID:          r.UserID,
		UserName:        r.UserName,
		UserEmail:       r.UserEmail,
		SunbedID:        r.SunbedID,
		SunbedName:      r.SunbedName,
		Date:            r.Date,
		Slot:            r.Slot.String(),
		DurationMinutes: r.DurationMinutes,
		Status:          string(r.Status),
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       r.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainReservationList конвертирует список domain-моделей
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	out := make([]*ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, FromDomainReservation(r))
	}
	return &ReservationListResponse{Reservations: out, Total: len(out)}
}
