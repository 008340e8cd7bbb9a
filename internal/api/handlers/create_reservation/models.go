package create_reservation

import (
	"time"

	createReservation "github.com/m04kA/STS-BookingService/internal/usecase/create_reservation"
	"github.com/m04kA/STS-BookingService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	SunbedID string `json:"sunbedId"`
	Date     string `json:"date"` // "2026-09-01"
	Slot     string `json:"time"` // "10:15"
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"userId"`
	UserName        string  `json:"userName,omitempty"`
	UserEmail       string  `json:"userEmail,omitempty"`
	SunbedID        string  `json:"sunbedId"`
	SunbedName      string  `json:"sunbedName"`
	Date            string  `json:"date"`
	Slot            string  `json:"time"`
	DurationMinutes int     `json:"duration"`
	Status          string  `json:"status"`
	HoursDeducted   float64 `json:"hoursDeducted"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID, userName, userEmail string) (*createReservation.Request, error) {
	slot, err := types.NewTimeStringFromString(r.Slot)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		UserID:    userID,
		UserName:  userName,
		UserEmail: userEmail,
		SunbedID:  r.SunbedID,
		Date:      r.Date,
		Slot:      slot,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		UserName:        resp.UserName,
		UserEmail:       resp.UserEmail,
		SunbedID:        resp.SunbedID,
		SunbedName:      resp.SunbedName,
		Date:            resp.Date,
		Slot:            resp.Slot.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		HoursDeducted:   resp.HoursDeducted,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
