package start_session

import (
	startSession "github.com/m04kA/STS-BookingService/internal/usecase/start_session"
)

// StartSessionRequest HTTP request model
type StartSessionRequest struct {
	SunbedID string `json:"sunbedId"`
}

// SessionResponse HTTP response model
type SessionResponse struct {
	ReservationID string  `json:"reservationId"`
	SunbedID      string  `json:"sunbedId"`
	SunbedName    string  `json:"sunbedName"`
	Date          string  `json:"date"`
	Slot          string  `json:"time"`
	SessionEnd    string  `json:"sessionEnd"`
	AlreadyBooked bool    `json:"alreadyBooked"`
	HoursDeducted float64 `json:"hoursDeducted"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *startSession.Response) *SessionResponse {
	return &SessionResponse{
		ReservationID: resp.ReservationID,
		SunbedID:      resp.SunbedID,
		SunbedName:    resp.SunbedName,
		Date:          resp.Date,
		Slot:          resp.Slot.String(),
		SessionEnd:    resp.SessionEnd.String(),
		AlreadyBooked: resp.AlreadyBooked,
		HoursDeducted: resp.HoursDeducted,
	}
}
