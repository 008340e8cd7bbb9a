package get_availability

import (
	getAvailability "github.com/m04kA/STS-BookingService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date    string                     `json:"date"`
	Sunbeds []SunbedSlotsResponse      `json:"sunbeds"`
	Table   map[string]map[string]bool `json:"availability"`
}

// SunbedSlotsResponse слоты одного солярия в HTTP ответе
type SunbedSlotsResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	AvailableSlots []string `json:"availableSlots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		Date:    resp.Date,
		Sunbeds: make([]SunbedSlotsResponse, 0, len(resp.Sunbeds)),
		Table:   resp.Table,
	}

	for _, sb := range resp.Sunbeds {
		slots := make([]string, 0, len(sb.AvailableSlots))
		for _, slot := range sb.AvailableSlots {
			slots = append(slots, slot.String())
		}
		out.Sunbeds = append(out.Sunbeds, SunbedSlotsResponse{
			ID:             sb.ID,
			Name:           sb.Name,
			Category:       string(sb.Category),
			AvailableSlots: slots,
		})
	}

	return out
}
