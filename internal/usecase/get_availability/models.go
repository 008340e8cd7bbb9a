package get_availability

import (
	"github.com/m04kA/STS-BookingService/internal/domain"
	"github.com/m04kA/STS-BookingService/pkg/types"
)

// Request модель запроса таблицы доступности
type Request struct {
	Date string // Дата (YYYY-MM-DD)
}

// Response модель ответа с таблицей доступности на дату
type Response struct {
	Date    string                     // Дата, на которую построена таблица
	Sunbeds []SunbedSlots              // Соляриумы каталога с их слотами
	Table   map[string]map[string]bool // Солярий -> слот -> свободен
}

// SunbedSlots слоты одного солярия
type SunbedSlots struct {
	ID             string                // ID солярия
	Name           string                // Название солярия
	Category       domain.SunbedCategory // Категория солярия
	AvailableSlots []types.TimeString    // Свободные слоты в порядке сетки
}

// toResponse конвертирует таблицу доступности в модель ответа
func toResponse(table *domain.DayAvailability, sunbeds []domain.Sunbed) *Response {
	resp := &Response{
		Date:    table.Date,
		Sunbeds: make([]SunbedSlots, 0, len(sunbeds)),
		Table:   make(map[string]map[string]bool, len(sunbeds)),
	}

	for i := range sunbeds {
		sb := sunbeds[i]
		resp.Sunbeds = append(resp.Sunbeds, SunbedSlots{
			ID:             sb.ID,
			Name:           sb.Name,
			Category:       sb.Category,
			AvailableSlots: table.AvailableSlots(sb.ID),
		})

		cells := make(map[string]bool, len(domain.TimeSlots))
		for slot, free := range table.Sunbeds[sb.ID] {
			cells[slot.String()] = free
		}
		resp.Table[sb.ID] = cells
	}

	return resp
}
