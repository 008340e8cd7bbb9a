package domain

// SunbedCategory represents the category of a sunbed
type SunbedCategory string

const (
	CategoryStandard SunbedCategory = "standard"
	CategoryPremium  SunbedCategory = "premium"
	CategoryStanding SunbedCategory = "standing"
)

// Sunbed represents a bookable tanning unit
// The catalog is static configuration: loaded at startup, never mutated
type Sunbed struct {
	ID                string
	Name              string
	Category          SunbedCategory
	Description       string
	PriceMultiplier   float64
	MaxSessionMinutes int
	Features          []string
}

// IsPremium returns true for premium sunbeds
func (s *Sunbed) IsPremium() bool {
	return s.Category == CategoryPremium
}

// DefaultSunbeds is the reference studio catalog
var DefaultSunbeds = []Sunbed{
	{
		ID:                "standard-1",
		Name:              "Standard Bed #1",
		Category:          CategoryStandard,
		Description:       "Classic tanning experience with UV bulbs",
		PriceMultiplier:   1.0,
		MaxSessionMinutes: 20,
		Features:          []string{"UV Bulbs", "Fan Cooling", "Music System"},
	},
	{
		ID:                "standard-2",
		Name:              "Standard Bed #2",
		Category:          CategoryStandard,
		Description:       "Classic tanning experience with UV bulbs",
		PriceMultiplier:   1.0,
		MaxSessionMinutes: 20,
		Features:          []string{"UV Bulbs", "Fan Cooling", "Music System"},
	},
	{
		ID:                "premium-1",
		Name:              "Premium Bed",
		Category:          CategoryPremium,
		Description:       "Enhanced tanning with high-pressure bulbs",
		PriceMultiplier:   1.5,
		MaxSessionMinutes: 15,
		Features:          []string{"High-Pressure Bulbs", "Air Conditioning", "Premium Sound", "Aromatherapy"},
	},
	{
		ID:                "standing-1",
		Name:              "Standing Booth",
		Category:          CategoryStanding,
		Description:       "Quick standing tan booth",
		PriceMultiplier:   1.2,
		MaxSessionMinutes: 12,
		Features:          []string{"360° Coverage", "Quick Session", "Hydrating Mist", "Music System"},
	},
}

// FindSunbed looks a sunbed up by id in the given catalog
func FindSunbed(sunbeds []Sunbed, id string) (*Sunbed, bool) {
	for i := range sunbeds {
		if sunbeds[i].ID == id {
			return &sunbeds[i], true
		}
	}
	return nil, false
}
