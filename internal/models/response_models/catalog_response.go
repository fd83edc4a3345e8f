package response_models

type OpeningWindow struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

type CatalogItem struct {
	ID              string          `json:"id"`
	Domain          string          `json:"domain"`
	Name            string          `json:"name"`
	City            string          `json:"city"`
	Latitude        float64         `json:"latitude"`
	Longitude       float64         `json:"longitude"`
	Category        string          `json:"category"`
	Description     string          `json:"description,omitempty"`
	Tags            []string        `json:"tags,omitempty"`
	Rating          *float64        `json:"rating,omitempty"`
	Price           *float64        `json:"price,omitempty"`
	OpeningHours    []OpeningWindow `json:"opening_hours,omitempty"`
	DurationMinutes *int            `json:"duration_minutes,omitempty"`
}
