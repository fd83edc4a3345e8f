package response_models

// ScheduledStop is one timed placement inside a day. Field names are the
// wire contract consumed by the frontend and the persistence layer.
type ScheduledStop struct {
	PoiID   string  `json:"poi_id"`
	Name    string  `json:"name"`
	Start   string  `json:"start"` // "HH:MM"
	End     string  `json:"end"`
	EstCost float64 `json:"est_cost"`
}

type DayPlan struct {
	Date  string          `json:"date"` // 2006-01-02
	Stops []ScheduledStop `json:"stops"`
}

type Itinerary struct {
	ItineraryID string    `json:"itinerary_id"`
	City        string    `json:"city"`
	Days        []DayPlan `json:"days"`
	Notes       []string  `json:"notes"`
}
