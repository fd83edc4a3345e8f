package request_models

// TravelIntent is the structured record produced by the upstream NLP
// component. This service never sees the free-text request.
type TravelIntent struct {
	City      string   `json:"city" binding:"required"`
	StartDate string   `json:"start_date" binding:"required"` // 2006-01-02
	EndDate   string   `json:"end_date" binding:"required"`
	Budget    float64  `json:"budget"`
	Interests []string `json:"interests"`
	Pace      string   `json:"pace"` // relaxed | moderate | intense
}

// TripConstraints are the scheduling knobs for one generate call.
// Zero values fall back to service defaults.
type TripConstraints struct {
	DailyBudget         float64  `json:"daily_budget"`
	DailyStopCap        int      `json:"daily_stop_cap"`
	DayStartTime        string   `json:"day_start_time"` // "HH:MM"
	DayEndTime          string   `json:"day_end_time"`
	MaxPricePerActivity *float64 `json:"max_price_per_activity"`
}

type GenerateItineraryRequest struct {
	Intent      TravelIntent    `json:"intent" binding:"required"`
	Constraints TripConstraints `json:"constraints"`
}

// DayOverrides narrows constraints for a single-day regeneration.
type DayOverrides struct {
	MaxStops            *int     `json:"max_stops"`
	MaxPricePerActivity *float64 `json:"max_price_per_activity"`
}
