package db_models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Itinerary is the persisted result of one generate call. Days are stored
// as the serialized response shape; whole-day replaces bump Version so
// concurrent regenerations against the same row are serialized by an
// optimistic check.
type Itinerary struct {
	BaseModel
	City        string `gorm:"index"`
	StartDate   time.Time
	EndDate     time.Time
	DailyBudget float64
	Pace        string
	Interests   pq.StringArray `gorm:"type:text[]"`
	Constraints datatypes.JSON
	Days        datatypes.JSON
	Notes       pq.StringArray `gorm:"type:text[]"`
	Version     int            `gorm:"default:1"`
}
