package db_models

import (
	"encoding/json"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type Domain string

const (
	DomainDestination    Domain = "destination"
	DomainActivity       Domain = "activity"
	DomainAccommodation  Domain = "accommodation"
	DomainTransportation Domain = "transportation"
)

// AllDomains is the fixed iteration order used everywhere a pass over
// domains influences output.
var AllDomains = []Domain{
	DomainDestination,
	DomainActivity,
	DomainAccommodation,
	DomainTransportation,
}

func ParseDomain(s string) (Domain, bool) {
	for _, d := range AllDomains {
		if string(d) == s {
			return d, true
		}
	}
	return "", false
}

// OpeningWindow is one open/close interval in "HH:MM" clock time.
type OpeningWindow struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// CatalogItem is one curated point of interest. Rows are written by the
// offline seeding pipeline and never mutated at request time.
type CatalogItem struct {
	BaseModel
	Domain      Domain `gorm:"index;type:text"`
	Name        string
	City        string `gorm:"index"`
	Latitude    float64
	Longitude   float64
	Category    string
	Description string
	Tags        pq.StringArray `gorm:"type:text[]"`
	Rating      *float64
	Price       *float64
	// JSON array of OpeningWindow; null for domains without hours.
	OpeningHours    datatypes.JSON
	DurationMinutes *int
}

func (c *CatalogItem) Windows() []OpeningWindow {
	if len(c.OpeningHours) == 0 {
		return nil
	}
	var windows []OpeningWindow
	if err := json.Unmarshal(c.OpeningHours, &windows); err != nil {
		return nil
	}
	return windows
}
