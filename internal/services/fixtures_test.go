package services

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"wayfarer/internal/models/db_models"
)

// fixedID builds a stable uuid whose string form sorts by n, so tests can
// assert id-based tie-breaks without hardcoding random uuids.
func fixedID(n byte) uuid.UUID {
	var id uuid.UUID
	id[15] = n
	return id
}

func fptr(v float64) *float64 { return &v }

func iptr(v int) *int { return &v }

func hoursJSON(windows ...db_models.OpeningWindow) datatypes.JSON {
	data, _ := json.Marshal(windows)
	return data
}

func testItem(n byte, domain db_models.Domain, name, city, description string) db_models.CatalogItem {
	return db_models.CatalogItem{
		BaseModel:   db_models.BaseModel{ID: fixedID(n)},
		Domain:      domain,
		Name:        name,
		City:        city,
		Description: description,
	}
}
