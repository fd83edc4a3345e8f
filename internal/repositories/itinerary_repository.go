package repositories

import (
	"context"
	"errors"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"wayfarer/internal/models/db_models"
)

type ItineraryRepository interface {
	Save(ctx context.Context, itinerary *db_models.Itinerary) error
	GetByID(ctx context.Context, id string) (*db_models.Itinerary, error)
	// ReplaceDays swaps the stored day plans and notes only when the row
	// still carries the expected version. Returns gorm.ErrRecordNotFound
	// when the optimistic check fails.
	ReplaceDays(ctx context.Context, id uuid.UUID, expectedVersion int, days datatypes.JSON, notes pq.StringArray) error
}

type itineraryRepository struct {
	db *gorm.DB
}

func NewItineraryRepository(db *gorm.DB) ItineraryRepository {
	return &itineraryRepository{db: db}
}

// Save upserts by id: regenerating the same trip request rewrites its
// canonical row instead of accumulating duplicates.
func (r *itineraryRepository) Save(ctx context.Context, itinerary *db_models.Itinerary) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(itinerary).Error
}

func (r *itineraryRepository) GetByID(ctx context.Context, id string) (*db_models.Itinerary, error) {
	var itinerary db_models.Itinerary
	err := r.db.WithContext(ctx).
		First(&itinerary, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &itinerary, nil
}

func (r *itineraryRepository) ReplaceDays(ctx context.Context, id uuid.UUID, expectedVersion int, days datatypes.JSON, notes pq.StringArray) error {
	result := r.db.WithContext(ctx).
		Model(&db_models.Itinerary{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]interface{}{
			"days":    days,
			"notes":   notes,
			"version": expectedVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
