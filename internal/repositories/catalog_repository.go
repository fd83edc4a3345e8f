package repositories

import (
	"context"
	"errors"
	"gorm.io/gorm"
	"wayfarer/internal/models/db_models"
)

type CatalogRepository interface {
	ListAll(ctx context.Context) ([]db_models.CatalogItem, error)
	ListByDomain(ctx context.Context, domain db_models.Domain, city string, page, pageSize int) ([]db_models.CatalogItem, error)
	ListByIDs(ctx context.Context, ids []string) ([]db_models.CatalogItem, error)
	GetByID(ctx context.Context, id string) (*db_models.CatalogItem, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// ListAll returns the full catalog ordered by id so snapshot construction
// is reproducible run to run.
func (r *catalogRepository) ListAll(ctx context.Context) ([]db_models.CatalogItem, error) {
	var items []db_models.CatalogItem
	err := r.db.WithContext(ctx).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *catalogRepository) ListByDomain(ctx context.Context, domain db_models.Domain, city string, page, pageSize int) ([]db_models.CatalogItem, error) {
	var items []db_models.CatalogItem
	offset := (page - 1) * pageSize

	q := r.db.WithContext(ctx).
		Where("domain = ?", domain).
		Order("id asc").
		Offset(offset).
		Limit(pageSize)
	if city != "" {
		q = q.Where("lower(city) = lower(?)", city)
	}

	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *catalogRepository) ListByIDs(ctx context.Context, ids []string) ([]db_models.CatalogItem, error) {
	if len(ids) == 0 {
		return []db_models.CatalogItem{}, nil
	}
	var items []db_models.CatalogItem
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *catalogRepository) GetByID(ctx context.Context, id string) (*db_models.CatalogItem, error) {
	var item db_models.CatalogItem
	err := r.db.WithContext(ctx).
		First(&item, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}
