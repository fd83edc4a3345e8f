package repositories

import (
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"wayfarer/internal/models/db_models"
)

type EmbeddingMatch struct {
	db_models.CatalogEmbedding
	Similarity float64
}

type IEmbeddingRepository interface {
	UpsertEmbedding(embedding db_models.CatalogEmbedding) error
	NearestByVector(vector pgvector.Vector, domain db_models.Domain, city string, limit int) ([]EmbeddingMatch, error)
}

type embeddingRepository struct {
	db *gorm.DB
}

func NewEmbeddingRepository(db *gorm.DB) IEmbeddingRepository {
	return &embeddingRepository{db: db}
}

func (r *embeddingRepository) UpsertEmbedding(embedding db_models.CatalogEmbedding) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_id"}},
		UpdateAll: true,
	}).Create(&embedding).Error
}

func (r *embeddingRepository) NearestByVector(vector pgvector.Vector, domain db_models.Domain, city string, limit int) ([]EmbeddingMatch, error) {
	if limit <= 0 {
		limit = 15
	}

	var results []EmbeddingMatch

	query := `
        SELECT *, (1 - (embedding <=> $1)) as similarity
        FROM catalog_embeddings
        WHERE ($2 = '' OR domain = $2)
          AND ($3 = '' OR lower(city) = lower($3))
        ORDER BY embedding <=> $1
        LIMIT $4
    `

	err := r.db.Raw(query, vector.String(), string(domain), city, limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
