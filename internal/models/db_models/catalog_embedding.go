package db_models

import (
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// CatalogEmbedding holds one dense vector per catalog item, seeded by the
// trainer and queried with pgvector's cosine operator.
type CatalogEmbedding struct {
	ItemID    string `gorm:"primaryKey;column:item_id"`
	Domain    Domain `gorm:"index;type:text"`
	Name      string
	City      string
	Tags      pq.StringArray  `gorm:"type:text[]"`
	Embedding pgvector.Vector `gorm:"type:vector(1536)"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}

func (CatalogEmbedding) TableName() string {
	return "catalog_embeddings"
}
