package services

import (
	"context"
	"log"
	"strings"

	"wayfarer/internal/models/db_models"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/internal/repositories"
	"wayfarer/pkg/utils"
)

const defaultRecommendLimit = 10

// RecommendService answers free-form "what should I see" queries with a
// dense-embedding nearest-neighbour search. It complements the TF-IDF
// ranker and sits outside the deterministic generate path.
type RecommendServiceInterface interface {
	Recommend(ctx context.Context, req request_models.RecommendRequest) ([]response_models.Recommendation, error)
}

type RecommendService struct {
	embeddingClient utils.EmbeddingClientInterface
	embeddingRepo   repositories.IEmbeddingRepository
	catalogRepo     repositories.CatalogRepository
}

func NewRecommendService(
	embeddingClient utils.EmbeddingClientInterface,
	embeddingRepo repositories.IEmbeddingRepository,
	catalogRepo repositories.CatalogRepository,
) RecommendServiceInterface {
	return &RecommendService{
		embeddingClient: embeddingClient,
		embeddingRepo:   embeddingRepo,
		catalogRepo:     catalogRepo,
	}
}

func (s *RecommendService) Recommend(ctx context.Context, req request_models.RecommendRequest) ([]response_models.Recommendation, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, utils.ErrInvalidInput
	}

	var domain db_models.Domain
	if req.Domain != "" {
		d, ok := db_models.ParseDomain(req.Domain)
		if !ok {
			return nil, utils.ErrUnknownDomain
		}
		domain = d
	}

	limit := req.Limit
	if limit <= 0 || limit > 50 {
		limit = defaultRecommendLimit
	}

	vector, err := s.embeddingClient.GetEmbedding(ctx, req.Query)
	if err != nil {
		log.Printf("Embedding query failed: %v", err)
		return nil, utils.ErrEmbeddingFailed
	}

	matches, err := s.embeddingRepo.NearestByVector(vector, domain, req.City, limit)
	if err != nil {
		log.Printf("Vector search failed: %v", err)
		return nil, utils.ErrDatabaseError
	}
	if len(matches) == 0 {
		return []response_models.Recommendation{}, nil
	}

	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.ItemID)
	}
	items, err := s.catalogRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	byID := make(map[string]db_models.CatalogItem, len(items))
	for _, item := range items {
		byID[item.ID.String()] = item
	}

	out := make([]response_models.Recommendation, 0, len(matches))
	for _, m := range matches {
		item, ok := byID[m.ItemID]
		if !ok {
			continue
		}
		out = append(out, response_models.Recommendation{
			Item:       BuildCatalogItemResponse(item),
			Similarity: m.Similarity,
		})
	}
	return out, nil
}
