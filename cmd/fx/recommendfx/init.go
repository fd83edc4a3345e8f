package recommendfx

import (
	"log"
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"
	"wayfarer/internal/repositories"
	"wayfarer/internal/services"
	"wayfarer/pkg/utils"
)

var Module = fx.Provide(
	provideEmbeddingClient, provideEmbeddingRepo, provideRecommendService)

func provideEmbeddingClient() utils.EmbeddingClientInterface {
	if os.Getenv("EMBEDDING_PROVIDER") == "gemini" {
		client, err := utils.NewGeminiEmbeddingClient(os.Getenv("GEMINI_API_KEY"), "")
		if err != nil {
			log.Fatalf("Failed to init Gemini embedding client: %v", err)
		}
		return client
	}
	return utils.NewOpenAIEmbeddingClient(os.Getenv("OPENAI_API_KEY"))
}

func provideEmbeddingRepo(db *gorm.DB) repositories.IEmbeddingRepository {
	return repositories.NewEmbeddingRepository(db)
}

func provideRecommendService(
	embeddingClient utils.EmbeddingClientInterface,
	embeddingRepo repositories.IEmbeddingRepository,
	catalogRepo repositories.CatalogRepository) services.RecommendServiceInterface {
	return services.NewRecommendService(embeddingClient, embeddingRepo, catalogRepo)
}
