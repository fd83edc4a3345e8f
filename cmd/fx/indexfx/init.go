package indexfx

import (
	"os"

	"go.uber.org/fx"
	"wayfarer/internal/services"
)

var Module = fx.Options(
	fx.Provide(provideIndexService),
	fx.Invoke(loadIndexes))

func provideIndexService() services.IndexServiceInterface {
	artifactsDir := os.Getenv("ARTIFACTS_DIR")
	if artifactsDir == "" {
		artifactsDir = "./artifacts"
	}
	return services.NewIndexService(artifactsDir)
}

func loadIndexes(indexService services.IndexServiceInterface) error {
	return indexService.LoadAll()
}
