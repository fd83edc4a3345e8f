package catalogfx

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"
	"wayfarer/internal/repositories"
	"wayfarer/internal/services"
)

var Module = fx.Options(
	fx.Provide(provideCatalogRepo, provideCatalogService),
	fx.Invoke(loadCatalog))

func provideCatalogRepo(db *gorm.DB) repositories.CatalogRepository {
	return repositories.NewCatalogRepository(db)
}

func provideCatalogService(catalogRepo repositories.CatalogRepository) services.CatalogServiceInterface {
	return services.NewCatalogService(catalogRepo)
}

func loadCatalog(catalogService services.CatalogServiceInterface) error {
	return catalogService.Load(context.Background())
}
