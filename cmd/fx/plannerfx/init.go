package plannerfx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"wayfarer/internal/repositories"
	"wayfarer/internal/services"
)

var Module = fx.Provide(
	provideItineraryRepo, provideRankerService, provideSchedulerService, provideItineraryService)

func provideItineraryRepo(db *gorm.DB) repositories.ItineraryRepository {
	return repositories.NewItineraryRepository(db)
}

func provideRankerService(
	catalogService services.CatalogServiceInterface,
	indexService services.IndexServiceInterface) services.RankerServiceInterface {
	return services.NewRankerService(catalogService, indexService)
}

func provideSchedulerService(catalogService services.CatalogServiceInterface) services.SchedulerServiceInterface {
	return services.NewSchedulerService(catalogService)
}

func provideItineraryService(
	rankerService services.RankerServiceInterface,
	schedulerService services.SchedulerServiceInterface,
	catalogService services.CatalogServiceInterface,
	itineraryRepo repositories.ItineraryRepository) services.ItineraryServiceInterface {
	return services.NewItineraryService(rankerService, schedulerService, catalogService, itineraryRepo)
}
