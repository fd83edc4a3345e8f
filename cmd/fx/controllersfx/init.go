package controllersfx

import (
	"go.uber.org/fx"
	"wayfarer/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewItineraryController),
	fx.Provide(controllers.NewCatalogController),
	fx.Provide(controllers.NewRecommendController))
