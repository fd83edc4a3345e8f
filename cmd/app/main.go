package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"wayfarer/cmd/fx/catalogfx"
	"wayfarer/cmd/fx/controllersfx"
	"wayfarer/cmd/fx/dbfx"
	"wayfarer/cmd/fx/indexfx"
	"wayfarer/cmd/fx/plannerfx"
	"wayfarer/cmd/fx/recommendfx"
	"wayfarer/internal/api/controllers"
	"wayfarer/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	app := fx.New(
		dbfx.Module,
		catalogfx.Module,
		indexfx.Module,
		plannerfx.Module,
		recommendfx.Module,
		controllersfx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Println("Starting HTTP server at :" + port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	itineraryController *controllers.ItineraryController,
	catalogController *controllers.CatalogController,
	recommendController *controllers.RecommendController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, itineraryController, catalogController, recommendController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	itineraryController *controllers.ItineraryController,
	catalogController *controllers.CatalogController,
	recommendController *controllers.RecommendController) {

	itineraryGroup := r.Group("/itineraries")
	itineraryGroup.POST("/generate", itineraryController.GenerateItinerary)
	itineraryGroup.GET("/:itineraryId", itineraryController.GetItinerary)
	itineraryGroup.POST("/:itineraryId/days/:dayIndex/regenerate", itineraryController.RegenerateDay)

	catalogGroup := r.Group("/catalog")
	catalogGroup.GET("/:domain", catalogController.ListCatalogItems)
	catalogGroup.GET("/:domain/:id", catalogController.GetCatalogItem)

	r.POST("/recommend", recommendController.Recommend)
}
