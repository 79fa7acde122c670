/**
 * @description
 * API Route definitions.
 * Sets up the router groups and assigns handlers.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/api/handlers
 * - backend/internal/api/middleware
 * - backend/internal/services
 * - backend/internal/serpapi
 */

package api

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/staylens/backend/internal/api/handlers"
	"github.com/staylens/backend/internal/api/middleware"
	"github.com/staylens/backend/internal/config"
	"github.com/staylens/backend/internal/dataset"
	"github.com/staylens/backend/internal/serpapi"
	"github.com/staylens/backend/internal/services"
	"gorm.io/gorm"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {
	// 1. Initialize Middleware
	if err := middleware.InitAuth(cfg); err != nil {
		log.Printf("Failed to init auth middleware: %v", err)
		// The app still starts so /health works, but protected routes reject.
	}

	// 2. Initialize Services
	var store *services.SnapshotStore
	if db != nil {
		store = services.NewSnapshotStore(db)
	}
	var fetcher *serpapi.Client
	if cfg.SerpAPI.APIKey != "" {
		fetcher = serpapi.NewClient(cfg)
	}
	opts := dataset.Options{
		FallbackLatitude:  cfg.Dataset.FallbackLat,
		FallbackLongitude: cfg.Dataset.FallbackLon,
	}
	datasetService := services.NewDatasetService(
		rdb, store, fetcher,
		cfg.Dataset.FilePath, opts, cfg.Dataset.CacheTTL,
	)

	// 3. Initialize Handlers
	authHandler := handlers.NewAuthHandler()
	datasetHandler := handlers.NewDatasetHandler(datasetService)
	reportHandler := handlers.NewReportHandler(datasetService)
	listingHandler := handlers.NewListingHandler(datasetService)

	// 4. Define Routes
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Public Routes
	v1.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	v1.Post("/auth/login", authHandler.Login)

	// Auth Routes (Protected)
	auth := v1.Group("/auth", middleware.Protected())
	auth.Get("/me", authHandler.Me)

	// Dataset Routes (Protected)
	datasets := v1.Group("/datasets", middleware.Protected())
	datasets.Get("/current", datasetHandler.GetCurrent)
	datasets.Post("/fetch", datasetHandler.Fetch)
	datasets.Post("/upload", datasetHandler.Upload)
	datasets.Post("/deactivate", datasetHandler.Deactivate)
	datasets.Get("/snapshots", datasetHandler.ListSnapshots)
	datasets.Post("/snapshots/:id/activate", datasetHandler.Activate)
	datasets.Delete("/snapshots/:id", datasetHandler.DeleteSnapshot)

	// Report Routes (Protected)
	reportsGroup := v1.Group("/reports", middleware.Protected())
	reportsGroup.Get("/overview", reportHandler.GetOverview)
	reportsGroup.Get("/price-demand", reportHandler.GetPriceDemand)
	reportsGroup.Get("/geographical", reportHandler.GetGeographical)
	reportsGroup.Get("/rooms-amenities", reportHandler.GetRoomsAmenities)
	reportsGroup.Get("/hosts", reportHandler.GetHosts)
	reportsGroup.Get("/seasonality", reportHandler.GetSeasonality)
	reportsGroup.Get("/rating-value", reportHandler.GetRatingValue)

	// Listing Routes (Protected)
	v1.Get("/listings", middleware.Protected(), listingHandler.GetListings)
}
