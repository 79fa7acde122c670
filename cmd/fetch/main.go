package main

import (
	"context"
	"flag"
	"log"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/staylens/backend/internal/config"
	"github.com/staylens/backend/internal/dataset"
	"github.com/staylens/backend/internal/db"
	"github.com/staylens/backend/internal/serpapi"
	"github.com/staylens/backend/internal/services"
)

// One-shot live fetch: pulls listings for a location/date range, stores the
// snapshot in Postgres, and prints the cleaning diagnostics.
func main() {
	location := flag.String("location", "Dubai", "search location")
	checkIn := flag.String("check-in", time.Now().AddDate(0, 0, 7).Format("2006-01-02"), "check-in date (YYYY-MM-DD)")
	checkOut := flag.String("check-out", time.Now().AddDate(0, 0, 10).Format("2006-01-02"), "check-out date (YYYY-MM-DD)")
	adults := flag.Int("adults", 2, "number of adults")
	currency := flag.String("currency", "AED", "price currency")
	maxResults := flag.Int("max-results", 0, "cap on fetched properties (0 = no cap)")
	flag.Parse()

	log.Printf("🚀 Starting manual listings fetch for %s (%s → %s)...", *location, *checkIn, *checkOut)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.SerpAPI.APIKey == "" {
		log.Fatal("SERPAPI_API_KEY is required for live fetching")
	}

	pgDB, err := db.ConnectPostgres(cfg)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}

	store := services.NewSnapshotStore(pgDB)
	if err := store.Migrate(); err != nil {
		log.Fatalf("failed to migrate snapshot table: %v", err)
	}

	// The one-shot fetch doesn't need the shared cache; an in-memory redis
	// satisfies the service's activation pointer.
	mr, err := miniredis.Run()
	if err != nil {
		log.Fatalf("failed to start in-memory redis: %v", err)
	}
	defer mr.Close()
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	opts := dataset.Options{
		FallbackLatitude:  cfg.Dataset.FallbackLat,
		FallbackLongitude: cfg.Dataset.FallbackLon,
	}
	service := services.NewDatasetService(
		redisClient, store, serpapi.NewClient(cfg),
		cfg.Dataset.FilePath, opts, cfg.Dataset.CacheTTL,
	)

	ctx := context.Background()

	snap, err := service.FetchAndStore(ctx, serpapi.SearchParams{
		Location:   *location,
		CheckIn:    *checkIn,
		CheckOut:   *checkOut,
		Adults:     *adults,
		Currency:   *currency,
		MaxResults: *maxResults,
	})
	if err != nil {
		log.Fatalf("fetch failed: %v", err)
	}
	log.Printf("✅ Stored snapshot %s with %d raw listings", snap.ID, snap.RowCount)

	res, _ := service.Current(ctx)
	log.Printf("✅ Cleaned dataset: %d rows in, %d rows out (%d duplicates, %d missing-critical, %d outliers)",
		res.Diagnostics.RowsIn, res.Diagnostics.RowsOut,
		res.Diagnostics.DuplicatesRemoved, res.Diagnostics.MissingCriticalDropped,
		res.Diagnostics.OutliersRemoved)
}
