package main

import (
	"context"
	"errors"
	"fmt"
	"itinerary-service/internal/adapters/catalog"
	"itinerary-service/internal/adapters/notify"
	"itinerary-service/internal/adapters/repositories"
	"itinerary-service/internal/config"
	"itinerary-service/internal/platform/db"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	driver := config.Get("DB_DRIVER", db.DriverPostgres)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	conn, err := db.Open(ctx, driver, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	source := catalog.NewFileSource(
		config.Get("POI_SOURCE", "data/poi.json"),
		config.Get("VENUE_SOURCE", "data/restaurants.json"),
	)
	if err := initAndSeed(ctx, conn, source); err != nil {
		log.Fatal(err)
	}

	if redisURL := config.Get("REDIS_URL", ""); redisURL != "" {
		if err := announce(ctx, redisURL, config.Get("RELOAD_CHANNEL", notify.DefaultChannel)); err != nil {
			log.Fatal(err)
		}
	}
}

func initAndSeed(ctx context.Context, conn *sqlx.DB, source *catalog.FileSource) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Println("Schema ready.")

	data, err := source.Load(ctx)
	if err != nil {
		return fmt.Errorf("read catalog documents: %w", err)
	}
	for _, issue := range data.Issues {
		log.Printf("catalog issue: %s", issue)
	}
	if len(data.POIs) == 0 && len(data.Venues) == 0 {
		return errors.New("refusing to seed an empty catalog")
	}

	// Deduplicate exactly as the server would before writing rows keyed by id.
	deduped, _ := catalog.NewMemoryCatalog(data.POIs, data.Venues)

	log.Println("Seeding database...")
	if err := repositories.SeedCatalog(ctx, conn, deduped.AllPOIs(), deduped.AllVenues()); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Printf("Seeding complete. pois=%d venues=%d", deduped.POICount(), deduped.VenueCount())

	return nil
}

func announce(ctx context.Context, redisURL, channel string) error {
	client, err := notify.NewRedisClient(ctx, redisURL)
	if err != nil {
		return err
	}
	defer client.Close()

	receivers, err := notify.NewRedisNotifier(client, channel).Publish(ctx, "dbtool seed")
	if err != nil {
		return err
	}
	log.Printf("Reload announced channel=%s receivers=%d", channel, receivers)
	return nil
}
