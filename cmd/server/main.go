package main

import (
	"context"
	"errors"
	"fmt"
	"itinerary-service/internal/adapters/catalog"
	"itinerary-service/internal/adapters/notify"
	"itinerary-service/internal/api"
	"itinerary-service/internal/config"
	"itinerary-service/internal/platform/db"
	"itinerary-service/internal/ports"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It picks the catalog source, wires reload triggers and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, closeSource, err := newCatalogSource(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeSource()

	// A failed first load leaves the store serving an empty catalog.
	store := catalog.NewStore(source)
	if err := store.Reload(ctx); err != nil {
		log.Printf("initial catalog load failed, serving empty catalog: %v", err)
	}

	if fs, ok := source.(*catalog.FileSource); ok && cfg.WatchFiles {
		startFileWatcher(ctx, fs, cfg.WatchDebounce, store)
	}
	if cfg.RedisURL != "" {
		startReloadListener(ctx, cfg, store)
	}

	if cfg.AdminToken == "" {
		log.Println("ADMIN_TOKEN not set, POST /catalog/reload disabled")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(store, cfg.AdminToken),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown: %v", err)
		}
	}()

	log.Printf("Server listening addr=:%s catalog_source=%s", cfg.Port, cfg.CatalogSource)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("Server stopped")
}

func newCatalogSource(ctx context.Context, cfg *config.Config) (ports.CatalogSource, func(), error) {
	noop := func() {}

	switch cfg.CatalogSource {
	case config.SourceHTTP:
		src, err := catalog.NewHTTPSource(cfg.POISource, cfg.VenueSource)
		if err != nil {
			return nil, noop, err
		}
		return src, noop, nil

	case config.SourceSQL:
		conn, err := db.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("catalog source: %w", err)
		}
		return catalog.NewSQLSource(conn), func() { conn.Close() }, nil

	default:
		return catalog.NewFileSource(cfg.POISource, cfg.VenueSource), noop, nil
	}
}

func reloadCatalog(store *catalog.Store, trigger string) func(context.Context) {
	return func(ctx context.Context) {
		log.Printf("catalog reload requested trigger=%s", trigger)
		if err := store.Reload(ctx); err != nil {
			log.Printf("catalog reload failed trigger=%s: %v", trigger, err)
		}
	}
}

func startFileWatcher(ctx context.Context, fs *catalog.FileSource, debounce time.Duration, store *catalog.Store) {
	watcher, err := catalog.NewFileWatcher(fs.Paths(), debounce)
	if err != nil {
		log.Printf("file watcher disabled: %v", err)
		return
	}

	go func() {
		if err := watcher.Run(ctx, reloadCatalog(store, "file")); err != nil {
			log.Printf("file watcher stopped: %v", err)
		}
	}()
}

func startReloadListener(ctx context.Context, cfg *config.Config, store *catalog.Store) {
	client, err := notify.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Printf("reload listener disabled: %v", err)
		return
	}

	notifier := notify.NewRedisNotifier(client, cfg.ReloadChannel)
	reload := reloadCatalog(store, "redis")

	go func() {
		defer client.Close()
		err := notifier.Listen(ctx, func(ctx context.Context, reason string) {
			log.Printf("catalog reload notification reason=%q", reason)
			reload(ctx)
		})
		if err != nil {
			log.Printf("reload listener stopped: %v", err)
		}
	}()
}
