package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	SourceFile = "file"
	SourceHTTP = "http"
	SourceSQL  = "sql"
)

// Config holds the server configuration read from the environment.
type Config struct {
	Port string

	// Catalog
	CatalogSource string
	POISource     string
	VenueSource   string

	DatabaseDriver string
	DatabaseURL    string

	// Reload triggers
	RedisURL      string
	ReloadChannel string
	WatchFiles    bool
	WatchDebounce time.Duration

	// AdminToken guards operator endpoints. Empty disables them.
	AdminToken string
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load builds a Config from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           Get("PORT", "8080"),
		CatalogSource:  strings.ToLower(Get("CATALOG_SOURCE", SourceFile)),
		POISource:      Get("POI_SOURCE", "data/poi.json"),
		VenueSource:    Get("VENUE_SOURCE", "data/restaurants.json"),
		DatabaseDriver: strings.ToLower(Get("DB_DRIVER", "pgx")),
		DatabaseURL:    Get("DATABASE_URL", ""),
		RedisURL:       Get("REDIS_URL", ""),
		ReloadChannel:  Get("RELOAD_CHANNEL", "catalog:reload"),
		AdminToken:     Get("ADMIN_TOKEN", ""),
	}

	watch, err := strconv.ParseBool(Get("WATCH_FILES", "true"))
	if err != nil {
		return nil, fmt.Errorf("config: WATCH_FILES: %w", err)
	}
	cfg.WatchFiles = watch

	debounce, err := time.ParseDuration(Get("WATCH_DEBOUNCE", "500ms"))
	if err != nil {
		return nil, fmt.Errorf("config: WATCH_DEBOUNCE: %w", err)
	}
	if debounce <= 0 {
		return nil, fmt.Errorf("config: WATCH_DEBOUNCE must be positive, got %s", debounce)
	}
	cfg.WatchDebounce = debounce

	switch cfg.CatalogSource {
	case SourceFile, SourceHTTP:
	case SourceSQL:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("config: DATABASE_URL is required when CATALOG_SOURCE=%s", SourceSQL)
		}
	default:
		return nil, fmt.Errorf("config: unknown CATALOG_SOURCE %q", cfg.CatalogSource)
	}

	switch cfg.DatabaseDriver {
	case "pgx", "sqlite":
	default:
		return nil, fmt.Errorf("config: unknown DB_DRIVER %q", cfg.DatabaseDriver)
	}

	return cfg, nil
}
