package ports

import (
	"context"
	"itinerary-service/internal/domain"
)

// CatalogData is the raw result of reading a catalog source.
// Issues describe records or documents that were skipped or defaulted.
type CatalogData struct {
	POIs   []domain.POI
	Venues []domain.Venue
	Issues []string
}

// Port: a boundary for reading POI and venue records from external storage.
type CatalogSource interface {
	// Name identifies the source in logs.
	Name() string
	Load(ctx context.Context) (CatalogData, error)
}
