package ports

import (
	"context"
	"itinerary-service/internal/domain"
)

// Catalog is the read-only view of POIs and venues used by planning.
// Implementations must be safe for concurrent reads and never change after publication.
type Catalog interface {
	// Return all POIs in catalog load order.
	AllPOIs() []domain.POI
	// Return all venues in catalog load order.
	AllVenues() []domain.Venue
	GetPOI(id string) (domain.POI, bool)
	GetVenue(id string) (domain.Venue, bool)
}

// CatalogProvider hands out the currently published catalog.
// Callers should take one snapshot per planning call.
type CatalogProvider interface {
	Current() Catalog
}

// CatalogReloader rebuilds and republishes the catalog from its source.
type CatalogReloader interface {
	Reload(ctx context.Context) error
}
