package catalog

import (
	"context"
	"fmt"
	"itinerary-service/internal/ports"
	"log"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Store publishes the current catalog. A reload builds a complete new
// MemoryCatalog and swaps it in with one atomic store, so readers see either
// the old or the new catalog and never a partial one.
type Store struct {
	source  ports.CatalogSource
	current atomic.Pointer[MemoryCatalog]
	group   singleflight.Group
}

// NewStore returns a store that serves an empty catalog until the first
// successful Reload.
func NewStore(source ports.CatalogSource) *Store {
	s := &Store{source: source}
	s.current.Store(EmptyCatalog())
	return s
}

// Current implements ports.CatalogProvider.
func (s *Store) Current() ports.Catalog {
	return s.current.Load()
}

// Snapshot returns the concrete catalog currently published.
func (s *Store) Snapshot() *MemoryCatalog {
	return s.current.Load()
}

// Reload loads the source and publishes the result. Concurrent callers share
// a single load. On error the previously published catalog stays in place.
func (s *Store) Reload(ctx context.Context) error {
	_, err, shared := s.group.Do("reload", func() (any, error) {
		data, err := s.source.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("reload catalog: source=%s: %w", s.source.Name(), err)
		}

		next, dupIssues := NewMemoryCatalog(data.POIs, data.Venues)
		for _, issue := range append(data.Issues, dupIssues...) {
			log.Printf("catalog issue source=%s: %s", s.source.Name(), issue)
		}

		s.current.Store(next)
		log.Printf(
			"catalog published source=%s pois=%d venues=%d issues=%d",
			s.source.Name(), next.POICount(), next.VenueCount(), len(data.Issues)+len(dupIssues),
		)
		return next, nil
	})
	if err != nil {
		return err
	}

	if shared {
		log.Printf("catalog reload coalesced source=%s", s.source.Name())
	}
	return nil
}
