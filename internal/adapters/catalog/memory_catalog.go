package catalog

import (
	"fmt"
	"itinerary-service/internal/domain"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// MemoryCatalog is an immutable, id-indexed catalog that remembers load order.
// It implements ports.Catalog and is safe for concurrent reads.
type MemoryCatalog struct {
	pois     *orderedmap.OrderedMap[string, domain.POI]
	venues   *orderedmap.OrderedMap[string, domain.Venue]
	loadedAt time.Time
}

// NewMemoryCatalog indexes pois and venues by id. When an id repeats, the
// first record wins and the duplicate is reported as an issue.
func NewMemoryCatalog(pois []domain.POI, venues []domain.Venue) (*MemoryCatalog, []string) {
	c := &MemoryCatalog{
		pois:     orderedmap.New[string, domain.POI](orderedmap.WithCapacity[string, domain.POI](len(pois))),
		venues:   orderedmap.New[string, domain.Venue](orderedmap.WithCapacity[string, domain.Venue](len(venues))),
		loadedAt: time.Now(),
	}

	var issues []string
	for _, p := range pois {
		if _, dup := c.pois.Get(p.ID); dup {
			issues = append(issues, fmt.Sprintf("poi %q: duplicate id ignored", p.ID))
			continue
		}
		c.pois.Set(p.ID, p)
	}
	for _, v := range venues {
		if _, dup := c.venues.Get(v.ID); dup {
			issues = append(issues, fmt.Sprintf("venue %q: duplicate id ignored", v.ID))
			continue
		}
		c.venues.Set(v.ID, v)
	}

	return c, issues
}

// EmptyCatalog returns a catalog with no records.
func EmptyCatalog() *MemoryCatalog {
	c, _ := NewMemoryCatalog(nil, nil)
	return c
}

func (c *MemoryCatalog) AllPOIs() []domain.POI {
	out := make([]domain.POI, 0, c.pois.Len())
	for pair := c.pois.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

func (c *MemoryCatalog) AllVenues() []domain.Venue {
	out := make([]domain.Venue, 0, c.venues.Len())
	for pair := c.venues.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

func (c *MemoryCatalog) GetPOI(id string) (domain.POI, bool) {
	return c.pois.Get(id)
}

func (c *MemoryCatalog) GetVenue(id string) (domain.Venue, bool) {
	return c.venues.Get(id)
}

func (c *MemoryCatalog) POICount() int   { return c.pois.Len() }
func (c *MemoryCatalog) VenueCount() int { return c.venues.Len() }

func (c *MemoryCatalog) LoadedAt() time.Time { return c.loadedAt }
