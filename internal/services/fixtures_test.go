package services

import (
	"itinerary-service/internal/adapters/catalog"
	"itinerary-service/internal/domain"
	"math"
	"testing"
)

// scenarioCatalog has two morning POIs, a day trip, an overnight trip and an
// untagged POI, plus a lunch-only and an evening-only venue.
func scenarioCatalog(t *testing.T) *catalog.MemoryCatalog {
	t.Helper()

	pois := []domain.POI{
		{ID: "registan", Name: "Registan", Categories: []string{"history"}, Tags: []string{"must-see"},
			CostUSD: 6, DurationHours: 2, BestTime: domain.BestTimeMorning, Rating: 4.9},
		{ID: "shahizinda", Name: "Shah-i-Zinda", Categories: []string{"history"},
			CostUSD: 4, DurationHours: 1.5, BestTime: domain.BestTimeMorning, Rating: 4.8},
		{ID: "urgut", Name: "Urgut", Categories: []string{"history"}, Tags: []string{"day_trip"},
			CostUSD: 30, DurationHours: 6, BestTime: domain.BestTimeAny, Rating: 4.4},
		{ID: "yurt", Name: "Yurt Camp", Categories: []string{"history"}, Tags: []string{"overnight"},
			CostUSD: 80, DurationHours: 20, BestTime: domain.BestTimeAny, Rating: 4.7},
		{ID: "bazaar", Name: "Siab Bazaar", Categories: []string{"food"},
			CostUSD: 0, DurationHours: 1, BestTime: domain.BestTimeAny, Rating: 4.5},
	}
	venues := []domain.Venue{
		{ID: "lunch_place", Name: "Plov Center", AvgCheckUSD: 10, Rating: 4.6,
			OpensAt: domain.At(11, 0), ClosesAt: domain.At(15, 0)},
		{ID: "dinner_place", Name: "Karimbek", AvgCheckUSD: 15, Rating: 4.7,
			OpensAt: domain.At(18, 0), ClosesAt: domain.At(23, 0)},
	}

	return newCatalog(t, pois, venues)
}

func newCatalog(t *testing.T, pois []domain.POI, venues []domain.Venue) *catalog.MemoryCatalog {
	t.Helper()

	c, issues := catalog.NewMemoryCatalog(pois, venues)
	if len(issues) > 0 {
		t.Fatalf("unexpected catalog issues: %v", issues)
	}
	return c
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func blockIDs(blocks []domain.TimeBlock) []string {
	ids := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b.POIID != "" {
			ids = append(ids, b.POIID)
		} else {
			ids = append(ids, b.VenueID)
		}
	}
	return ids
}
