package services

import (
	"itinerary-service/internal/domain"
	"itinerary-service/internal/ports"
)

// SelectDayPOIs picks up to maxCount POI ids for one day from a ranked list.
//
// POIs in used are skipped so nothing repeats across days. Day trips are never
// placed on day 1 and overnight excursions are never placed at all. minCount is
// advisory: a day may come back with fewer POIs when candidates run out.
// The caller owns used and is expected to add the returned ids to it.
func SelectDayPOIs(
	ranked []ScoredEntry,
	catalog ports.Catalog,
	used map[string]struct{},
	minCount int,
	maxCount int,
	dayNumber int,
) []string {
	if maxCount <= 0 {
		return []string{}
	}

	selected := make([]string, 0, max(minCount, maxCount))
	for _, entry := range ranked {
		if len(selected) >= maxCount {
			break
		}

		if _, ok := used[entry.POIID]; ok {
			continue
		}

		poi, ok := catalog.GetPOI(entry.POIID)
		if !ok {
			continue
		}

		if poi.IsMarked(domain.LabelOvernight) {
			continue
		}
		if dayNumber == 1 && poi.IsMarked(domain.LabelDayTrip) {
			continue
		}

		selected = append(selected, entry.POIID)
	}

	return selected
}
