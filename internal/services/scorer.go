package services

import (
	"itinerary-service/internal/domain"
	"slices"
	"strings"
)

const (
	tagMatchWeight         = 2.0
	categoryMatchWeight    = 1.5
	descriptionMatchWeight = 0.5
	mustSeeBonus           = 3.0
	unescoBonus            = 2.0
	neutralRating          = 4.0
	ratingWeight           = 0.5
)

// ScoredEntry ranks one POI against a set of interests.
type ScoredEntry struct {
	POIID string
	Score float64
}

// ScorePOIs ranks pois against interests, highest score first.
//
// Ties keep the order of pois, so passing the catalog load order makes the
// ranking reproducible. Interests are compared case-insensitively and
// duplicates count once.
func ScorePOIs(pois []domain.POI, interests []string) []ScoredEntry {
	wanted := normalizeInterests(interests)

	scored := make([]ScoredEntry, 0, len(pois))
	for _, p := range pois {
		scored = append(scored, ScoredEntry{POIID: p.ID, Score: scorePOI(p, wanted)})
	}

	slices.SortStableFunc(scored, func(a, b ScoredEntry) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	return scored
}

func scorePOI(p domain.POI, interests []string) float64 {
	description := strings.ToLower(p.Description)

	var score float64
	for _, interest := range interests {
		if p.HasTag(interest) {
			score += tagMatchWeight
		}
		if p.HasCategory(interest) {
			score += categoryMatchWeight
		}
		if strings.Contains(description, interest) {
			score += descriptionMatchWeight
		}
	}

	if p.HasTag(domain.LabelMustSee) {
		score += mustSeeBonus
	}
	if p.HasTag(domain.LabelUNESCO) {
		score += unescoBonus
	}

	return score + (p.Rating-neutralRating)*ratingWeight
}

func normalizeInterests(interests []string) []string {
	out := make([]string, 0, len(interests))
	for _, raw := range interests {
		i := strings.ToLower(strings.TrimSpace(raw))
		if i == "" || slices.Contains(out, i) {
			continue
		}
		out = append(out, i)
	}
	return out
}
