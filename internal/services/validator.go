package services

import (
	"fmt"
	"itinerary-service/internal/domain"
	"itinerary-service/internal/ports"
	"slices"
)

// ValidatePlan checks a scheduled plan and returns advisory warnings.
//
// It reports blocks whose POI or venue id does not resolve in catalog and,
// per day, adjacent blocks (by start time) that overlap. The days are not
// modified.
func ValidatePlan(catalog ports.Catalog, days []domain.DayPlan) []string {
	warnings := []string{}

	for _, day := range days {
		for _, b := range day.Blocks {
			if b.POIID != "" {
				if _, ok := catalog.GetPOI(b.POIID); !ok {
					warnings = append(warnings, fmt.Sprintf("Day %d: unknown POI %q", day.DayNumber, b.POIID))
				}
			}
			if b.VenueID != "" {
				if _, ok := catalog.GetVenue(b.VenueID); !ok {
					warnings = append(warnings, fmt.Sprintf("Day %d: unknown venue %q", day.DayNumber, b.VenueID))
				}
			}
		}

		blocks := slices.Clone(day.Blocks)
		domain.SortBlocks(blocks)
		for i := 1; i < len(blocks); i++ {
			prev, next := blocks[i-1], blocks[i]
			if prev.End > next.Start {
				warnings = append(warnings, fmt.Sprintf(
					"Day %d: %q (%s-%s) overlaps %q (%s-%s)",
					day.DayNumber, prev.Name, prev.Start, prev.End, next.Name, next.Start, next.End,
				))
			}
		}
	}

	return warnings
}

// BudgetWarning returns the overrun warning when totalUSD exceeds budgetUSD.
func BudgetWarning(totalUSD, budgetUSD float64) (string, bool) {
	if totalUSD <= budgetUSD {
		return "", false
	}
	return fmt.Sprintf(
		"Estimated cost $%.2f exceeds the $%.2f budget by $%.2f",
		totalUSD, budgetUSD, totalUSD-budgetUSD,
	), true
}
