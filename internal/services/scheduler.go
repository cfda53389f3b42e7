package services

import (
	"fmt"
	"itinerary-service/internal/domain"
	"itinerary-service/internal/ports"
	"time"
)

// Fixed daily timeline anchors.
var (
	dayStartAt    = domain.At(9, 0)
	lunchAnchorAt = domain.At(12, 0)
	dinnerOpenAt  = domain.At(19, 0)
	dinnerStartAt = domain.At(19, 30)
	dinnerEndAt   = domain.At(21, 0)
)

const (
	maxMorningPOIs   = 2
	maxAfternoonPOIs = 2

	morningBuffer   = 15 * time.Minute
	afternoonBuffer = 20 * time.Minute
	postLunchBuffer = 15 * time.Minute
	lunchDuration   = 90 * time.Minute

	// A meal venue qualifies when its average check is within this multiple
	// of the per-meal budget share.
	mealCheckFactor = 1.5
	// Dinner is attempted only if the day has at least this much headroom left.
	dinnerHeadroomUSD = 20.0
)

// DayBudget holds the per-day money limits derived from the trip budget.
type DayBudget struct {
	DailyUSD     float64
	MealShareUSD float64
}

// NewDayBudget splits a trip budget across days and three meals per day.
func NewDayBudget(totalUSD float64, days int) DayBudget {
	daily := totalUSD / float64(days)
	return DayBudget{DailyUSD: daily, MealShareUSD: daily / 3}
}

// ScheduleDay lays out one day's POIs and meals on a time-of-day timeline.
//
// Morning-hinted POIs open the day at 09:00 (the first POI is promoted when
// none is hinted), lunch never starts before noon, afternoon POIs follow lunch,
// and dinner is added when the day's spend leaves enough headroom. Missing
// POI ids and POIs that would run past midnight are skipped; meals without an
// eligible venue are omitted.
// The returned blocks are sorted by start time.
func ScheduleDay(catalog ports.Catalog, dayPOIs []string, budget DayBudget) []domain.TimeBlock {
	morning, afternoon := splitMorning(resolvePOIs(catalog, dayPOIs))

	blocks := make([]domain.TimeBlock, 0, len(morning)+len(afternoon)+2)
	var dayCost float64

	cursor := dayStartAt
	placed := 0
	for _, p := range firstN(morning, maxMorningPOIs) {
		start := cursor
		if placed > 0 {
			start = start.Add(morningBuffer)
		}
		end := start.Add(p.Duration())
		if end > domain.EndOfDay {
			continue
		}
		blocks = append(blocks, poiBlock(p, start, end, true))
		dayCost += p.CostUSD
		cursor = end
		placed++
	}

	venues := catalog.AllVenues()
	mealCap := budget.MealShareUSD * mealCheckFactor

	lunchStart := max(cursor, lunchAnchorAt)
	lunchEnd := lunchStart.Add(lunchDuration)
	lunch, hasLunch := pickVenue(venues, lunchStart, mealCap, "")
	if hasLunch {
		blocks = append(blocks, mealBlock(lunch, lunchStart, lunchEnd, "Lunch"))
		dayCost += lunch.AvgCheckUSD
	}

	cursor = lunchEnd.Add(postLunchBuffer)
	placed = 0
	for _, p := range firstN(afternoon, maxAfternoonPOIs) {
		start := cursor
		if placed > 0 {
			start = start.Add(afternoonBuffer)
		}
		end := start.Add(p.Duration())
		if end > domain.EndOfDay {
			continue
		}
		blocks = append(blocks, poiBlock(p, start, end, false))
		dayCost += p.CostUSD
		cursor = end
		placed++
	}

	if dayCost+dinnerHeadroomUSD <= budget.DailyUSD {
		exclude := ""
		if hasLunch {
			exclude = lunch.ID
		}
		if dinner, ok := pickVenue(venues, dinnerOpenAt, mealCap, exclude); ok {
			blocks = append(blocks, mealBlock(dinner, dinnerStartAt, dinnerEndAt, "Dinner"))
		}
	}

	domain.SortBlocks(blocks)
	return blocks
}

func resolvePOIs(catalog ports.Catalog, ids []string) []domain.POI {
	pois := make([]domain.POI, 0, len(ids))
	for _, id := range ids {
		if p, ok := catalog.GetPOI(id); ok {
			pois = append(pois, p)
		}
	}
	return pois
}

// splitMorning separates morning-hinted POIs from the rest, promoting the
// first remaining POI when nothing is hinted for the morning.
func splitMorning(pois []domain.POI) (morning, rest []domain.POI) {
	for _, p := range pois {
		if p.BestTime == domain.BestTimeMorning {
			morning = append(morning, p)
		} else {
			rest = append(rest, p)
		}
	}

	if len(morning) == 0 && len(rest) > 0 {
		morning = []domain.POI{rest[0]}
		rest = rest[1:]
	}

	return morning, rest
}

// pickVenue returns the highest-rated venue open at t whose average check fits
// within maxCheck. Rating ties go to the venue loaded first.
func pickVenue(venues []domain.Venue, t domain.Clock, maxCheck float64, excludeID string) (domain.Venue, bool) {
	var (
		best  domain.Venue
		found bool
	)

	for _, v := range venues {
		if v.ID == excludeID || !v.OpenAt(t) || v.AvgCheckUSD > maxCheck {
			continue
		}
		if !found || v.Rating > best.Rating {
			best = v
			found = true
		}
	}

	return best, found
}

func poiBlock(p domain.POI, start, end domain.Clock, morningSlot bool) domain.TimeBlock {
	return domain.TimeBlock{
		Start:   start,
		End:     end,
		Kind:    domain.BlockPOI,
		POIID:   p.ID,
		Name:    p.Name,
		Reason:  poiReason(p, morningSlot),
		CostUSD: p.CostUSD,
	}
}

func mealBlock(v domain.Venue, start, end domain.Clock, meal string) domain.TimeBlock {
	return domain.TimeBlock{
		Start:   start,
		End:     end,
		Kind:    domain.BlockMeal,
		VenueID: v.ID,
		Name:    v.Name,
		Reason:  fmt.Sprintf("%s at the best-rated venue within budget (rating %.1f)", meal, v.Rating),
		CostUSD: v.AvgCheckUSD,
	}
}

func poiReason(p domain.POI, morningSlot bool) string {
	switch {
	case p.HasTag(domain.LabelMustSee):
		return "Must-see landmark"
	case p.HasTag(domain.LabelUNESCO):
		return "UNESCO World Heritage site"
	case morningSlot && p.BestTime == domain.BestTimeMorning:
		return "Best visited in the morning"
	case p.BestTime == domain.BestTimeSunset:
		return "Best around sunset"
	default:
		return "Matches your interests"
	}
}

func firstN[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
