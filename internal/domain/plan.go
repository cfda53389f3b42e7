package domain

import (
	"slices"
	"time"
)

type BlockKind string

const (
	BlockPOI  BlockKind = "poi"
	BlockMeal BlockKind = "meal"
)

// TimeBlock is a single scheduled interval within a day.
// POIID is set for POI blocks, VenueID for meal blocks.
type TimeBlock struct {
	Start   Clock
	End     Clock
	Kind    BlockKind
	POIID   string
	VenueID string
	Name    string
	Reason  string
	CostUSD float64
}

// DayPlan is one itinerary day. DayNumber is 1-based.
type DayPlan struct {
	DayNumber int
	Date      time.Time
	Theme     string
	Blocks    []TimeBlock
}

func (d DayPlan) CostUSD() float64 {
	var total float64
	for _, b := range d.Blocks {
		total += b.CostUSD
	}
	return total
}

// Plan is the complete output of a planning call. It is built fresh per request.
type Plan struct {
	Days         []DayPlan
	Warnings     []string
	TotalCostUSD float64
	Pace         Pace
	POICount     int
	MealCount    int
}

// SortBlocks orders blocks by start time, keeping placement order for equal starts.
func SortBlocks(blocks []TimeBlock) {
	slices.SortStableFunc(blocks, func(a, b TimeBlock) int {
		return int(a.Start - b.Start)
	})
}
