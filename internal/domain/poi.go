package domain

import (
	"slices"
	"strings"
	"time"
)

// BestTime is the time-of-day hint for visiting a POI.
type BestTime string

const (
	BestTimeMorning BestTime = "morning"
	BestTimeSunset  BestTime = "sunset"
	BestTimeAny     BestTime = "any"
)

// Catalog labels with scheduling meaning. They may appear as tags or categories.
const (
	LabelMustSee   = "must-see"
	LabelUNESCO    = "unesco"
	LabelDayTrip   = "day_trip"
	LabelOvernight = "overnight"
)

// ParseBestTime maps a raw hint to a known value; anything unrecognized is "any".
func ParseBestTime(s string) (BestTime, bool) {
	switch bt := BestTime(strings.ToLower(strings.TrimSpace(s))); bt {
	case BestTimeMorning, BestTimeSunset, BestTimeAny:
		return bt, true
	case "":
		return BestTimeAny, true
	default:
		return BestTimeAny, false
	}
}

// POI is a visitable attraction. Values are immutable once loaded into a catalog.
type POI struct {
	ID            string
	Name          string
	Categories    []string
	Tags          []string
	Description   string
	CostUSD       float64
	DurationHours float64
	BestTime      BestTime
	Rating        float64
	District      string
	Location      *Coordinates
}

// HasTag reports whether tag is attached to the POI. Matching is exact;
// catalog labels are normalized with NormalizeLabels when loaded.
func (p POI) HasTag(tag string) bool {
	return slices.Contains(p.Tags, tag)
}

func (p POI) HasCategory(category string) bool {
	return slices.Contains(p.Categories, category)
}

// IsMarked reports whether label is attached to the POI as a tag or as a category.
func (p POI) IsMarked(label string) bool {
	return p.HasTag(label) || p.HasCategory(label)
}

func (p POI) Duration() time.Duration {
	return HoursToDuration(p.DurationHours)
}

// NormalizeLabels lowercases and trims tags or categories, dropping blanks
// and repeats.
func NormalizeLabels(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}
