package domain

import (
	"fmt"
	"strings"
)

// Pace controls how many POIs are drawn for each day.
type Pace string

const (
	PaceSlow   Pace = "slow"
	PaceMedium Pace = "medium"
	PaceFast   Pace = "fast"
)

// ParsePace normalizes a pace label. An empty label means medium.
func ParsePace(s string) (Pace, error) {
	switch p := Pace(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PaceMedium, nil
	case PaceSlow, PaceMedium, PaceFast:
		return p, nil
	default:
		return "", fmt.Errorf("parse pace: unknown pace %q", s)
	}
}

// POIRange returns the advisory minimum and the hard maximum of POIs per day.
func (p Pace) POIRange() (minCount, maxCount int) {
	switch p {
	case PaceSlow:
		return 2, 3
	case PaceFast:
		return 5, 6
	default:
		return 3, 4
	}
}
