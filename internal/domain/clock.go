package domain

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// Clock is a wall-clock time of day in minutes after midnight.
// It carries no date; all itinerary arithmetic happens within a single day.
type Clock int

const EndOfDay Clock = 24 * 60

var clockPattern = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)

func At(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// ParseClock parses "HH:MM" (24-hour). "24:00" is accepted as the end of the day.
func ParseClock(s string) (Clock, error) {
	if s == "24:00" {
		return EndOfDay, nil
	}

	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("parse clock: %q is not HH:MM", s)
	}

	h, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	return At(h, mins), nil
}

func (c Clock) Add(d time.Duration) Clock {
	return c + Clock(d/time.Minute)
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// HoursToDuration converts fractional hours to a duration rounded to the minute.
func HoursToDuration(hours float64) time.Duration {
	return time.Duration(math.Round(hours*60)) * time.Minute
}
