package services

import (
	"context"
	"errors"
	"fmt"
	"itinerary-service/internal/domain"
	"itinerary-service/internal/platform/obs"
	"itinerary-service/internal/ports"
	"strings"
	"time"
)

var (
	ErrInvalidDays   = errors.New("days must be at least 1")
	ErrInvalidBudget = errors.New("budget must be greater than zero")
	ErrInvalidPace   = errors.New("unknown pace")
)

const startDateLayout = "2006-01-02"

var dayThemes = []string{
	"Heart of the city",
	"Ancient secrets",
	"Culture and flavors",
	"Beyond tourism",
	"Unhurried pace",
}

const fallbackTheme = "Exploration"

type CreatePlanRequest struct {
	Days      int
	Interests []string
	BudgetUSD float64
	Pace      string
	// StartDate is "YYYY-MM-DD". Empty or unparseable values fall back to Now.
	StartDate string
	// Now is the reference time for the start date fallback; zero means time.Now().
	Now time.Time
}

// CreatePlan builds a multi-day itinerary from catalog.
//
// The catalog is ranked once against the interests, then each day draws
// unused POIs for its pace and is scheduled independently. Data problems
// never fail the call: they surface as plan warnings. Only invalid input
// (days < 1, non-positive budget, unknown pace) returns an error.
func CreatePlan(ctx context.Context, req CreatePlanRequest, catalog ports.Catalog) (_ *domain.Plan, err error) {
	defer obs.Time(ctx, "services.CreatePlan")(&err)

	if req.Days < 1 {
		return nil, fmt.Errorf("create plan: days=%d: %w", req.Days, ErrInvalidDays)
	}
	if !(req.BudgetUSD > 0) {
		return nil, fmt.Errorf("create plan: budget=%v: %w", req.BudgetUSD, ErrInvalidBudget)
	}
	pace, err := domain.ParsePace(req.Pace)
	if err != nil {
		return nil, fmt.Errorf("create plan: %w %q", ErrInvalidPace, req.Pace)
	}

	start := resolveStartDate(req.StartDate, req.Now)
	minCount, maxCount := pace.POIRange()
	budget := NewDayBudget(req.BudgetUSD, req.Days)

	ranked := ScorePOIs(catalog.AllPOIs(), req.Interests)
	used := make(map[string]struct{})

	plan := &domain.Plan{
		Days:     make([]domain.DayPlan, 0, req.Days),
		Warnings: []string{},
		Pace:     pace,
	}

	for day := 1; day <= req.Days; day++ {
		ids := SelectDayPOIs(ranked, catalog, used, minCount, maxCount, day)
		for _, id := range ids {
			used[id] = struct{}{}
		}

		blocks := ScheduleDay(catalog, ids, budget)
		for _, b := range blocks {
			plan.TotalCostUSD += b.CostUSD
			switch b.Kind {
			case domain.BlockPOI:
				plan.POICount++
			case domain.BlockMeal:
				plan.MealCount++
			}
		}

		plan.Days = append(plan.Days, domain.DayPlan{
			DayNumber: day,
			Date:      start.AddDate(0, 0, day-1),
			Theme:     DayTheme(day),
			Blocks:    blocks,
		})
	}

	plan.Warnings = append(plan.Warnings, ValidatePlan(catalog, plan.Days)...)
	if w, over := BudgetWarning(plan.TotalCostUSD, req.BudgetUSD); over {
		plan.Warnings = append(plan.Warnings, w)
	}

	return plan, nil
}

// DayTheme returns the label for a 1-based day number.
func DayTheme(dayNumber int) string {
	if dayNumber >= 1 && dayNumber <= len(dayThemes) {
		return dayThemes[dayNumber-1]
	}
	return fallbackTheme
}

func resolveStartDate(raw string, now time.Time) time.Time {
	if d, err := time.Parse(startDateLayout, strings.TrimSpace(raw)); err == nil {
		return d
	}

	if now.IsZero() {
		now = time.Now()
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
