package services

import (
	"itinerary-service/internal/domain"
	"slices"
	"testing"
)

func TestScheduleDayScenario(t *testing.T) {
	cat := scenarioCatalog(t)

	blocks := ScheduleDay(cat, []string{"registan", "shahizinda", "bazaar"}, NewDayBudget(100, 1))

	want := []struct {
		id         string
		start, end string
		kind       domain.BlockKind
	}{
		{"registan", "09:00", "11:00", domain.BlockPOI},
		{"shahizinda", "11:15", "12:45", domain.BlockPOI},
		{"lunch_place", "12:45", "14:15", domain.BlockMeal},
		{"bazaar", "14:30", "15:30", domain.BlockPOI},
		{"dinner_place", "19:30", "21:00", domain.BlockMeal},
	}

	if len(blocks) != len(want) {
		t.Fatalf("blocks = %v, want %d blocks", blockIDs(blocks), len(want))
	}
	for i, w := range want {
		b := blocks[i]
		if ids := blockIDs(blocks[i : i+1]); ids[0] != w.id {
			t.Errorf("block %d = %s, want %s", i, ids[0], w.id)
		}
		if b.Start.String() != w.start || b.End.String() != w.end {
			t.Errorf("block %d (%s) = %s-%s, want %s-%s", i, w.id, b.Start, b.End, w.start, w.end)
		}
		if b.Kind != w.kind {
			t.Errorf("block %d kind = %s, want %s", i, b.Kind, w.kind)
		}
	}
}

func TestScheduleDayLunchWaitsForNoon(t *testing.T) {
	cat := newCatalog(t,
		[]domain.POI{
			{ID: "a", Name: "A", DurationHours: 1, BestTime: domain.BestTimeMorning},
			{ID: "b", Name: "B", DurationHours: 0.5, BestTime: domain.BestTimeMorning},
		},
		[]domain.Venue{{ID: "v", Name: "V", AvgCheckUSD: 5, Rating: 4, OpensAt: 0, ClosesAt: domain.EndOfDay}},
	)

	blocks := ScheduleDay(cat, []string{"a", "b"}, NewDayBudget(10, 1))

	lunch := blocks[2]
	if lunch.Kind != domain.BlockMeal || lunch.Start != domain.At(12, 0) {
		t.Fatalf("lunch = %+v, want meal at 12:00", lunch)
	}
	if lunch.End != domain.At(13, 30) {
		t.Fatalf("lunch end = %s, want 13:30", lunch.End)
	}
}

func TestScheduleDayPromotesFirstPOIWithoutMorningHint(t *testing.T) {
	cat := newCatalog(t,
		[]domain.POI{
			{ID: "first", Name: "First", DurationHours: 1, BestTime: domain.BestTimeAny},
			{ID: "second", Name: "Second", DurationHours: 1, BestTime: domain.BestTimeSunset},
			{ID: "third", Name: "Third", DurationHours: 1, BestTime: domain.BestTimeAny},
		},
		nil,
	)

	blocks := ScheduleDay(cat, []string{"first", "second", "third"}, NewDayBudget(0, 1))

	want := []struct {
		id    string
		start string
	}{
		{"first", "09:00"},
		{"second", "13:45"},
		{"third", "15:05"},
	}
	if len(blocks) != len(want) {
		t.Fatalf("blocks = %v, want %d", blockIDs(blocks), len(want))
	}
	for i, w := range want {
		if blocks[i].POIID != w.id || blocks[i].Start.String() != w.start {
			t.Errorf("block %d = %s@%s, want %s@%s", i, blocks[i].POIID, blocks[i].Start, w.id, w.start)
		}
	}
}

func TestScheduleDayCapsSegments(t *testing.T) {
	var pois []domain.POI
	for _, id := range []string{"m1", "m2", "m3"} {
		pois = append(pois, domain.POI{ID: id, Name: id, DurationHours: 0.5, BestTime: domain.BestTimeMorning})
	}
	for _, id := range []string{"a1", "a2", "a3"} {
		pois = append(pois, domain.POI{ID: id, Name: id, DurationHours: 0.5, BestTime: domain.BestTimeAny})
	}
	cat := newCatalog(t, pois, nil)

	blocks := ScheduleDay(cat, []string{"m1", "m2", "m3", "a1", "a2", "a3"}, NewDayBudget(0, 1))

	if got := blockIDs(blocks); !slices.Equal(got, []string{"m1", "m2", "a1", "a2"}) {
		t.Fatalf("blocks = %v, want [m1 m2 a1 a2]", got)
	}
}

func TestScheduleDayMealBudgetAndOpeningHours(t *testing.T) {
	cat := newCatalog(t,
		nil,
		[]domain.Venue{
			{ID: "pricey", Name: "Pricey", AvgCheckUSD: 60, Rating: 5, OpensAt: 0, ClosesAt: domain.EndOfDay},
			{ID: "closed", Name: "Closed", AvgCheckUSD: 5, Rating: 5, OpensAt: domain.At(17, 0), ClosesAt: domain.At(18, 0)},
			{ID: "good", Name: "Good", AvgCheckUSD: 20, Rating: 4.2, OpensAt: 0, ClosesAt: domain.EndOfDay},
			{ID: "better", Name: "Better", AvgCheckUSD: 25, Rating: 4.6, OpensAt: 0, ClosesAt: domain.EndOfDay},
		},
	)

	// Daily budget 60, meal share 20, meal cap 30.
	blocks := ScheduleDay(cat, nil, NewDayBudget(60, 1))

	if got := blockIDs(blocks); !slices.Equal(got, []string{"better", "good"}) {
		t.Fatalf("meals = %v, want [better good]", got)
	}
	if blocks[0].Start != domain.At(12, 0) {
		t.Fatalf("lunch start = %s, want 12:00", blocks[0].Start)
	}
	if blocks[1].Start != domain.At(19, 30) || blocks[1].End != domain.At(21, 0) {
		t.Fatalf("dinner = %s-%s, want 19:30-21:00", blocks[1].Start, blocks[1].End)
	}
}

func TestScheduleDayOmitsMealsWithoutEligibleVenue(t *testing.T) {
	cat := newCatalog(t,
		[]domain.POI{{ID: "p", Name: "P", DurationHours: 1, BestTime: domain.BestTimeMorning}},
		[]domain.Venue{{ID: "only", Name: "Only", AvgCheckUSD: 5, Rating: 4, OpensAt: 0, ClosesAt: domain.EndOfDay}},
	)

	// Lunch takes the only venue, so dinner has no distinct candidate.
	blocks := ScheduleDay(cat, []string{"p"}, NewDayBudget(300, 1))
	if got := blockIDs(blocks); !slices.Equal(got, []string{"p", "only"}) {
		t.Fatalf("blocks = %v, want [p only]", got)
	}

	// Meal cap 1.5 * 1/3 is below every check.
	blocks = ScheduleDay(cat, []string{"p"}, NewDayBudget(1, 1))
	if got := blockIDs(blocks); !slices.Equal(got, []string{"p"}) {
		t.Fatalf("blocks = %v, want [p]", got)
	}
}

func TestScheduleDayDinnerHeadroom(t *testing.T) {
	cat := scenarioCatalog(t)
	ids := []string{"registan", "shahizinda", "bazaar"}

	// Day cost before dinner is 20 (POIs 10 + lunch 10).
	tests := []struct {
		budget     float64
		wantDinner bool
	}{
		{budget: 40, wantDinner: true},
		{budget: 39, wantDinner: false},
	}

	for _, tt := range tests {
		blocks := ScheduleDay(cat, ids, NewDayBudget(tt.budget, 1))
		hasDinner := slices.Contains(blockIDs(blocks), "dinner_place")
		if hasDinner != tt.wantDinner {
			t.Errorf("budget %v: dinner = %v, want %v (blocks %v)", tt.budget, hasDinner, tt.wantDinner, blockIDs(blocks))
		}
	}
}

func TestScheduleDaySkipsUnknownPOIs(t *testing.T) {
	cat := scenarioCatalog(t)

	blocks := ScheduleDay(cat, []string{"ghost", "bazaar"}, NewDayBudget(0.5, 1))
	if got := blockIDs(blocks); !slices.Equal(got, []string{"bazaar"}) {
		t.Fatalf("blocks = %v, want [bazaar]", got)
	}
}

func TestScheduleDayKeepsBlocksWithinTheDay(t *testing.T) {
	cat := newCatalog(t,
		[]domain.POI{
			{ID: "long", Name: "Long", DurationHours: 16, BestTime: domain.BestTimeMorning},
			{ID: "a", Name: "A", DurationHours: 10, BestTime: domain.BestTimeMorning},
			{ID: "b", Name: "B", DurationHours: 12, BestTime: domain.BestTimeAny},
			{ID: "c", Name: "C", DurationHours: 2, BestTime: domain.BestTimeAny},
		},
		[]domain.Venue{{ID: "v", Name: "V", AvgCheckUSD: 5, Rating: 4, OpensAt: 0, ClosesAt: domain.EndOfDay}},
	)

	blocks := ScheduleDay(cat, []string{"long", "a", "b", "c"}, NewDayBudget(300, 1))

	for _, b := range blocks {
		if b.End > domain.EndOfDay {
			t.Errorf("block %s ends at %s, past midnight", b.Name, b.End)
		}
	}

	if got, want := blockIDs(blocks), []string{"a", "v", "c"}; !slices.Equal(got, want) {
		t.Fatalf("blocks = %v, want %v", got, want)
	}
	if blocks[0].Start != domain.At(9, 0) || blocks[0].End != domain.At(19, 0) {
		t.Errorf("a = %s-%s, want 09:00-19:00", blocks[0].Start, blocks[0].End)
	}
	if blocks[2].Start != domain.At(20, 45) || blocks[2].End != domain.At(22, 45) {
		t.Errorf("c = %s-%s, want 20:45-22:45", blocks[2].Start, blocks[2].End)
	}
}
