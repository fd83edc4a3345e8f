package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wayfarer/internal/models/db_models"
	"wayfarer/pkg/utils"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := utils.ParseDate(s)
	require.NoError(t, err)
	return d
}

func shortlistOf(items ...db_models.CatalogItem) []RankedCandidate {
	out := make([]RankedCandidate, 0, len(items))
	for _, item := range items {
		out = append(out, RankedCandidate{ItemID: item.ID.String(), Domain: item.Domain})
	}
	return out
}

func schedulerFor(items []db_models.CatalogItem) SchedulerServiceInterface {
	return NewSchedulerService(NewCatalogServiceFromSnapshot(NewCatalogSnapshot(items)))
}

func TestBuildDayGreedyPlacement(t *testing.T) {
	window := hoursJSON(db_models.OpeningWindow{Open: "09:00", Close: "18:00"})
	mkActivity := func(n byte, name string, price float64) db_models.CatalogItem {
		item := testItem(n, db_models.DomainActivity, name, "Nairobi", "")
		item.Price = fptr(price)
		item.OpeningHours = window
		return item
	}

	a := mkActivity(1, "Giraffe Centre", 15)
	b := mkActivity(2, "Railway Museum", 10)
	c := mkActivity(3, "Safari Walk", 25)
	d := mkActivity(4, "Craft Market", 5)
	e := mkActivity(5, "Snake Park", 20)

	scheduler := schedulerFor([]db_models.CatalogItem{a, b, c, d, e})
	plan := PlanContext{
		City:         "Nairobi",
		Pace:         "moderate",
		DailyBudget:  40,
		DailyStopCap: 3,
		DayStartMin:  600,  // 10:00
		DayEndMin:    1320, // 22:00
	}

	day, notes := scheduler.BuildDay(mustDate(t, "2026-03-01"), shortlistOf(a, b, c, d, e), plan, map[string]bool{})
	require.Len(t, day.Stops, 3)
	assert.Empty(t, notes)

	// The 25-unit stop is skipped because it would blow the daily budget;
	// the walk continues down the shortlist instead of stopping.
	assert.Equal(t, "Giraffe Centre", day.Stops[0].Name)
	assert.Equal(t, "10:00", day.Stops[0].Start)
	assert.Equal(t, "11:00", day.Stops[0].End)

	assert.Equal(t, "Railway Museum", day.Stops[1].Name)
	assert.Equal(t, "11:15", day.Stops[1].Start)
	assert.Equal(t, "12:15", day.Stops[1].End)

	assert.Equal(t, "Craft Market", day.Stops[2].Name)
	assert.Equal(t, "12:30", day.Stops[2].Start)
	assert.Equal(t, "13:30", day.Stops[2].End)

	var spent float64
	for _, stop := range day.Stops {
		spent += stop.EstCost
	}
	assert.LessOrEqual(t, spent, plan.DailyBudget)
}

func TestBuildDayWaitsForOpening(t *testing.T) {
	item := testItem(1, db_models.DomainActivity, "Evening Market", "Nairobi", "")
	item.OpeningHours = hoursJSON(db_models.OpeningWindow{Open: "14:00", Close: "18:00"})

	scheduler := schedulerFor([]db_models.CatalogItem{item})
	plan := PlanContext{Pace: "moderate", DailyStopCap: 4, DayStartMin: 600, DayEndMin: 1320}

	day, _ := scheduler.BuildDay(mustDate(t, "2026-03-01"), shortlistOf(item), plan, map[string]bool{})
	require.Len(t, day.Stops, 1)
	assert.Equal(t, "14:00", day.Stops[0].Start)
	assert.Equal(t, "15:00", day.Stops[0].End)
}

func TestBuildDayRespectsDayEnd(t *testing.T) {
	item := testItem(1, db_models.DomainActivity, "Late Tour", "Nairobi", "")

	scheduler := schedulerFor([]db_models.CatalogItem{item})
	plan := PlanContext{Pace: "moderate", DailyStopCap: 4, DayStartMin: 630, DayEndMin: 660}

	day, notes := scheduler.BuildDay(mustDate(t, "2026-03-01"), shortlistOf(item), plan, map[string]bool{})
	assert.Empty(t, day.Stops)
	require.Len(t, notes, 1)
	assert.Equal(t, "2026-03-01: no stops could be scheduled within the given constraints", notes[0])
}

func TestBuildDayItemWithoutHoursIsAlwaysOpen(t *testing.T) {
	item := testItem(1, db_models.DomainActivity, "City Walk", "Nairobi", "")

	scheduler := schedulerFor([]db_models.CatalogItem{item})
	plan := PlanContext{Pace: "relaxed", DailyStopCap: 4, DayStartMin: 420, DayEndMin: 1320}

	day, _ := scheduler.BuildDay(mustDate(t, "2026-03-01"), shortlistOf(item), plan, map[string]bool{})
	require.Len(t, day.Stops, 1)
	assert.Equal(t, "07:00", day.Stops[0].Start)
}

func TestBuildDayAddsTravelTimeBetweenStops(t *testing.T) {
	first := testItem(1, db_models.DomainActivity, "Harbor", "Nairobi", "")
	second := testItem(2, db_models.DomainActivity, "Hilltop", "Nairobi", "")
	second.Latitude = 0.1 // ~11.1 km north, 17 minutes at 40 km/h

	scheduler := schedulerFor([]db_models.CatalogItem{first, second})
	plan := PlanContext{Pace: "moderate", DailyStopCap: 4, DayStartMin: 600, DayEndMin: 1320}

	day, _ := scheduler.BuildDay(mustDate(t, "2026-03-01"), shortlistOf(first, second), plan, map[string]bool{})
	require.Len(t, day.Stops, 2)
	assert.Equal(t, "11:00", day.Stops[0].End)
	// 15 min pace buffer plus 17 min travel.
	assert.Equal(t, "11:32", day.Stops[1].Start)
}

func TestBuildDayMaxPriceFiltersExplicitPricesOnly(t *testing.T) {
	priced := testItem(1, db_models.DomainActivity, "Boat Tour", "Nairobi", "")
	priced.Price = fptr(120)
	unpriced := testItem(2, db_models.DomainActivity, "Old Town Walk", "Nairobi", "")

	scheduler := schedulerFor([]db_models.CatalogItem{priced, unpriced})
	plan := PlanContext{
		Pace:                "moderate",
		DailyStopCap:        4,
		DayStartMin:         600,
		DayEndMin:           1320,
		MaxPricePerActivity: fptr(50),
	}

	day, _ := scheduler.BuildDay(mustDate(t, "2026-03-01"), shortlistOf(priced, unpriced), plan, map[string]bool{})
	require.Len(t, day.Stops, 1)
	// The default-cost item passes the cap; only explicit prices are compared.
	assert.Equal(t, "Old Town Walk", day.Stops[0].Name)
}

func TestBuildItineraryNeverRepeatsAStop(t *testing.T) {
	a := testItem(1, db_models.DomainActivity, "Giraffe Centre", "Nairobi", "")
	b := testItem(2, db_models.DomainActivity, "Railway Museum", "Nairobi", "")

	scheduler := schedulerFor([]db_models.CatalogItem{a, b})
	plan := PlanContext{
		StartDate:    mustDate(t, "2026-03-01"),
		EndDate:      mustDate(t, "2026-03-02"),
		Pace:         "moderate",
		DailyStopCap: 1,
		DayStartMin:  600,
		DayEndMin:    1320,
	}

	days, _ := scheduler.BuildItinerary(shortlistOf(a, b), plan)
	require.Len(t, days, 2)
	require.Len(t, days[0].Stops, 1)
	require.Len(t, days[1].Stops, 1)
	assert.Equal(t, "Giraffe Centre", days[0].Stops[0].Name)
	assert.Equal(t, "Railway Museum", days[1].Stops[0].Name)
}

func TestBuildItineraryRunsOutOfCandidates(t *testing.T) {
	only := testItem(1, db_models.DomainActivity, "Giraffe Centre", "Nairobi", "")

	scheduler := schedulerFor([]db_models.CatalogItem{only})
	plan := PlanContext{
		StartDate:    mustDate(t, "2026-03-01"),
		EndDate:      mustDate(t, "2026-03-02"),
		Pace:         "moderate",
		DailyStopCap: 2,
		DayStartMin:  600,
		DayEndMin:    1320,
	}

	days, notes := scheduler.BuildItinerary(shortlistOf(only), plan)
	require.Len(t, days, 2)
	assert.Len(t, days[0].Stops, 1)
	assert.Empty(t, days[1].Stops)
	require.Len(t, notes, 1)
	assert.Contains(t, notes[0], "2026-03-02")
}
