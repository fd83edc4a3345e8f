package services

import (
	"fmt"
	"time"

	"wayfarer/internal/models/db_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/pkg/utils"
)

// PlanContext is the resolved set of constraints for one scheduling pass.
// It is immutable for the duration of the pass.
type PlanContext struct {
	City                string
	StartDate           time.Time
	EndDate             time.Time
	Pace                string
	DailyBudget         float64 // <= 0 means unconstrained
	DailyStopCap        int
	DayStartMin         int
	DayEndMin           int
	MaxPricePerActivity *float64
}

// Costs assumed when a catalog item carries no price.
var domainDefaultCost = map[db_models.Domain]float64{
	db_models.DomainDestination:    10,
	db_models.DomainActivity:       20,
	db_models.DomainAccommodation:  80,
	db_models.DomainTransportation: 15,
}

func estimatedCost(entry *CatalogEntry) float64 {
	if entry.Price != nil {
		return *entry.Price
	}
	return domainDefaultCost[entry.Domain]
}

func paceBufferMinutes(pace string) int {
	switch pace {
	case "relaxed":
		return 30
	case "intense":
		return 5
	default: // moderate
		return 15
	}
}

type SchedulerServiceInterface interface {
	// BuildItinerary runs one forward pass over the date range. The used
	// set is owned by the pass, so the earlier date always gets first
	// claim on a candidate.
	BuildItinerary(shortlist []RankedCandidate, plan PlanContext) ([]response_models.DayPlan, []string)
	// BuildDay schedules a single date against an externally owned used
	// set; the day regenerator calls it directly.
	BuildDay(date time.Time, shortlist []RankedCandidate, plan PlanContext, used map[string]bool) (response_models.DayPlan, []string)
}

type SchedulerService struct {
	catalogService CatalogServiceInterface
}

func NewSchedulerService(catalogService CatalogServiceInterface) SchedulerServiceInterface {
	return &SchedulerService{catalogService: catalogService}
}

func (s *SchedulerService) BuildItinerary(shortlist []RankedCandidate, plan PlanContext) ([]response_models.DayPlan, []string) {
	used := make(map[string]bool)
	days := make([]response_models.DayPlan, 0)
	var notes []string

	for _, date := range utils.DatesInRange(plan.StartDate, plan.EndDate) {
		day, dayNotes := s.BuildDay(date, shortlist, plan, used)
		days = append(days, day)
		notes = append(notes, dayNotes...)
	}
	return days, notes
}

func (s *SchedulerService) BuildDay(date time.Time, shortlist []RankedCandidate, plan PlanContext, used map[string]bool) (response_models.DayPlan, []string) {
	snapshot := s.catalogService.Snapshot()

	cursor := plan.DayStartMin
	spent := 0.0
	stops := make([]response_models.ScheduledStop, 0)
	var prev *CatalogEntry

	// The shortlist is walked in rank order and never re-sorted mid-day;
	// that keeps placement deterministic and biased toward relevance.
	for _, cand := range shortlist {
		if len(stops) >= plan.DailyStopCap {
			break
		}
		if cursor >= plan.DayEndMin {
			break
		}
		if used[cand.ItemID] {
			continue
		}
		entry, ok := snapshot.Get(cand.ItemID)
		if !ok {
			continue
		}

		if plan.MaxPricePerActivity != nil && entry.Price != nil && *entry.Price > *plan.MaxPricePerActivity {
			continue
		}
		cost := estimatedCost(entry)
		if plan.DailyBudget > 0 && spent+cost > plan.DailyBudget {
			continue
		}

		earliest := cursor
		if prev != nil {
			earliest += utils.TravelMinutes(prev.Latitude, prev.Longitude, entry.Latitude, entry.Longitude)
		}
		start, feasible := earliestFeasibleStart(entry.Windows, earliest, entry.DurationMinutes, plan.DayEndMin)
		if !feasible {
			// Rejected for this day only; the item stays eligible later.
			continue
		}

		end := start + entry.DurationMinutes
		stops = append(stops, response_models.ScheduledStop{
			PoiID:   entry.ID,
			Name:    entry.Name,
			Start:   utils.FormatClockMinutes(start),
			End:     utils.FormatClockMinutes(end),
			EstCost: cost,
		})
		used[entry.ID] = true
		spent += cost
		cursor = end + paceBufferMinutes(plan.Pace)
		prev = entry
	}

	day := response_models.DayPlan{
		Date:  utils.FormatDate(date),
		Stops: stops,
	}

	var notes []string
	if len(stops) == 0 {
		// A zero-stop day is a valid outcome, reported as data.
		notes = append(notes, fmt.Sprintf("%s: no stops could be scheduled within the given constraints", day.Date))
	}
	return day, notes
}

// earliestFeasibleStart finds the first start at or after earliest that
// fits the visit inside one opening window and before the day-end bound.
// No windows means always open.
func earliestFeasibleStart(windows []TimeWindow, earliest, duration, dayEndMin int) (int, bool) {
	if earliest+duration > dayEndMin {
		return 0, false
	}
	if len(windows) == 0 {
		return earliest, true
	}
	for _, w := range windows {
		start := earliest
		if w.OpenMin > start {
			start = w.OpenMin
		}
		if start+duration <= w.CloseMin && start+duration <= dayEndMin {
			return start, true
		}
	}
	return 0, false
}
