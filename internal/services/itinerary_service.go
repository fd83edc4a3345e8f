package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"wayfarer/internal/models/db_models"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/internal/repositories"
	"wayfarer/pkg/utils"
)

const (
	defaultDailyStopCap = 4
	defaultDayStart     = "09:00"
	defaultDayEnd       = "22:00"
	shortlistSize       = 50
	suggestionSize      = 1
)

// Domains whose items become timed stops. Accommodations and
// transportation legs are surfaced through notes instead.
var schedulableDomains = []db_models.Domain{
	db_models.DomainActivity,
	db_models.DomainDestination,
}

type ItineraryServiceInterface interface {
	Generate(ctx context.Context, req request_models.GenerateItineraryRequest) (*response_models.Itinerary, error)
	RegenerateDay(ctx context.Context, itineraryID string, dayIndex int, overrides request_models.DayOverrides) (*response_models.Itinerary, error)
	GetItinerary(ctx context.Context, itineraryID string) (*response_models.Itinerary, error)
}

type ItineraryService struct {
	rankerService    RankerServiceInterface
	schedulerService SchedulerServiceInterface
	catalogService   CatalogServiceInterface
	itineraryRepo    repositories.ItineraryRepository
}

func NewItineraryService(
	rankerService RankerServiceInterface,
	schedulerService SchedulerServiceInterface,
	catalogService CatalogServiceInterface,
	itineraryRepo repositories.ItineraryRepository,
) ItineraryServiceInterface {
	return &ItineraryService{
		rankerService:    rankerService,
		schedulerService: schedulerService,
		catalogService:   catalogService,
		itineraryRepo:    itineraryRepo,
	}
}

func (s *ItineraryService) Generate(ctx context.Context, req request_models.GenerateItineraryRequest) (*response_models.Itinerary, error) {
	plan, err := resolvePlanContext(req.Intent, req.Constraints)
	if err != nil {
		return nil, err
	}

	query := strings.Join(req.Intent.Interests, " ")
	var notes []string

	shortlists := make([][]RankedCandidate, 0, len(schedulableDomains))
	for _, domain := range schedulableDomains {
		if !s.rankerService.IndexLoaded(domain) {
			notes = append(notes, fmt.Sprintf("%s ranking degraded to rating order: similarity artifacts unavailable", domain))
		}
		shortlists = append(shortlists, s.rankerService.Rank(domain, plan.City, query, shortlistSize))
	}
	merged := mergeShortlists(shortlists...)
	if len(merged) == 0 {
		notes = append(notes, fmt.Sprintf("no catalog candidates found in %s", plan.City))
	}

	days, scheduleNotes := s.schedulerService.BuildItinerary(merged, plan)
	notes = append(notes, scheduleNotes...)
	notes = append(notes, s.suggestionNotes(plan.City, query)...)

	itineraryID := deterministicItineraryID(req.Intent, plan)
	out := &response_models.Itinerary{
		ItineraryID: itineraryID.String(),
		City:        plan.City,
		Days:        days,
		Notes:       notes,
	}

	if err := s.persist(ctx, itineraryID, req, plan, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ItineraryService) RegenerateDay(ctx context.Context, itineraryID string, dayIndex int, overrides request_models.DayOverrides) (*response_models.Itinerary, error) {
	record, err := s.itineraryRepo.GetByID(ctx, itineraryID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if record == nil {
		return nil, utils.ErrItineraryNotFound
	}

	var days []response_models.DayPlan
	if err := json.Unmarshal(record.Days, &days); err != nil {
		log.Printf("Corrupt day payload on itinerary %s: %v", itineraryID, err)
		return nil, utils.ErrDatabaseError
	}
	if dayIndex < 0 || dayIndex >= len(days) {
		return nil, utils.ErrDayIndexOutOfRange
	}

	var constraints request_models.TripConstraints
	if len(record.Constraints) > 0 {
		if err := json.Unmarshal(record.Constraints, &constraints); err != nil {
			log.Printf("Corrupt constraint payload on itinerary %s: %v", itineraryID, err)
			return nil, utils.ErrDatabaseError
		}
	}
	intent := request_models.TravelIntent{
		City:      record.City,
		StartDate: utils.FormatDate(record.StartDate),
		EndDate:   utils.FormatDate(record.EndDate),
		Budget:    record.DailyBudget,
		Interests: record.Interests,
		Pace:      record.Pace,
	}
	plan, err := resolvePlanContext(intent, constraints)
	if err != nil {
		return nil, err
	}
	// The stored budget is already per day; don't let the resolver divide
	// it across the range again.
	plan.DailyBudget = record.DailyBudget
	if overrides.MaxStops != nil {
		plan.DailyStopCap = *overrides.MaxStops
	}
	if overrides.MaxPricePerActivity != nil {
		plan.MaxPricePerActivity = overrides.MaxPricePerActivity
	}

	// Items held by other days stay excluded; only this day's marks are
	// released for re-placement.
	used := make(map[string]bool)
	for i, day := range days {
		if i == dayIndex {
			continue
		}
		for _, stop := range day.Stops {
			used[stop.PoiID] = true
		}
	}

	query := strings.Join(record.Interests, " ")
	shortlists := make([][]RankedCandidate, 0, len(schedulableDomains))
	for _, domain := range schedulableDomains {
		shortlists = append(shortlists, s.rankerService.Rank(domain, plan.City, query, shortlistSize))
	}
	merged := mergeShortlists(shortlists...)

	date := record.StartDate.AddDate(0, 0, dayIndex)
	newDay, dayNotes := s.schedulerService.BuildDay(date, merged, plan, used)
	days[dayIndex] = newDay

	// Drop stale notes about the regenerated date before appending fresh ones.
	notes := make([]string, 0, len(record.Notes)+len(dayNotes))
	datePrefix := newDay.Date + ":"
	for _, n := range record.Notes {
		if !strings.HasPrefix(n, datePrefix) {
			notes = append(notes, n)
		}
	}
	notes = append(notes, dayNotes...)

	daysJSON, err := json.Marshal(days)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if err := s.itineraryRepo.ReplaceDays(ctx, record.ID, record.Version, daysJSON, notes); err != nil {
		return nil, utils.ErrVersionConflict
	}

	return &response_models.Itinerary{
		ItineraryID: record.ID.String(),
		City:        record.City,
		Days:        days,
		Notes:       notes,
	}, nil
}

func (s *ItineraryService) GetItinerary(ctx context.Context, itineraryID string) (*response_models.Itinerary, error) {
	record, err := s.itineraryRepo.GetByID(ctx, itineraryID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if record == nil {
		return nil, utils.ErrItineraryNotFound
	}

	var days []response_models.DayPlan
	if err := json.Unmarshal(record.Days, &days); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return &response_models.Itinerary{
		ItineraryID: record.ID.String(),
		City:        record.City,
		Days:        days,
		Notes:       record.Notes,
	}, nil
}

func (s *ItineraryService) suggestionNotes(city, query string) []string {
	var notes []string
	snapshot := s.catalogService.Snapshot()

	if stays := s.rankerService.Rank(db_models.DomainAccommodation, city, query, suggestionSize); len(stays) > 0 {
		if entry, ok := snapshot.Get(stays[0].ItemID); ok {
			notes = append(notes, fmt.Sprintf("suggested stay: %s", entry.Name))
		}
	}
	if transit := s.rankerService.Rank(db_models.DomainTransportation, city, query, suggestionSize); len(transit) > 0 {
		if entry, ok := snapshot.Get(transit[0].ItemID); ok {
			notes = append(notes, fmt.Sprintf("getting around: %s", entry.Name))
		}
	}
	return notes
}

func (s *ItineraryService) persist(ctx context.Context, id uuid.UUID, req request_models.GenerateItineraryRequest, plan PlanContext, out *response_models.Itinerary) error {
	daysJSON, err := json.Marshal(out.Days)
	if err != nil {
		return utils.ErrDatabaseError
	}
	constraintsJSON, err := json.Marshal(req.Constraints)
	if err != nil {
		return utils.ErrDatabaseError
	}

	record := &db_models.Itinerary{
		BaseModel:   db_models.BaseModel{ID: id},
		City:        plan.City,
		StartDate:   plan.StartDate,
		EndDate:     plan.EndDate,
		DailyBudget: plan.DailyBudget,
		Pace:        plan.Pace,
		Interests:   pq.StringArray(req.Intent.Interests),
		Constraints: constraintsJSON,
		Days:        daysJSON,
		Notes:       pq.StringArray(out.Notes),
		Version:     1,
	}
	if err := s.itineraryRepo.Save(ctx, record); err != nil {
		log.Printf("Error persisting itinerary %s: %v", id, err)
		return utils.ErrDatabaseError
	}
	return nil
}

func resolvePlanContext(intent request_models.TravelIntent, constraints request_models.TripConstraints) (PlanContext, error) {
	city := strings.TrimSpace(intent.City)
	if city == "" {
		return PlanContext{}, utils.ErrInvalidInput
	}

	startDate, err := utils.ParseDate(intent.StartDate)
	if err != nil {
		return PlanContext{}, utils.ErrInvalidDateRange
	}
	endDate, err := utils.ParseDate(intent.EndDate)
	if err != nil {
		return PlanContext{}, utils.ErrInvalidDateRange
	}
	if endDate.Before(startDate) {
		return PlanContext{}, utils.ErrInvalidDateRange
	}

	pace := intent.Pace
	switch pace {
	case "relaxed", "moderate", "intense":
	default:
		pace = "moderate"
	}

	dayStart := constraints.DayStartTime
	if dayStart == "" {
		dayStart = defaultDayStart
	}
	dayStartMin, err := utils.ParseClockMinutes(dayStart)
	if err != nil {
		return PlanContext{}, utils.ErrInvalidInput
	}
	dayEnd := constraints.DayEndTime
	if dayEnd == "" {
		dayEnd = defaultDayEnd
	}
	dayEndMin, err := utils.ParseClockMinutes(dayEnd)
	if err != nil || dayEndMin <= dayStartMin {
		return PlanContext{}, utils.ErrInvalidInput
	}

	stopCap := constraints.DailyStopCap
	if stopCap <= 0 {
		stopCap = defaultDailyStopCap
	}

	dailyBudget := constraints.DailyBudget
	if dailyBudget <= 0 && intent.Budget > 0 {
		dayCount := len(utils.DatesInRange(startDate, endDate))
		dailyBudget = intent.Budget / float64(dayCount)
	}

	return PlanContext{
		City:                city,
		StartDate:           startDate,
		EndDate:             endDate,
		Pace:                pace,
		DailyBudget:         dailyBudget,
		DailyStopCap:        stopCap,
		DayStartMin:         dayStartMin,
		DayEndMin:           dayEndMin,
		MaxPricePerActivity: constraints.MaxPricePerActivity,
	}, nil
}

// mergeShortlists interleaves per-domain rankings round-robin in the
// given order, keeping both domains represented near the head while
// preserving rank order within each.
func mergeShortlists(lists ...[]RankedCandidate) []RankedCandidate {
	total := 0
	for _, l := range lists {
		total += len(l)
	}
	merged := make([]RankedCandidate, 0, total)
	for i := 0; len(merged) < total; i++ {
		for _, l := range lists {
			if i < len(l) {
				merged = append(merged, l[i])
			}
		}
	}
	return merged
}

// deterministicItineraryID derives the id from the full request, so
// regenerating the same trip reproduces the same itinerary row instead of
// accumulating duplicates.
func deterministicItineraryID(intent request_models.TravelIntent, plan PlanContext) uuid.UUID {
	maxPrice := "none"
	if plan.MaxPricePerActivity != nil {
		maxPrice = fmt.Sprintf("%.2f", *plan.MaxPricePerActivity)
	}
	canonical := fmt.Sprintf("wayfarer/itinerary|%s|%s|%s|%s|%.2f|%d|%d|%d|%s|%s",
		strings.ToLower(plan.City),
		plan.StartDate.Format(time.DateOnly),
		plan.EndDate.Format(time.DateOnly),
		plan.Pace,
		plan.DailyBudget,
		plan.DailyStopCap,
		plan.DayStartMin,
		plan.DayEndMin,
		maxPrice,
		strings.Join(intent.Interests, ","),
	)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(canonical))
}
