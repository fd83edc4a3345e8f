package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"sort"
	"strings"

	"wayfarer/internal/models/db_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/internal/repositories"
	"wayfarer/pkg/utils"
)

const defaultDurationMinutes = 60

// TimeWindow is an opening interval in minutes after midnight.
type TimeWindow struct {
	OpenMin  int
	CloseMin int
}

// CatalogEntry is the immutable in-memory projection of one catalog row.
// An empty Windows slice means the item is treated as always open
// (accommodations, transportation legs).
type CatalogEntry struct {
	ID              string
	Domain          db_models.Domain
	Name            string
	City            string
	Category        string
	Description     string
	Tags            []string
	Latitude        float64
	Longitude       float64
	Rating          *float64
	Price           *float64
	Windows         []TimeWindow
	DurationMinutes int
	SearchText      string
}

// CatalogSnapshot is a read-only view of the whole catalog, built once at
// process start. Concurrent readers need no locking because nothing
// mutates it afterwards.
type CatalogSnapshot struct {
	Version  string
	byDomain map[db_models.Domain][]CatalogEntry
	byID     map[string]*CatalogEntry
}

func NewCatalogSnapshot(items []db_models.CatalogItem) *CatalogSnapshot {
	snap := &CatalogSnapshot{
		byDomain: make(map[db_models.Domain][]CatalogEntry),
		byID:     make(map[string]*CatalogEntry),
	}

	hasher := sha256.New()
	for _, item := range items {
		entry := toCatalogEntry(item)
		snap.byDomain[entry.Domain] = append(snap.byDomain[entry.Domain], entry)
		hasher.Write([]byte(entry.ID))
	}
	snap.Version = hex.EncodeToString(hasher.Sum(nil))[:12]

	for _, domain := range db_models.AllDomains {
		entries := snap.byDomain[domain]
		sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
		for i := range entries {
			snap.byID[entries[i].ID] = &entries[i]
		}
	}
	return snap
}

// Domain returns the snapshot entries of one domain, ordered by id.
func (s *CatalogSnapshot) Domain(domain db_models.Domain) []CatalogEntry {
	return s.byDomain[domain]
}

func (s *CatalogSnapshot) Get(id string) (*CatalogEntry, bool) {
	entry, ok := s.byID[id]
	return entry, ok
}

func toCatalogEntry(item db_models.CatalogItem) CatalogEntry {
	entry := CatalogEntry{
		ID:              item.ID.String(),
		Domain:          item.Domain,
		Name:            item.Name,
		City:            item.City,
		Category:        item.Category,
		Description:     item.Description,
		Tags:            item.Tags,
		Latitude:        item.Latitude,
		Longitude:       item.Longitude,
		Rating:          item.Rating,
		Price:           item.Price,
		DurationMinutes: defaultDurationMinutes,
	}
	if item.DurationMinutes != nil && *item.DurationMinutes > 0 {
		entry.DurationMinutes = *item.DurationMinutes
	}

	for _, w := range item.Windows() {
		openMin, err1 := utils.ParseClockMinutes(w.Open)
		closeMin, err2 := utils.ParseClockMinutes(w.Close)
		if err1 != nil || err2 != nil || closeMin <= openMin {
			log.Printf("Skipping malformed opening window %v on catalog item %s", w, entry.ID)
			continue
		}
		entry.Windows = append(entry.Windows, TimeWindow{OpenMin: openMin, CloseMin: closeMin})
	}
	sort.Slice(entry.Windows, func(i, j int) bool { return entry.Windows[i].OpenMin < entry.Windows[j].OpenMin })

	parts := []string{entry.Name, entry.Category, entry.Description}
	parts = append(parts, entry.Tags...)
	entry.SearchText = utils.CleanText(strings.Join(parts, " "))

	return entry
}

type CatalogServiceInterface interface {
	Load(ctx context.Context) error
	Snapshot() *CatalogSnapshot
	ListCatalogItems(ctx context.Context, domain, city string, page, pageSize int) ([]response_models.CatalogItem, error)
	GetCatalogItem(ctx context.Context, id string) (response_models.CatalogItem, error)
}

type CatalogService struct {
	catalogRepo repositories.CatalogRepository
	snapshot    *CatalogSnapshot
}

func NewCatalogService(catalogRepo repositories.CatalogRepository) CatalogServiceInterface {
	return &CatalogService{catalogRepo: catalogRepo}
}

// NewCatalogServiceFromSnapshot wires a prebuilt snapshot, used by tests
// and the trainer.
func NewCatalogServiceFromSnapshot(snapshot *CatalogSnapshot) CatalogServiceInterface {
	return &CatalogService{snapshot: snapshot}
}

// Load materializes the snapshot. Called exactly once from the fx start
// hook, before the server accepts traffic.
func (c *CatalogService) Load(ctx context.Context) error {
	items, err := c.catalogRepo.ListAll(ctx)
	if err != nil {
		return utils.ErrDatabaseError
	}

	c.snapshot = NewCatalogSnapshot(items)
	log.Printf("Catalog snapshot %s loaded with %d items", c.snapshot.Version, len(items))
	return nil
}

func (c *CatalogService) Snapshot() *CatalogSnapshot {
	return c.snapshot
}

func (c *CatalogService) ListCatalogItems(ctx context.Context, domain, city string, page, pageSize int) ([]response_models.CatalogItem, error) {
	d, ok := db_models.ParseDomain(domain)
	if !ok {
		return nil, utils.ErrUnknownDomain
	}

	items, err := c.catalogRepo.ListByDomain(ctx, d, city, page, pageSize)
	if err != nil {
		log.Printf("Error listing catalog items: %v", err)
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.CatalogItem, 0, len(items))
	for _, item := range items {
		out = append(out, BuildCatalogItemResponse(item))
	}
	return out, nil
}

func (c *CatalogService) GetCatalogItem(ctx context.Context, id string) (response_models.CatalogItem, error) {
	item, err := c.catalogRepo.GetByID(ctx, id)
	if err != nil {
		return response_models.CatalogItem{}, utils.ErrDatabaseError
	}
	if item == nil {
		return response_models.CatalogItem{}, utils.ErrCatalogItemNotFound
	}
	return BuildCatalogItemResponse(*item), nil
}

func BuildCatalogItemResponse(item db_models.CatalogItem) response_models.CatalogItem {
	out := response_models.CatalogItem{
		ID:              item.ID.String(),
		Domain:          string(item.Domain),
		Name:            item.Name,
		City:            item.City,
		Latitude:        item.Latitude,
		Longitude:       item.Longitude,
		Category:        item.Category,
		Description:     item.Description,
		Tags:            item.Tags,
		Rating:          item.Rating,
		Price:           item.Price,
		DurationMinutes: item.DurationMinutes,
	}
	for _, w := range item.Windows() {
		out.OpeningHours = append(out.OpeningHours, response_models.OpeningWindow{Open: w.Open, Close: w.Close})
	}
	return out
}
