package services

import (
	"sort"
	"strings"

	"wayfarer/internal/models/db_models"
)

// RankedCandidate is one shortlist entry. Ordering of a ranking result is
// a total order: score descending, then rating descending, then id
// ascending, so identical inputs always reproduce the same sequence.
type RankedCandidate struct {
	ItemID string
	Domain db_models.Domain
	Score  float64
}

type RankerServiceInterface interface {
	// Rank returns the Top-K candidates of one domain matching the city,
	// scored against the interests query. An empty city mask yields an
	// empty result; it is never widened to other cities.
	Rank(domain db_models.Domain, city, query string, k int) []RankedCandidate
	// IndexLoaded reports whether similarity scoring is available for the
	// domain or the ranker is degraded to rating-only ordering.
	IndexLoaded(domain db_models.Domain) bool
}

type RankerService struct {
	catalogService CatalogServiceInterface
	indexService   IndexServiceInterface
}

func NewRankerService(catalogService CatalogServiceInterface, indexService IndexServiceInterface) RankerServiceInterface {
	return &RankerService{
		catalogService: catalogService,
		indexService:   indexService,
	}
}

func (r *RankerService) IndexLoaded(domain db_models.Domain) bool {
	_, ok := r.indexService.Index(domain)
	return ok
}

func (r *RankerService) Rank(domain db_models.Domain, city, query string, k int) []RankedCandidate {
	if k <= 0 {
		return []RankedCandidate{}
	}

	snapshot := r.catalogService.Snapshot()
	var masked []CatalogEntry
	for _, entry := range snapshot.Domain(domain) {
		if strings.EqualFold(entry.City, city) {
			masked = append(masked, entry)
		}
	}
	if len(masked) == 0 {
		return []RankedCandidate{}
	}

	candidates := make([]RankedCandidate, 0, len(masked))
	ix, hasIndex := r.indexService.Index(domain)
	var queryVec SparseVector
	if hasIndex {
		queryVec = ix.EmbedQuery(query)
	}

	for _, entry := range masked {
		score := 0.0
		if hasIndex {
			// Items added after the artifacts were built have no row and
			// keep a zero score.
			if row, ok := ix.RowVector(entry.ID); ok {
				score = queryVec.Dot(row)
			}
		}
		candidates = append(candidates, RankedCandidate{
			ItemID: entry.ID,
			Domain: domain,
			Score:  score,
		})
	}

	ratingOf := func(id string) float64 {
		entry, ok := snapshot.Get(id)
		if !ok || entry.Rating == nil {
			return -1
		}
		return *entry.Rating
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		ri, rj := ratingOf(candidates[i].ItemID), ratingOf(candidates[j].ItemID)
		if ri != rj {
			return ri > rj
		}
		return candidates[i].ItemID < candidates[j].ItemID
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates
}
