package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wayfarer/internal/models/db_models"
)

func rankerFixture(t *testing.T, withIndex bool) RankerServiceInterface {
	t.Helper()

	giraffe := testItem(1, db_models.DomainActivity, "Giraffe Centre", "Nairobi", "feed endangered giraffes up close")
	museum := testItem(2, db_models.DomainActivity, "Railway Museum", "Nairobi", "locomotive history museum")
	market := testItem(3, db_models.DomainActivity, "Craft Market", "Nairobi", "open air craft market")
	beach := testItem(4, db_models.DomainActivity, "Nyali Beach", "Mombasa", "white sand beach")

	giraffe.Rating = fptr(4.7)
	museum.Rating = fptr(4.2)
	// market keeps a nil rating on purpose.

	snap := NewCatalogSnapshot([]db_models.CatalogItem{giraffe, museum, market, beach})
	indexes := map[db_models.Domain]*DomainIndex{}
	if withIndex {
		indexes[db_models.DomainActivity] = BuildDomainIndex(snap.Domain(db_models.DomainActivity), snap.Version)
	}
	return NewRankerService(
		NewCatalogServiceFromSnapshot(snap),
		NewIndexServiceFromIndexes(indexes),
	)
}

func TestRankCityMaskIsCaseInsensitive(t *testing.T) {
	ranker := rankerFixture(t, true)

	ranked := ranker.Rank(db_models.DomainActivity, "nAiRoBi", "museum", 10)
	require.Len(t, ranked, 3)
	for _, cand := range ranked {
		assert.NotEqual(t, fixedID(4).String(), cand.ItemID, "Mombasa item must not leak through the mask")
	}
}

func TestRankEmptyCityMatchYieldsEmptyResult(t *testing.T) {
	ranker := rankerFixture(t, true)

	assert.Empty(t, ranker.Rank(db_models.DomainActivity, "Kisumu", "museum", 10))
	assert.Empty(t, ranker.Rank(db_models.DomainActivity, "Nairobi", "museum", 0))
}

func TestRankSimilarityOrder(t *testing.T) {
	ranker := rankerFixture(t, true)

	ranked := ranker.Rank(db_models.DomainActivity, "Nairobi", "locomotive museum history", 10)
	require.NotEmpty(t, ranked)
	assert.Equal(t, fixedID(2).String(), ranked[0].ItemID)
	assert.Greater(t, ranked[0].Score, 0.0)
}

func TestRankFallsBackToRatingOrderWithoutIndex(t *testing.T) {
	ranker := rankerFixture(t, false)
	assert.False(t, ranker.IndexLoaded(db_models.DomainActivity))

	ranked := ranker.Rank(db_models.DomainActivity, "Nairobi", "museum", 10)
	require.Len(t, ranked, 3)

	// All scores are zero, so order is rating desc with the unrated item
	// last; every score stays 0 rather than being invented.
	assert.Equal(t, fixedID(1).String(), ranked[0].ItemID)
	assert.Equal(t, fixedID(2).String(), ranked[1].ItemID)
	assert.Equal(t, fixedID(3).String(), ranked[2].ItemID)
	for _, cand := range ranked {
		assert.Zero(t, cand.Score)
	}
}

func TestRankTieBreaksByIDWhenScoreAndRatingEqual(t *testing.T) {
	a := testItem(2, db_models.DomainActivity, "Spot B", "Nairobi", "garden")
	b := testItem(1, db_models.DomainActivity, "Spot A", "Nairobi", "garden")
	a.Rating = fptr(4.0)
	b.Rating = fptr(4.0)

	snap := NewCatalogSnapshot([]db_models.CatalogItem{a, b})
	ranker := NewRankerService(
		NewCatalogServiceFromSnapshot(snap),
		NewIndexServiceFromIndexes(map[db_models.Domain]*DomainIndex{
			db_models.DomainActivity: BuildDomainIndex(snap.Domain(db_models.DomainActivity), snap.Version),
		}),
	)

	ranked := ranker.Rank(db_models.DomainActivity, "Nairobi", "garden", 10)
	require.Len(t, ranked, 2)
	assert.Equal(t, ranked[0].Score, ranked[1].Score)
	assert.Equal(t, fixedID(1).String(), ranked[0].ItemID)
	assert.Equal(t, fixedID(2).String(), ranked[1].ItemID)
}

func TestRankTruncatesToK(t *testing.T) {
	ranker := rankerFixture(t, true)

	ranked := ranker.Rank(db_models.DomainActivity, "Nairobi", "museum", 2)
	assert.Len(t, ranked, 2)
}
