package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wayfarer/internal/models/db_models"
	"wayfarer/pkg/utils"
)

func TestFitVectorizerVocabularyOrder(t *testing.T) {
	corpus := []string{
		"sunset safari with lions",
		"the national museum of art",
	}
	v := FitVectorizer(corpus, 0)

	// Stop words are dropped, surviving terms are indexed alphabetically.
	expected := []string{"art", "lions", "museum", "national", "safari", "sunset"}
	require.Len(t, v.Vocabulary, len(expected))
	for i, term := range expected {
		assert.Equal(t, i, v.Vocabulary[term], "term %q", term)
	}
	assert.NotContains(t, v.Vocabulary, "the")
	assert.NotContains(t, v.Vocabulary, "of")
	assert.NotContains(t, v.Vocabulary, "with")
}

func TestFitVectorizerIsDeterministic(t *testing.T) {
	corpus := []string{
		"street food market tour",
		"market hall and food stalls",
		"night street photography walk",
	}
	a := FitVectorizer(corpus, 0)
	b := FitVectorizer(corpus, 0)

	assert.Equal(t, a.Vocabulary, b.Vocabulary)
	assert.Equal(t, a.IDF, b.IDF)
}

func TestFitVectorizerPrunesByFrequencyThenTerm(t *testing.T) {
	// "zebra" and "antelope" both occur once; the alphabetical tie-break
	// must keep "antelope" when only three features fit.
	corpus := []string{
		"safari safari zebra",
		"safari lions antelope",
		"lions",
	}
	v := FitVectorizer(corpus, 3)

	assert.Contains(t, v.Vocabulary, "safari")
	assert.Contains(t, v.Vocabulary, "lions")
	assert.Contains(t, v.Vocabulary, "antelope")
	assert.NotContains(t, v.Vocabulary, "zebra")
}

func TestTransformNormalizesAndIgnoresUnknownTerms(t *testing.T) {
	v := FitVectorizer([]string{"beach walk", "beach bar"}, 0)

	vec := v.Transform("beach walk spaceship")
	require.NotEmpty(t, vec.Indices)
	assert.InDelta(t, 1.0, vec.Dot(vec), 1e-9, "transformed vectors are l2-normalized")

	empty := v.Transform("spaceship warpdrive")
	assert.Empty(t, empty.Indices)
	assert.Zero(t, empty.Dot(vec))
}

func TestSparseVectorDotSkipsDisjointIndices(t *testing.T) {
	a := SparseVector{Indices: []int{0, 2, 5}, Values: []float64{0.5, 0.5, 0.5}}
	b := SparseVector{Indices: []int{1, 2, 6}, Values: []float64{1, 2, 3}}
	assert.InDelta(t, 1.0, a.Dot(b), 1e-9)
}

func buildTestIndex(t *testing.T) (*DomainIndex, []CatalogEntry) {
	t.Helper()
	items := []db_models.CatalogItem{
		testItem(1, db_models.DomainActivity, "Safari Walk", "Nairobi", "guided walking safari with giraffes"),
		testItem(2, db_models.DomainActivity, "Railway Museum", "Nairobi", "locomotive history museum"),
		testItem(3, db_models.DomainActivity, "Craft Market", "Nairobi", "open air craft and food market"),
	}
	snap := NewCatalogSnapshot(items)
	entries := snap.Domain(db_models.DomainActivity)
	return BuildDomainIndex(entries, snap.Version), entries
}

func TestSaveAndLoadDomainIndexRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ix, entries := buildTestIndex(t)

	require.NoError(t, SaveDomainIndex(dir, db_models.DomainActivity, ix))
	loaded, err := LoadDomainIndex(dir, db_models.DomainActivity)
	require.NoError(t, err)

	assert.Equal(t, ix.Version, loaded.Version)
	assert.Equal(t, ix.IDMap, loaded.IDMap)
	assert.Equal(t, ix.Vectorizer.Vocabulary, loaded.Vectorizer.Vocabulary)

	// The reloaded index scores queries identically.
	query := "safari"
	for _, e := range entries {
		row, ok := loaded.RowVector(e.ID)
		require.True(t, ok)
		assert.InDelta(t, ix.EmbedQuery(query).Dot(mustRow(t, ix, e.ID)), loaded.EmbedQuery(query).Dot(row), 1e-9)
	}
}

func mustRow(t *testing.T, ix *DomainIndex, id string) SparseVector {
	t.Helper()
	row, ok := ix.RowVector(id)
	require.True(t, ok)
	return row
}

func TestLoadDomainIndexMissingArtifacts(t *testing.T) {
	_, err := LoadDomainIndex(t.TempDir(), db_models.DomainActivity)
	assert.ErrorIs(t, err, utils.ErrArtifactMissing)
}

func TestLoadDomainIndexVersionMismatch(t *testing.T) {
	dir := t.TempDir()
	ix, _ := buildTestIndex(t)
	require.NoError(t, SaveDomainIndex(dir, db_models.DomainActivity, ix))

	// Overwrite the id map with one from a different build.
	_, _, idPath := artifactPaths(dir, db_models.DomainActivity)
	require.NoError(t, writeJSONFile(idPath, idMapArtifact{Version: "stale", IDs: ix.IDMap}))

	_, err := LoadDomainIndex(dir, db_models.DomainActivity)
	assert.ErrorIs(t, err, utils.ErrArtifactVersionMismatch)
}

func TestIndexServiceLoadAllToleratesMissingDomains(t *testing.T) {
	dir := t.TempDir()
	ix, _ := buildTestIndex(t)
	require.NoError(t, SaveDomainIndex(dir, db_models.DomainActivity, ix))

	svc := NewIndexService(dir)
	require.NoError(t, svc.LoadAll())

	_, ok := svc.Index(db_models.DomainActivity)
	assert.True(t, ok)
	_, ok = svc.Index(db_models.DomainDestination)
	assert.False(t, ok)
}
