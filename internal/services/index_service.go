package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"

	"wayfarer/internal/models/db_models"
	"wayfarer/pkg/utils"
)

const defaultMaxFeatures = 5000

// SparseVector is a term-weight vector with indices sorted ascending.
// Vectors produced by the vectorizer are l2-normalized, so Dot is cosine
// similarity.
type SparseVector struct {
	Indices []int     `json:"indices"`
	Values  []float64 `json:"values"`
}

func (a SparseVector) Dot(b SparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			sum += a.Values[i] * b.Values[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Vectorizer is a fitted TF-IDF model. Fitting is deterministic for a
// fixed corpus: vocabulary order is alphabetical and feature pruning
// breaks frequency ties by term.
type Vectorizer struct {
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf"`
	MaxFeatures int            `json:"max_features"`
}

func FitVectorizer(corpus []string, maxFeatures int) *Vectorizer {
	if maxFeatures <= 0 {
		maxFeatures = defaultMaxFeatures
	}

	docFreq := make(map[string]int)
	totalFreq := make(map[string]int)
	docs := make([][]string, len(corpus))
	for i, text := range corpus {
		tokens := utils.Tokenize(text)
		docs[i] = tokens
		seen := make(map[string]bool, len(tokens))
		for _, tok := range tokens {
			totalFreq[tok]++
			if !seen[tok] {
				seen[tok] = true
				docFreq[tok]++
			}
		}
	}

	terms := make([]string, 0, len(docFreq))
	for term := range docFreq {
		terms = append(terms, term)
	}
	if len(terms) > maxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if totalFreq[terms[i]] != totalFreq[terms[j]] {
				return totalFreq[terms[i]] > totalFreq[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:maxFeatures]
	}
	sort.Strings(terms)

	v := &Vectorizer{
		Vocabulary:  make(map[string]int, len(terms)),
		IDF:         make([]float64, len(terms)),
		MaxFeatures: maxFeatures,
	}
	n := float64(len(corpus))
	for i, term := range terms {
		v.Vocabulary[term] = i
		v.IDF[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}
	return v
}

// Transform applies the already-fitted model; it never refits. Terms
// outside the vocabulary contribute nothing, which makes a fully
// out-of-vocabulary query a zero vector rather than an error.
func (v *Vectorizer) Transform(text string) SparseVector {
	counts := make(map[int]int)
	for _, tok := range utils.Tokenize(text) {
		if idx, ok := v.Vocabulary[tok]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return SparseVector{}
	}

	indices := make([]int, 0, len(counts))
	for idx := range counts {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	values := make([]float64, len(indices))
	var norm float64
	for i, idx := range indices {
		w := float64(counts[idx]) * v.IDF[idx]
		values[i] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	for i := range values {
		values[i] /= norm
	}
	return SparseVector{Indices: indices, Values: values}
}

// DomainIndex bundles the fitted vectorizer, the item×term matrix and the
// ordered id map for one catalog domain. The three parts carry one build
// version and are immutable once loaded.
type DomainIndex struct {
	Version    string
	Vectorizer *Vectorizer
	Rows       []SparseVector
	IDMap      []string

	rowOf map[string]int
}

func BuildDomainIndex(entries []CatalogEntry, version string) *DomainIndex {
	corpus := make([]string, len(entries))
	for i, e := range entries {
		corpus[i] = e.SearchText
	}

	vectorizer := FitVectorizer(corpus, defaultMaxFeatures)
	ix := &DomainIndex{
		Version:    version,
		Vectorizer: vectorizer,
		Rows:       make([]SparseVector, len(entries)),
		IDMap:      make([]string, len(entries)),
	}
	for i, e := range entries {
		ix.Rows[i] = vectorizer.Transform(corpus[i])
		ix.IDMap[i] = e.ID
	}
	ix.buildRowLookup()
	return ix
}

func (ix *DomainIndex) buildRowLookup() {
	ix.rowOf = make(map[string]int, len(ix.IDMap))
	for i, id := range ix.IDMap {
		ix.rowOf[id] = i
	}
}

func (ix *DomainIndex) RowVector(id string) (SparseVector, bool) {
	i, ok := ix.rowOf[id]
	if !ok {
		return SparseVector{}, false
	}
	return ix.Rows[i], true
}

func (ix *DomainIndex) EmbedQuery(text string) SparseVector {
	return ix.Vectorizer.Transform(text)
}

type vectorizerArtifact struct {
	Version    string      `json:"version"`
	Vectorizer *Vectorizer `json:"vectorizer"`
}

type matrixArtifact struct {
	Version string         `json:"version"`
	Rows    []SparseVector `json:"rows"`
}

type idMapArtifact struct {
	Version string   `json:"version"`
	IDs     []string `json:"ids"`
}

func artifactPaths(dir string, domain db_models.Domain) (string, string, string) {
	return filepath.Join(dir, fmt.Sprintf("tfidf_vectorizer_%s.json", domain)),
		filepath.Join(dir, fmt.Sprintf("tfidf_matrix_%s.json", domain)),
		filepath.Join(dir, fmt.Sprintf("item_index_map_%s.json", domain))
}

func SaveDomainIndex(dir string, domain db_models.Domain, ix *DomainIndex) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	vecPath, matPath, idPath := artifactPaths(dir, domain)

	if err := writeJSONFile(vecPath, vectorizerArtifact{Version: ix.Version, Vectorizer: ix.Vectorizer}); err != nil {
		return err
	}
	if err := writeJSONFile(matPath, matrixArtifact{Version: ix.Version, Rows: ix.Rows}); err != nil {
		return err
	}
	return writeJSONFile(idPath, idMapArtifact{Version: ix.Version, IDs: ix.IDMap})
}

// LoadDomainIndex reads the three artifacts of one domain. A missing file
// yields ErrArtifactMissing (the ranker degrades); artifacts built from
// different runs yield ErrArtifactVersionMismatch, which is fatal.
func LoadDomainIndex(dir string, domain db_models.Domain) (*DomainIndex, error) {
	vecPath, matPath, idPath := artifactPaths(dir, domain)

	var vec vectorizerArtifact
	if err := readJSONFile(vecPath, &vec); err != nil {
		return nil, err
	}
	var mat matrixArtifact
	if err := readJSONFile(matPath, &mat); err != nil {
		return nil, err
	}
	var ids idMapArtifact
	if err := readJSONFile(idPath, &ids); err != nil {
		return nil, err
	}

	if vec.Version != mat.Version || mat.Version != ids.Version {
		return nil, fmt.Errorf("%w: vectorizer=%s matrix=%s idmap=%s for domain %s",
			utils.ErrArtifactVersionMismatch, vec.Version, mat.Version, ids.Version, domain)
	}
	if len(mat.Rows) != len(ids.IDs) {
		return nil, fmt.Errorf("%w: %d matrix rows but %d ids for domain %s",
			utils.ErrArtifactVersionMismatch, len(mat.Rows), len(ids.IDs), domain)
	}

	ix := &DomainIndex{
		Version:    vec.Version,
		Vectorizer: vec.Vectorizer,
		Rows:       mat.Rows,
		IDMap:      ids.IDs,
	}
	ix.buildRowLookup()
	return ix, nil
}

func writeJSONFile(path string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func readJSONFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", utils.ErrArtifactMissing, path)
		}
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

type IndexServiceInterface interface {
	// LoadAll reads artifacts for every domain. Missing artifacts only
	// disable similarity for that domain; version mismatches abort.
	LoadAll() error
	Index(domain db_models.Domain) (*DomainIndex, bool)
}

type IndexService struct {
	artifactsDir string
	indexes      map[db_models.Domain]*DomainIndex
}

func NewIndexService(artifactsDir string) IndexServiceInterface {
	return &IndexService{
		artifactsDir: artifactsDir,
		indexes:      make(map[db_models.Domain]*DomainIndex),
	}
}

// NewIndexServiceFromIndexes wires prebuilt indexes, used by tests.
func NewIndexServiceFromIndexes(indexes map[db_models.Domain]*DomainIndex) IndexServiceInterface {
	return &IndexService{indexes: indexes}
}

func (s *IndexService) LoadAll() error {
	for _, domain := range db_models.AllDomains {
		ix, err := LoadDomainIndex(s.artifactsDir, domain)
		if err != nil {
			if errors.Is(err, utils.ErrArtifactMissing) {
				log.Printf("Similarity artifacts missing for domain %s, ranker will fall back to rating order", domain)
				continue
			}
			return err
		}
		s.indexes[domain] = ix
		log.Printf("Similarity index %s loaded for domain %s (%d items, %d terms)",
			ix.Version, domain, len(ix.IDMap), len(ix.Vectorizer.IDF))
	}
	return nil
}

func (s *IndexService) Index(domain db_models.Domain) (*DomainIndex, bool) {
	ix, ok := s.indexes[domain]
	return ix, ok
}
