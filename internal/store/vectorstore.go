package store

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/coder/hnsw"
)

// ANNThreshold is the chunk count above which an index switches from brute
// force cosine search to the approximate HNSW graph. Below this size a
// linear scan is fast enough and exact.
const ANNThreshold = 50000

// NewVectorStore picks a VectorStore implementation sized to expectedCount:
// brute force below ANNThreshold, HNSW above it.
func NewVectorStore(cfg VectorStoreConfig, expectedCount int) VectorStore {
	if expectedCount > ANNThreshold {
		return newHNSWStore(cfg)
	}
	return newBruteForceStore(cfg)
}

// bruteForceStore holds every vector in memory and scores a query against
// all of them. Exact, O(n), fine up to tens of thousands of chunks.
type bruteForceStore struct {
	mu     sync.RWMutex
	config VectorStoreConfig
	ids    []string
	vecs   [][]float32
	index  map[string]int
}

func newBruteForceStore(cfg VectorStoreConfig) *bruteForceStore {
	if cfg.Metric == "" {
		cfg.Metric = "cos"
	}
	return &bruteForceStore{
		config: cfg,
		index:  make(map[string]int),
	}
}

func (s *bruteForceStore) Add(ids []string, vectors [][]float32) error {
	if len(ids) != len(vectors) {
		return fmt.Errorf("ids and vectors length mismatch: %d vs %d", len(ids), len(vectors))
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range vectors {
		if len(v) != s.config.Dimensions {
			return ErrDimensionMismatch{Expected: s.config.Dimensions, Got: len(v)}
		}
	}

	for i, id := range ids {
		vec := make([]float32, len(vectors[i]))
		copy(vec, vectors[i])
		if s.config.Metric == "cos" {
			normalizeVectorInPlace(vec)
		}
		if pos, exists := s.index[id]; exists {
			s.vecs[pos] = vec
			continue
		}
		s.index[id] = len(s.ids)
		s.ids = append(s.ids, id)
		s.vecs = append(s.vecs, vec)
	}
	return nil
}

func (s *bruteForceStore) Search(query []float32, k int) ([]*VectorResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(query) != s.config.Dimensions {
		return nil, ErrDimensionMismatch{Expected: s.config.Dimensions, Got: len(query)}
	}
	if len(s.ids) == 0 {
		return []*VectorResult{}, nil
	}

	q := make([]float32, len(query))
	copy(q, query)
	if s.config.Metric == "cos" {
		normalizeVectorInPlace(q)
	}

	results := make([]*VectorResult, 0, len(s.ids))
	for i, id := range s.ids {
		distance := distanceOf(q, s.vecs[i], s.config.Metric)
		results = append(results, &VectorResult{
			ID:       id,
			Distance: distance,
			Score:    distanceToScore(distance, s.config.Metric),
		})
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Distance < results[j].Distance })
	if k > 0 && k < len(results) {
		results = results[:k]
	}
	return results, nil
}

func (s *bruteForceStore) Delete(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		pos, exists := s.index[id]
		if !exists {
			continue
		}
		last := len(s.ids) - 1
		s.ids[pos] = s.ids[last]
		s.vecs[pos] = s.vecs[last]
		s.index[s.ids[pos]] = pos
		s.ids = s.ids[:last]
		s.vecs = s.vecs[:last]
		delete(s.index, id)
	}
	return nil
}

func (s *bruteForceStore) AllIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, len(s.ids))
	copy(ids, s.ids)
	return ids
}

func (s *bruteForceStore) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.index[id]
	return exists
}

func (s *bruteForceStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

func distanceOf(a, b []float32, metric string) float32 {
	switch metric {
	case "l2":
		var sum float64
		for i := range a {
			d := float64(a[i] - b[i])
			sum += d * d
		}
		return float32(math.Sqrt(sum))
	default:
		var dot float64
		for i := range a {
			dot += float64(a[i]) * float64(b[i])
		}
		return float32(1 - dot)
	}
}

var _ VectorStore = (*bruteForceStore)(nil)

// hnswStore implements VectorStore over coder/hnsw, an approximate nearest
// neighbor graph. Used above ANNThreshold where a linear scan gets too slow.
type hnswStore struct {
	mu     sync.RWMutex
	graph  *hnsw.Graph[uint64]
	config VectorStoreConfig

	idMap   map[string]uint64
	keyMap  map[uint64]string
	nextKey uint64
}

func newHNSWStore(cfg VectorStoreConfig) *hnswStore {
	if cfg.Metric == "" {
		cfg.Metric = "cos"
	}
	if cfg.M == 0 {
		cfg.M = 16
	}
	if cfg.EfSearch == 0 {
		cfg.EfSearch = 20
	}

	graph := hnsw.NewGraph[uint64]()
	switch cfg.Metric {
	case "l2":
		graph.Distance = hnsw.EuclideanDistance
	default:
		graph.Distance = hnsw.CosineDistance
	}
	graph.M = cfg.M
	graph.EfSearch = cfg.EfSearch
	graph.Ml = 0.25

	return &hnswStore{
		graph:  graph,
		config: cfg,
		idMap:  make(map[string]uint64),
		keyMap: make(map[uint64]string),
	}
}

func (s *hnswStore) Add(ids []string, vectors [][]float32) error {
	if len(ids) != len(vectors) {
		return fmt.Errorf("ids and vectors length mismatch: %d vs %d", len(ids), len(vectors))
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range vectors {
		if len(v) != s.config.Dimensions {
			return ErrDimensionMismatch{Expected: s.config.Dimensions, Got: len(v)}
		}
	}

	for i, id := range ids {
		// Lazy deletion: replacing an existing id orphans its old graph node
		// rather than removing it, avoiding a coder/hnsw bug when the last
		// node in the graph is deleted.
		if existingKey, exists := s.idMap[id]; exists {
			delete(s.keyMap, existingKey)
			delete(s.idMap, id)
		}

		key := s.nextKey
		s.nextKey++

		vec := make([]float32, len(vectors[i]))
		copy(vec, vectors[i])
		if s.config.Metric == "cos" {
			normalizeVectorInPlace(vec)
		}

		s.graph.Add(hnsw.MakeNode(key, vec))
		s.idMap[id] = key
		s.keyMap[key] = id
	}
	return nil
}

func (s *hnswStore) Search(query []float32, k int) ([]*VectorResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(query) != s.config.Dimensions {
		return nil, ErrDimensionMismatch{Expected: s.config.Dimensions, Got: len(query)}
	}
	if s.graph.Len() == 0 {
		return []*VectorResult{}, nil
	}

	q := make([]float32, len(query))
	copy(q, query)
	if s.config.Metric == "cos" {
		normalizeVectorInPlace(q)
	}

	nodes := s.graph.Search(q, k)
	results := make([]*VectorResult, 0, len(nodes))
	for _, node := range nodes {
		id, exists := s.keyMap[node.Key]
		if !exists {
			continue
		}
		distance := s.graph.Distance(q, node.Value)
		results = append(results, &VectorResult{
			ID:       id,
			Distance: distance,
			Score:    distanceToScore(distance, s.config.Metric),
		})
	}
	return results, nil
}

func (s *hnswStore) Delete(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		if key, exists := s.idMap[id]; exists {
			delete(s.keyMap, key)
			delete(s.idMap, id)
		}
	}
	return nil
}

func (s *hnswStore) AllIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.idMap))
	for id := range s.idMap {
		ids = append(ids, id)
	}
	return ids
}

func (s *hnswStore) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.idMap[id]
	return exists
}

func (s *hnswStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.idMap)
}

// HNSWStats reports graph size versus live mappings, the gap being nodes
// orphaned by lazy deletion.
type HNSWStats struct {
	ValidIDs   int
	GraphNodes int
	Orphans    int
}

func (s *hnswStore) Stats() HNSWStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	validIDs := len(s.idMap)
	graphNodes := s.graph.Len()
	return HNSWStats{ValidIDs: validIDs, GraphNodes: graphNodes, Orphans: graphNodes - validIDs}
}

var _ VectorStore = (*hnswStore)(nil)

func normalizeVectorInPlace(v []float32) {
	var sumSquares float64
	for _, val := range v {
		sumSquares += float64(val) * float64(val)
	}
	if sumSquares == 0 {
		return
	}
	invMagnitude := float32(1.0 / math.Sqrt(sumSquares))
	for i := range v {
		v[i] *= invMagnitude
	}
}

// distanceToScore converts a distance value into a 0-1 similarity score.
func distanceToScore(distance float32, metric string) float32 {
	switch metric {
	case "l2":
		return 1.0 / (1.0 + distance)
	default:
		return 1.0 - distance/2.0
	}
}
