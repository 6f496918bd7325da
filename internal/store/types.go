// Package store is the persistence layer: the single-file on-disk index
// artifact, the registry mapping project roots to index ids, and the
// in-memory vector index used for semantic search.
package store

import (
	"fmt"
	"time"

	"github.com/repoindex/core/internal/chunk"
	"github.com/repoindex/core/internal/lexical"
)

// CurrentVersion is the schema version written into every new IndexFile.
// Readers refuse an artifact whose Version is newer than CurrentVersion.
const CurrentVersion = 1

// Stats summarizes the content of one index, broken down by file kind.
type Stats struct {
	FileCount  int            `json:"file_count"`
	ChunkCount int            `json:"chunk_count"`
	ByKind     map[string]int `json:"by_kind"`
	TotalBytes int64          `json:"total_bytes"`
}

// IndexFile is the single artifact persisted for one index: everything
// needed to answer search, explore, and get_chunk without touching the
// original repository again.
type IndexFile struct {
	IndexID          string          `json:"index_id"`
	RootPath         string          `json:"root_path"`
	CreatedAt        time.Time       `json:"created_at"`
	Version          int             `json:"version"`
	Files            []chunk.FileRecord `json:"files"`
	Chunks           []chunk.Chunk   `json:"chunks"`
	InvertedIndex    lexical.Index   `json:"inverted_index"`
	Embeddings       [][]float32     `json:"embeddings,omitempty"`
	EmbeddingModelID string          `json:"embedding_model_id,omitempty"`
	Stats            Stats           `json:"stats"`
}

// BuildStats derives a Stats summary from a file record list.
func BuildStats(files []chunk.FileRecord, chunks []chunk.Chunk) Stats {
	byKind := make(map[string]int)
	var totalBytes int64
	for _, f := range files {
		byKind[string(f.Kind)]++
		totalBytes += int64(f.ByteLen)
	}
	return Stats{
		FileCount:  len(files),
		ChunkCount: len(chunks),
		ByKind:     byKind,
		TotalBytes: totalBytes,
	}
}

// IndexMetadata is the registry's per-index entry: enough to locate and
// describe an index without loading its IndexFile.
type IndexMetadata struct {
	IndexID    string    `json:"index_id"`
	RootPath   string    `json:"root_path"`
	CreatedAt  time.Time `json:"created_at"`
	FileCount  int       `json:"file_count"`
	ChunkCount int       `json:"chunk_count"`
}

// Registry maps a hashed project root path to its index metadata.
type Registry struct {
	Indexes map[string]IndexMetadata `json:"indexes"`
}

// NewRegistry returns an empty registry ready to be populated.
func NewRegistry() *Registry {
	return &Registry{Indexes: make(map[string]IndexMetadata)}
}

// VectorResult is a single nearest-neighbor hit.
type VectorResult struct {
	ID       string  // chunk ID
	Distance float32 // lower is more similar (0-2 for cosine)
	Score    float32 // normalized similarity (0-1)
}

// VectorStoreConfig configures a vector index.
type VectorStoreConfig struct {
	Dimensions int
	Metric     string // "cos" or "l2", default "cos"
	M          int    // HNSW max connections per layer
	EfSearch   int    // HNSW query-time search width
}

// DefaultVectorStoreConfig returns sensible defaults for a vector index of
// the given dimensionality.
func DefaultVectorStoreConfig(dimensions int) VectorStoreConfig {
	return VectorStoreConfig{
		Dimensions: dimensions,
		Metric:     "cos",
		M:          16,
		EfSearch:   20,
	}
}

// VectorStore is an in-memory nearest-neighbor index over chunk embeddings.
// It holds no persistence methods: the vectors it serves are rebuilt from
// an IndexFile's Embeddings field each time an index is loaded.
type VectorStore interface {
	Add(ids []string, vectors [][]float32) error
	Search(query []float32, k int) ([]*VectorResult, error)
	Delete(ids []string) error
	AllIDs() []string
	Contains(id string) bool
	Count() int
}

// ErrDimensionMismatch indicates a query or insert vector's dimensionality
// does not match the store's configured dimension.
type ErrDimensionMismatch struct {
	Expected int
	Got      int
}

func (e ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Got)
}
