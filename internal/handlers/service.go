// Package handlers implements the five canonical operations exposed to the
// MCP/CLI transports: index, search, explore, get_chunk, manage. Each
// handler is orchestration only — parameter validation, store lookup,
// delegation into internal/chunk, internal/lexical, internal/embed,
// internal/search, internal/store — and carries no business logic of its
// own, in the shape of the teacher's internal/index/coordinator.go.
package handlers

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/repoindex/core/internal/config"
	"github.com/repoindex/core/internal/embed"
	coreerrors "github.com/repoindex/core/internal/errors"
	"github.com/repoindex/core/internal/store"
)

// Service is the shared entry point for all five operations. It owns the
// process-wide embedding backend, lazily initialized on first use and torn
// down by Close, per spec.md §5's "shared resources" paragraph.
type Service struct {
	storeRoot string
	cfg       *config.Config

	embedderOnce sync.Once
	embedder     embed.Embedder
	embedderErr  error
}

// NewService wires a Service over storeRoot (the on-disk index directory)
// using cfg for embedding backend location and chunking defaults.
func NewService(storeRoot string, cfg *config.Config) *Service {
	return &Service{storeRoot: storeRoot, cfg: cfg}
}

// embedderOrNil lazily constructs the configured embedder. A nil result
// (with a nil error) means no embedding backend is configured
// (EmbeddingModelURL empty) — callers degrade to lexical search rather than
// treating that as a failure. A non-nil error means the backend was
// configured but failed to initialize.
func (s *Service) embedderOrNil(ctx context.Context) (embed.Embedder, error) {
	s.embedderOnce.Do(func() {
		if s.cfg.EmbeddingModelURL == "" {
			return
		}
		e, err := embed.NewEmbedder(ctx, s.cfg.EmbeddingModelURL, s.cfg.EmbeddingModelName, true)
		if err != nil {
			s.embedderErr = coreerrors.Wrap(coreerrors.KindBackendUnavailable, "initialize embedding backend", err)
			return
		}
		s.embedder = e
	})
	return s.embedder, s.embedderErr
}

// Close tears down the process-wide embedding backend, if one was started.
func (s *Service) Close() error {
	if s.embedder != nil {
		return s.embedder.Close()
	}
	return nil
}

// loadIndex loads the named index, translating a missing-file error into
// not-found per spec.md §7 (corrupt/IO errors already carry the right kind
// from internal/store).
func (s *Service) loadIndex(indexID string) (*store.IndexFile, error) {
	idx, err := store.LoadIndexFile(s.storeRoot, indexID)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, coreerrors.New(coreerrors.KindNotFound, "index "+indexID+" not found")
		}
		return nil, err
	}
	return idx, nil
}

// vectorStoreFor rebuilds an in-memory VectorStore from an IndexFile's
// persisted embeddings, or returns nil if the index has none. VectorStore
// holds no persistence of its own (internal/store.VectorStore's doc
// comment); it is always rebuilt on load.
func vectorStoreFor(idx *store.IndexFile) (store.VectorStore, error) {
	if len(idx.Embeddings) == 0 {
		return nil, nil
	}
	dims := len(idx.Embeddings[0])
	cfg := store.DefaultVectorStoreConfig(dims)
	vs := store.NewVectorStore(cfg, len(idx.Chunks))
	ids := make([]string, len(idx.Chunks))
	for i, c := range idx.Chunks {
		ids[i] = c.ID
	}
	if err := vs.Add(ids, idx.Embeddings); err != nil {
		return nil, coreerrors.Wrap(coreerrors.KindInternal, "rebuild vector store", err)
	}
	return vs, nil
}
