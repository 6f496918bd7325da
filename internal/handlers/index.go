package handlers

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/repoindex/core/internal/chunk"
	coreerrors "github.com/repoindex/core/internal/errors"
	"github.com/repoindex/core/internal/lexical"
	"github.com/repoindex/core/internal/scanner"
	"github.com/repoindex/core/internal/store"
)

// chunkWorkers bounds the fan-out used to chunk files concurrently, per
// spec.md §5's "chunking of distinct files... MAY run on a worker pool".
const chunkWorkers = 8

// Index builds (or rebuilds) an index over paths. Re-running with
// byte-identical inputs yields the same index_id and byte-identical
// IndexFile content aside from CreatedAt (spec.md §8 invariant 4).
func (s *Service) Index(ctx context.Context, paths []string, opts IndexOptions) (*IndexResult, error) {
	if len(paths) == 0 {
		return nil, coreerrors.New(coreerrors.KindInvalidArgument, "paths must not be empty")
	}

	rootKey, err := canonicalRootKey(paths)
	if err != nil {
		return nil, err
	}
	indexID := store.HashRootPath(rootKey)

	chunkOpts := chunk.Options{
		ChunkTargetChars: opts.ChunkTargetChars,
		ChunkMaxChars:    opts.ChunkMaxChars,
		MaxFileBytes:     opts.MaxFileBytes,
	}
	if chunkOpts.ChunkTargetChars <= 0 {
		chunkOpts.ChunkTargetChars = s.cfg.ChunkTargetChars
	}
	if chunkOpts.ChunkMaxChars <= 0 {
		chunkOpts.ChunkMaxChars = s.cfg.ChunkMaxChars
	}
	if chunkOpts.MaxFileBytes <= 0 {
		chunkOpts.MaxFileBytes = s.cfg.MaxFileBytes
	}

	files, err := scanner.Scan(ctx, paths, scanner.Options{RespectGitignore: true})
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.KindIOError, "scan paths", err)
	}

	results := make([]chunk.Result, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(chunkWorkers)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			content, err := os.ReadFile(f.AbsPath)
			if err != nil {
				return coreerrors.Wrap(coreerrors.KindIOError, "read "+f.Path, err)
			}
			res, err := chunk.ChunkFile(gctx, f.Path, content, f.ModTime.UnixMilli(), chunkOpts)
			if err != nil {
				return coreerrors.Wrap(coreerrors.KindInternal, "chunk "+f.Path, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var fileRecords []chunk.FileRecord
	var chunks []chunk.Chunk
	for _, res := range results {
		fileRecords = append(fileRecords, res.File)
		chunks = append(chunks, res.Chunks...)
	}

	// Restore deterministic ordering across the parallel fan-out, satisfying
	// (I4) and spec.md §5's "ordering of results is restored by
	// (path, start_line) before persistence".
	sort.Slice(chunks, func(i, j int) bool {
		if chunks[i].Path != chunks[j].Path {
			return chunks[i].Path < chunks[j].Path
		}
		return chunks[i].StartLine < chunks[j].StartLine
	})
	sort.Slice(fileRecords, func(i, j int) bool {
		return fileRecords[i].Path < fileRecords[j].Path
	})
	for i := range chunks {
		chunks[i].IndexPosition = i
	}

	contents := make([]string, len(chunks))
	for i, c := range chunks {
		contents[i] = c.Content
	}
	invIdx := lexical.Build(contents)

	idx := &store.IndexFile{
		IndexID:       indexID,
		RootPath:      rootKey,
		CreatedAt:     time.Now(),
		Version:       store.CurrentVersion,
		Files:         fileRecords,
		Chunks:        chunks,
		InvertedIndex: invIdx,
		Stats:         store.BuildStats(fileRecords, chunks),
	}

	embedder, err := s.embedderOrNil(ctx)
	if err != nil {
		return nil, err
	}
	if embedder != nil && embedder.Available(ctx) && len(contents) > 0 {
		vecs, err := embedder.EmbedBatch(ctx, contents)
		if err != nil {
			return nil, coreerrors.Wrap(coreerrors.KindBackendUnavailable, "embed chunks", err)
		}
		idx.Embeddings = vecs
		idx.EmbeddingModelID = embedder.ModelName()
	}

	if err := store.SaveIndexFile(s.storeRoot, idx); err != nil {
		return nil, err
	}

	created := true
	err = store.WithRegistryLock(s.storeRoot, func(reg *store.Registry) error {
		_, existed := reg.Lookup(rootKey)
		created = !existed
		reg.Put(rootKey, store.IndexMetadata{
			IndexID:    indexID,
			RootPath:   rootKey,
			CreatedAt:  idx.CreatedAt,
			FileCount:  idx.Stats.FileCount,
			ChunkCount: idx.Stats.ChunkCount,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &IndexResult{IndexID: indexID, Created: created, Stats: idx.Stats}, nil
}

// canonicalRootKey derives the registry key for a set of indexed paths: the
// absolute form of each path, sorted for order-independence, joined so two
// calls naming the same set of paths (in any order) resolve to the same
// index_id.
func canonicalRootKey(paths []string) (string, error) {
	abs := make([]string, len(paths))
	for i, p := range paths {
		a, err := filepath.Abs(p)
		if err != nil {
			return "", coreerrors.Wrap(coreerrors.KindInvalidArgument, "resolve path "+p, err)
		}
		abs[i] = a
	}
	sort.Strings(abs)
	return strings.Join(abs, "\n"), nil
}
