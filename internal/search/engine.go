package search

import (
	"context"
	"strings"

	coreerrors "github.com/repoindex/core/internal/errors"
	"github.com/repoindex/core/internal/embed"
	"github.com/repoindex/core/internal/lexical"
	"github.com/repoindex/core/internal/store"
)

// Engine answers queries against one loaded index. It is stateless across
// calls beyond the index and vector store handed to it at construction; the
// caller (internal/handlers) owns the IndexFile's lifecycle.
type Engine struct {
	idx      *store.IndexFile
	vectors  store.VectorStore // nil if the index has no embeddings
	embedder embed.Embedder    // nil disables semantic/auto-hybrid search
}

// NewEngine builds a search engine over one loaded index. vectors and
// embedder may be nil; auto and hybrid queries then run lexical-only, and a
// semantic query fails with KindBackendUnavailable.
func NewEngine(idx *store.IndexFile, vectors store.VectorStore, embedder embed.Embedder) *Engine {
	return &Engine{idx: idx, vectors: vectors, embedder: embedder}
}

// Search executes one query per spec.md §4.4's contract.
func (e *Engine) Search(ctx context.Context, q Query) (*Response, error) {
	q = q.WithDefaults()

	text := strings.TrimSpace(q.Text)
	if text == "" {
		return &Response{Results: []Result{}}, nil
	}

	mode := e.resolveMode(q.Mode)

	var lexHits []lexicalHit
	if mode == ModeLexical || mode == ModeHybrid {
		for _, r := range lexical.Search(e.idx.InvertedIndex, text) {
			lexHits = append(lexHits, lexicalHit{position: r.ChunkPosition, score: r.Score})
		}
	}

	var vecHits []vectorHit
	if mode == ModeSemantic || mode == ModeHybrid {
		if e.vectors == nil || e.embedder == nil {
			if mode == ModeSemantic {
				return nil, coreerrors.New(coreerrors.KindBackendUnavailable,
					"semantic search requested but no embedding backend is available for this index")
			}
		} else {
			queryVec, err := e.embedder.Embed(ctx, text)
			if err != nil {
				return nil, coreerrors.Wrap(coreerrors.KindBackendUnavailable, "embed query", err)
			}
			results, err := e.vectors.Search(queryVec, q.Limit*4+20)
			if err != nil {
				return nil, coreerrors.Wrap(coreerrors.KindInternal, "vector search", err)
			}
			posByID := e.chunkPositionsByID()
			for _, r := range results {
				pos, ok := posByID[r.ID]
				if !ok {
					continue
				}
				vecHits = append(vecHits, vectorHit{position: pos, score: r.Score})
			}
		}
	}

	fused := fuse(lexHits, vecHits)

	positions := make([]int, len(fused))
	results := make([]Result, len(fused))
	terms := lexical.Tokenize(text)
	for i, c := range fused {
		positions[i] = c.position
		results[i] = e.toResult(c, terms)
	}

	results, positions = e.applyFilters(results, positions, q.Filters)

	kept, truncatedIDs := packBudget(results, e.idx.Chunks, positions, q.MaxTokens, q.Limit)

	return &Response{Results: kept, TruncatedIDs: truncatedIDs}, nil
}

// resolveMode implements spec.md §4.4's auto rule: hybrid iff embeddings are
// present and the index's embedding_model_id matches the current pipeline's
// model, else lexical.
func (e *Engine) resolveMode(mode Mode) Mode {
	if mode != ModeAuto {
		return mode
	}
	if e.embedder == nil || e.vectors == nil || len(e.idx.Embeddings) == 0 {
		return ModeLexical
	}
	if e.idx.EmbeddingModelID != e.embedder.ModelName() {
		return ModeLexical
	}
	return ModeHybrid
}

func (e *Engine) chunkPositionsByID() map[string]int {
	m := make(map[string]int, len(e.idx.Chunks))
	for i, c := range e.idx.Chunks {
		m[c.ID] = i
	}
	return m
}

func (e *Engine) toResult(c candidate, terms []string) Result {
	ch := e.idx.Chunks[c.position]
	return Result{
		ChunkID:     ch.ID,
		Ref:         ch.Ref,
		Path:        ch.Path,
		Kind:        ch.Kind,
		StartLine:   ch.StartLine,
		EndLine:     ch.EndLine,
		Score:       c.fusedScore,
		HeadingPath: ch.HeadingPath,
		Symbol:      ch.Symbol,
		Snippet:     buildSnippet(ch.Content, terms),
		Content:     ch.Content,
	}
}

// applyFilters drops results (and their parallel chunk positions) that fail
// any of the configured predicates, applied post-scoring per spec.md §4.4.
func (e *Engine) applyFilters(results []Result, positions []int, f Filters) ([]Result, []int) {
	if f.empty() {
		return results, positions
	}

	keptResults := results[:0:0]
	keptPositions := positions[:0:0]
	for i, r := range results {
		if f.PathPrefix != "" && !strings.HasPrefix(r.Path, f.PathPrefix) {
			continue
		}
		if f.Kind != "" && r.Kind != f.Kind {
			continue
		}
		if f.SymbolPrefix != "" && !strings.HasPrefix(r.Symbol, f.SymbolPrefix) {
			continue
		}
		if f.HeadingPrefix != "" && !headingHasPrefix(r.HeadingPath, f.HeadingPrefix) {
			continue
		}
		keptResults = append(keptResults, r)
		keptPositions = append(keptPositions, positions[i])
	}
	return keptResults, keptPositions
}

func headingHasPrefix(headingPath []string, prefix string) bool {
	joined := strings.Join(headingPath, " > ")
	return strings.HasPrefix(joined, prefix)
}
