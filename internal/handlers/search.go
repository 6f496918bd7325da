package handlers

import (
	"context"
	"time"

	"github.com/repoindex/core/internal/embed"
	coreerrors "github.com/repoindex/core/internal/errors"
	"github.com/repoindex/core/internal/search"
)

// softDeadline is the default query deadline of spec.md §5, applied when
// the caller's ctx carries no earlier deadline of its own.
const softDeadline = 5 * time.Second

// Search answers one query against an already-built index. mode accepts the
// four spec.md §4.4 values case-sensitively; an unrecognized mode is an
// invalid-argument error the caller can fix and retry.
func (s *Service) Search(ctx context.Context, req SearchRequest) (*search.Response, error) {
	if req.IndexID == "" {
		return nil, coreerrors.New(coreerrors.KindInvalidArgument, "index_id is required")
	}
	mode, err := parseMode(req.Mode)
	if err != nil {
		return nil, err
	}
	if req.Limit < 0 {
		return nil, coreerrors.New(coreerrors.KindInvalidArgument, "limit must not be negative")
	}
	if req.MaxTokens < 0 {
		return nil, coreerrors.New(coreerrors.KindInvalidArgument, "max_tokens must not be negative")
	}
	limit := req.Limit
	if limit == 0 {
		limit = s.cfg.Limit
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = s.cfg.MaxTokens
	}

	idx, err := s.loadIndex(req.IndexID)
	if err != nil {
		return nil, err
	}

	vectors, err := vectorStoreFor(idx)
	if err != nil {
		return nil, err
	}

	var embedder embed.Embedder
	if mode != search.ModeLexical {
		e, err := s.embedderOrNil(ctx)
		if err != nil && mode == search.ModeSemantic {
			return nil, err
		}
		embedder = e
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, softDeadline)
		defer cancel()
	}

	engine := search.NewEngine(idx, vectors, embedder)
	resp, err := engine.Search(ctx, search.Query{
		Text:      req.Query,
		Filters:   req.Filters,
		Limit:     limit,
		MaxTokens: maxTokens,
		Mode:      mode,
	})
	if err != nil {
		if ctx.Err() != nil {
			return &search.Response{Partial: true}, nil
		}
		return nil, err
	}
	return resp, nil
}

func parseMode(raw string) (search.Mode, error) {
	switch search.Mode(raw) {
	case "":
		return search.ModeAuto, nil
	case search.ModeLexical, search.ModeSemantic, search.ModeHybrid, search.ModeAuto:
		return search.Mode(raw), nil
	default:
		return "", coreerrors.New(coreerrors.KindInvalidArgument, "unknown mode "+raw)
	}
}
