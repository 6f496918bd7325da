package handlers

import (
	"context"
	"strings"

	coreerrors "github.com/repoindex/core/internal/errors"
)

// Explore lists the files, document outline, or symbol table of an already
// built index, optionally restricted to paths starting with path_filter.
func (s *Service) Explore(ctx context.Context, indexID string, mode ExploreMode, pathFilter string) (*ExploreResult, error) {
	if indexID == "" {
		return nil, coreerrors.New(coreerrors.KindInvalidArgument, "index_id is required")
	}

	idx, err := s.loadIndex(indexID)
	if err != nil {
		return nil, err
	}

	var items []ExploreItem
	switch mode {
	case ExploreFiles:
		for _, f := range idx.Files {
			if pathFilter != "" && !strings.HasPrefix(f.Path, pathFilter) {
				continue
			}
			items = append(items, ExploreItem{
				Path:      f.Path,
				Kind:      string(f.Kind),
				Language:  f.Language,
				LineCount: f.LineCount,
			})
		}
	case ExploreOutline:
		for _, c := range idx.Chunks {
			if len(c.HeadingPath) == 0 {
				continue
			}
			if pathFilter != "" && !strings.HasPrefix(c.Path, pathFilter) {
				continue
			}
			items = append(items, ExploreItem{
				Path:        c.Path,
				Ref:         c.Ref,
				StartLine:   c.StartLine,
				EndLine:     c.EndLine,
				HeadingPath: c.HeadingPath,
			})
		}
	case ExploreSymbols:
		for _, c := range idx.Chunks {
			if c.Symbol == "" {
				continue
			}
			if pathFilter != "" && !strings.HasPrefix(c.Path, pathFilter) {
				continue
			}
			items = append(items, ExploreItem{
				Path:      c.Path,
				Ref:       c.Ref,
				StartLine: c.StartLine,
				EndLine:   c.EndLine,
				Symbol:    c.Symbol,
			})
		}
	default:
		return nil, coreerrors.New(coreerrors.KindInvalidArgument, "unknown explore mode "+string(mode))
	}

	return &ExploreResult{Items: items, Total: len(items)}, nil
}
