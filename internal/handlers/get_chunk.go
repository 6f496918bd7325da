package handlers

import (
	"context"
	"strings"

	"github.com/repoindex/core/internal/chunk"
	coreerrors "github.com/repoindex/core/internal/errors"
)

// minRefPrefixLen is the shortest ref prefix get_chunk will try to resolve,
// per spec.md §6's "a ref prefix of at least 6 characters" rule.
const minRefPrefixLen = 6

// GetChunk resolves a full chunk id or an unambiguous prefix of one (at
// least minRefPrefixLen characters) to its chunk. A prefix matching more
// than one chunk is reported as KindChunkRefAmbiguous with the conflicting
// refs, per spec.md §8 scenario S4.
func (s *Service) GetChunk(ctx context.Context, indexID, ref string) (*chunk.Chunk, error) {
	if indexID == "" {
		return nil, coreerrors.New(coreerrors.KindInvalidArgument, "index_id is required")
	}
	if len(ref) < minRefPrefixLen {
		return nil, coreerrors.New(coreerrors.KindInvalidArgument, "ref must be at least 6 characters")
	}

	idx, err := s.loadIndex(indexID)
	if err != nil {
		return nil, err
	}

	var exact *chunk.Chunk
	var matches []string
	var matchedChunks []*chunk.Chunk
	for i := range idx.Chunks {
		c := &idx.Chunks[i]
		if c.ID == ref {
			exact = c
			break
		}
		if strings.HasPrefix(c.ID, ref) {
			matches = append(matches, c.Ref)
			matchedChunks = append(matchedChunks, c)
		}
	}

	if exact != nil {
		return exact, nil
	}
	switch len(matches) {
	case 0:
		return nil, coreerrors.New(coreerrors.KindNotFound, "no chunk matches ref "+ref)
	case 1:
		return matchedChunks[0], nil
	default:
		return nil, coreerrors.Ambiguous(ref, matches)
	}
}
